package asn1plus

/*
enum.go contains all types and methods pertaining to the ASN.1
ENUMERATED type.
*/

/*
Enumeration implements a map of [Enumerated] string values. This
is not a standard type and is implemented merely for convenience.
*/
type Enumeration map[Enumerated]string

/*
Name scans the receiver instance to determine the string name for the
input [Enumerated] value.
*/
func (r Enumeration) Name(e Enumerated) string {
	var n string = "unknown (" + itoa(int(e)) + ")"
	if name, ok := r[e]; ok {
		n = name
	}
	return n
}

/*
Enumerated implements the ASN.1 ENUMERATED type (tag 10).
*/
type Enumerated int

/*
Tag returns the integer constant [TagEnum].
*/
func (r Enumerated) Tag() int { return TagEnum }

/*
String returns the string representation of the receiver instance.
*/
func (r Enumerated) String() string { return itoa(int(r)) }

/*
IsPrimitive returns true, indicating the receiver is considered an
ASN.1 primitive type. This method serves as a marker to differentiate
qualified instances from other interfaces of a similar design.
*/
func (r Enumerated) IsPrimitive() bool { return true }

/*
NewEnumerated returns an instance of [Enumerated].
*/
func NewEnumerated(x any, constraints ...Constraint) (enum Enumerated, err error) {
	var e int
	switch tv := x.(type) {
	case int:
		e = tv
	case Enumerated:
		e = int(tv)
	default:
		err = enumeratedErrorf("Invalid type for ASN.1 ENUMERATED")
	}

	if len(constraints) > 0 && err == nil {
		var group ConstraintGroup = constraints
		err = group.Validate(Enumerated(e))
	}

	if err == nil {
		enum = Enumerated(e)
	}

	return
}

/*
Int returns the integer representation of the receiver instance.
*/
func (e Enumerated) Int() int {
	return int(e)
}

func (r Enumerated) write(pkt Packet, opts *Options) (n int, err error) {
	switch t := pkt.Type(); t {
	case BER, DER:
		data := encodeNativeInt(int(r))
		tag, class := effectiveTag(r.Tag(), 0, opts)
		off := pkt.Offset()
		if err = writeTLV(pkt, t.newTLV(class, tag, len(data), false, data...), opts); err == nil {
			n = pkt.Offset() - off
		}
	default:
		err = errorRuleNotImplemented
	}
	return
}

func (r *Enumerated) read(pkt Packet, tlv TLV, opts *Options) (err error) {
	if pkt == nil {
		return errorNilInput
	}

	switch pkt.Type() {
	case BER, DER:
		err = r.readBER(pkt, tlv, opts)
	default:
		err = errorRuleNotImplemented
	}

	return
}

func (r *Enumerated) readBER(pkt Packet, tlv TLV, opts *Options) (err error) {
	var data []byte
	if data, err = primitiveCheckRead(r.Tag(), pkt, tlv, opts); err == nil {
		var dec int
		if dec, err = decodeNativeInt(data); err == nil {
			*r = Enumerated(dec)
			pkt.SetOffset(pkt.Offset() + tlv.Length)
		}
	}

	return
}
