package asn1plus

/*
any.go implements the ASN.1 ANY type: a schema "hole" whose content is
carried as the complete pre-encoded TLV octets of whichever value
occupies its position, decoded into a concrete type only once the
hole's true identity is known to the caller.
*/

/*
AnyElement implements the ASN.1 ANY type (X.680 §8.20, "a value of any
type"). Rather than parsing its content eagerly, an AnyElement stores
the full TLV octets (identifier, length and content) produced by
whatever value was marshaled into its position; [AnyElement.Unwrap]
decodes those octets into a caller-supplied destination once the
hole's identity is resolved out of band.

A zero-value AnyElement (no content assigned) is not elided on encode
the way an empty OPTIONAL field would be: a non-optional ANY always
writes something to the wire, falling back to a NULL (tag 5) TLV
rather than emitting nothing.
*/
type AnyElement struct {
	full []byte
}

/*
NewAnyElement returns an [AnyElement] populated with the marshaled TLV
octets of v. v may be a [Primitive], a struct, a slice, or another
[AnyElement] (in which case it is returned unchanged).
*/
func NewAnyElement(v any, with ...EncodingOption) (a AnyElement, err error) {
	if v == nil {
		return
	}
	if existing, ok := v.(AnyElement); ok {
		return existing, nil
	}

	var pkt Packet
	if pkt, err = Marshal(v, with...); err == nil {
		a.full = pkt.Data()
	}

	return
}

/*
Unwrap returns an error following an attempt to decode the receiver's
stored TLV octets into dst, which must be a non-nil pointer.
*/
func (r AnyElement) Unwrap(dst any, with ...EncodingOption) (err error) {
	if len(r.full) == 0 {
		return errorNilInput
	}

	cfg := &encodingConfig{rule: DefaultEncoding}
	for _, o := range with {
		o(cfg)
	}

	pkt := cfg.rule.New(r.full...)
	pkt.SetOffset(0)
	return Unmarshal(pkt, dst)
}

/*
IsZero returns a Boolean value indicative of the receiver holding no
content.
*/
func (r AnyElement) IsZero() bool { return len(r.full) == 0 }

/*
Tag returns the ASN.1 tag carried by the receiver's stored content, or
[TagNull] if the receiver is unpopulated, reflecting the fallback
applied at encode time.
*/
func (r AnyElement) Tag() int {
	if len(r.full) == 0 {
		return TagNull
	}
	tag, _, _ := parseTagIdentifier(r.full)
	return tag
}

/*
String returns the hexadecimal representation of the receiver's
stored TLV octets, or the [Null] string representation if the
receiver is unpopulated.
*/
func (r AnyElement) String() string {
	if len(r.full) == 0 {
		return Null{}.String()
	}
	return uc(hexstr(r.full))
}

/*
IsPrimitive always returns true; an AnyElement passes its content
through verbatim rather than decomposing it into further structure.
*/
func (_ AnyElement) IsPrimitive() bool { return true }

func (r AnyElement) write(pkt Packet, opts *Options) (n int, err error) {
	off := pkt.Offset()

	if len(r.full) == 0 {
		var null Null
		return null.write(pkt, opts)
	}

	switch pkt.Type() {
	case BER, DER:
		pkt.Append(r.full...)
		pkt.SetOffset(pkt.Len())
		n = pkt.Offset() - off
	default:
		err = errorRuleNotImplemented
	}

	return
}

func (r *AnyElement) read(pkt Packet, tlv TLV, opts *Options) (err error) {
	if pkt == nil {
		return errorNilInput
	}

	switch pkt.Type() {
	case BER, DER:
		if tlv.Length < 0 {
			return errorIndefiniteProhibited
		}
		content := tlv.Value
		if len(content) > tlv.Length {
			content = content[:tlv.Length]
		}
		r.full = encodeTLV(pkt.Type().newTLV(tlv.Class, tlv.Tag, len(content), tlv.Compound, content...), nil)
		pkt.SetOffset(pkt.Offset() + tlv.Length)
	default:
		err = errorRuleNotImplemented
	}

	return
}
