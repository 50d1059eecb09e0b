package asn1plus

import "reflect"

/*
prim.go contains the shared contract implemented by every ASN.1
primitive type in this package, along with the header-matching logic
common to all of their read methods.
*/

/*
Primitive encompasses all ASN.1 primitive types implemented by this
package:

  - [Boolean]
  - [Integer]
  - [BitString]
  - [OctetString]
  - [Null]
  - [ObjectIdentifier]
  - [Enumerated]
  - [UTF8String]
  - [NumericString]
  - [PrintableString]
  - [IA5String]
  - [UTCTime]
  - [GeneralizedTime]
  - [VisibleString]
  - [BMPString]
  - [UniversalString]
*/
type Primitive interface {
	Tag() int
	String() string
	IsPrimitive() bool

	write(Packet, *Options) (int, error)
	read(Packet, TLV, *Options) error
}

func primitiveCheckExplicitRead(tag int, pkt Packet, tlv TLV, opts *Options) (data []byte, err error) {
	if tlv.Class != opts.Class() || tlv.Tag != opts.Tag() || !tlv.Compound {
		err = mkerr("invalid explicit " + TagNames[tag] + " header in " +
			pkt.Type().String() + " packet; received TLV: " + tlv.String())
		return
	}

	tmpBuf := getBuf()
	defer putBuf(tmpBuf)
	innerPkt := pkt.Type().New((*tmpBuf)...)
	innerPkt.Append(tlv.Value...)
	innerPkt.SetOffset(0)

	var innerTLV TLV
	if innerTLV, err = innerPkt.TLV(); err == nil {
		data = innerTLV.Value
		if full := innerTLV.Value; len(full) > innerTLV.Length {
			data = full[:innerTLV.Length]
		}
	}

	return
}

func primitiveCheckImplicitRead(tag int, pkt Packet, tlv TLV, opts *Options) (data []byte, err error) {
	overlay := opts.HasTag() || opts.HasClass()

	if overlay {
		if opts.HasClass() && tlv.Class != opts.Class() {
			return nil, mkerr("class mismatch for implicit tag")
		}
		if opts.HasTag() && tlv.Tag != opts.Tag() {
			return nil, mkerr("tag mismatch for implicit tag")
		}
	} else if tlv.Class != ClassUniversal || tlv.Tag != tag || tlv.Compound {
		return nil, mkerr("invalid " + TagNames[tag] + " header in " +
			pkt.Type().String() + " packet; received TLV: " + tlv.String())
	}

	full := tlv.Value
	if tlv.Length >= 0 && len(full) > tlv.Length {
		full = full[:tlv.Length]
	}

	return full, nil
}

func primitiveCheckReadOverride(tag int, pkt Packet, tlv TLV, opts *Options) (data []byte, err error) {
	if opts.HasTag() {
		if opts.Explicit {
			data, err = primitiveCheckExplicitRead(tag, pkt, tlv, opts)
		} else {
			data, err = primitiveCheckImplicitRead(tag, pkt, tlv, opts)
		}
		return
	}

	if tlv.Class != ClassUniversal || tlv.Tag != tag || tlv.Compound {
		err = mkerr("invalid " + TagNames[tag] + " header in " +
			pkt.Type().String() + " packet; received TLV: " + tlv.String())
		return
	}

	if full := tlv.Value; len(full) > tlv.Length && tlv.Length != -1 {
		data = full[:tlv.Length]
	} else {
		data = full
	}

	return
}

/*
primitiveCheckRead validates the identifier of tlv against tag (or the
tagging override carried by opts), strips the indefinite-length EOC
marker where applicable, and returns the raw content octets.
*/
func primitiveCheckRead(tag int, pkt Packet, tlv TLV, opts *Options) (data []byte, err error) {
	if data, err = primitiveCheckReadOverride(tag, pkt, tlv, opts); err == nil {
		if len(data) == 0 {
			if tag != TagNull {
				err = mkerr("empty " + TagNames[tag] + " content")
			}
			return
		}

		if pkt.Type() == BER && tlv.Length < 0 {
			if n := len(data); n >= 2 && data[n-1] == 0x00 && data[n-2] == 0x00 {
				data = data[:n-2]
			}
		}
	}

	return
}

/*
writeOctets is the shared write implementation for every primitive
whose wire content is simply its raw octets (OCTET STRING and the
8-bit-clean restricted character strings).
*/
func writeOctets(tag int, raw []byte, pkt Packet, opts *Options) (n int, err error) {
	switch t := pkt.Type(); t {
	case BER, DER:
		off := pkt.Offset()
		tag, class := effectiveTag(tag, 0, opts)
		if err = writeTLV(pkt, t.newTLV(class, tag, len(raw), false, raw...), opts); err == nil {
			n = pkt.Offset() - off
		}
	default:
		err = errorRuleNotImplemented
	}

	return
}

/*
readOctets is the shared read implementation paired with [writeOctets].
*/
func readOctets(tag int, pkt Packet, tlv TLV, opts *Options) (data []byte, err error) {
	if pkt == nil {
		return nil, errorNilInput
	}

	switch pkt.Type() {
	case BER, DER:
		if data, err = primitiveCheckRead(tag, pkt, tlv, opts); err == nil {
			pkt.SetOffset(pkt.Offset() + tlv.Length)
		}
	default:
		err = errorRuleNotImplemented
	}

	return
}

/*
isPrimitive returns a Boolean value indicative of one of the following
conditions being satisfied:

  - Instance qualifies the [Primitive] interface type, or ...
  - Instance bears an "IsPrimitive() bool" method AND returns true
*/
func isPrimitive(target any) (primitive bool) {
	if target == nil {
		return false
	}

	if _, primitive = target.(Primitive); !primitive {
		t := reflect.TypeOf(target)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}

		primitiveInterface := reflect.TypeOf((*Primitive)(nil)).Elem()
		primitive = t.Implements(primitiveInterface) || reflect.PointerTo(t).Implements(primitiveInterface)
	}

	return
}
