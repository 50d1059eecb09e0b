package asn1plus

/*
adapt.go lets a struct field declared as a native Go string, integer
or bool be carried through the codec by boxing it into the matching
ASN.1 primitive for the duration of a single marshal/unmarshal call.
The concrete primitive is chosen by the "Identifier" keyword parsed
from the field's asn1 struct tag (e.g. "ia5", "printable", "integer").
*/

import "reflect"

/*
adaptPrimitiveType returns the [Primitive]-satisfying type that should
box a native value of the given kind, per identifier. An empty
identifier defaults string kinds to [UTF8String].
*/
func adaptPrimitiveType(kind reflect.Kind, identifier string) (t reflect.Type, ok bool) {
	switch kind {
	case reflect.String:
		ok = true
		switch identifier {
		case "ia5":
			t = reflect.TypeOf(IA5String(""))
		case "numeric":
			t = reflect.TypeOf(NumericString(""))
		case "printable":
			t = reflect.TypeOf(PrintableString(""))
		case "visible":
			t = reflect.TypeOf(VisibleString(""))
		case "bmp":
			t = reflect.TypeOf(BMPString(nil))
		case "universal":
			t = reflect.TypeOf(UniversalString(""))
		case "octet":
			t = reflect.TypeOf(OctetString(nil))
		case "utf8", "":
			t = reflect.TypeOf(UTF8String(""))
		default:
			ok = false
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		t, ok = reflect.TypeOf(Integer{}), true
	case reflect.Bool:
		t, ok = reflect.TypeOf(Boolean(false)), true
	}

	return
}

func isAdaptableKind(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func marshalAdaptedPrimitive(v reflect.Value, pkt Packet, opts *Options) (err error) {
	var identifier string
	if opts != nil {
		identifier = opts.Identifier
	}

	typ, ok := adaptPrimitiveType(v.Kind(), identifier)
	if !ok {
		return compositeErrorf("marshalValue: unsupported type ", v.Kind().String())
	}

	boxed := reflect.New(typ).Elem()
	if err = setBoxedFromNative(boxed, v); err == nil {
		err = marshalPrimitive(boxed, pkt, opts)
	}

	return
}

func unmarshalAdaptedPrimitive(pkt Packet, v reflect.Value, opts *Options) (err error) {
	var identifier string
	if opts != nil {
		identifier = opts.Identifier
	}

	typ, ok := adaptPrimitiveType(v.Kind(), identifier)
	if !ok {
		return codecErrorf("unmarshalValue: unsupported type ", v.Kind().String())
	}

	boxed := reflect.New(typ).Elem()
	if err = unmarshalPrimitive(pkt, boxed, opts); err == nil {
		err = setNativeFromBoxed(v, boxed)
	}

	return
}

func setBoxedFromNative(boxed, v reflect.Value) (err error) {
	switch bv := boxed.Addr().Interface().(type) {
	case *IA5String:
		*bv = IA5String(v.String())
	case *NumericString:
		*bv = NumericString(v.String())
	case *PrintableString:
		*bv = PrintableString(v.String())
	case *UTF8String:
		*bv = UTF8String(v.String())
	case *VisibleString:
		*bv = VisibleString(v.String())
	case *UniversalString:
		*bv = UniversalString(v.String())
	case *BMPString:
		*bv = BMPString([]byte(v.String()))
	case *OctetString:
		*bv = OctetString([]byte(v.String()))
	case *Integer:
		var i Integer
		if v.CanInt() {
			i, err = NewInteger(v.Int())
		} else if v.CanUint() {
			i, err = NewInteger(v.Uint())
		} else {
			err = compositeErrorf("marshalValue: cannot adapt value as INTEGER")
		}
		if err == nil {
			*bv = i
		}
	case *Boolean:
		*bv = Boolean(v.Bool())
	default:
		err = compositeErrorf("marshalValue: unsupported adapted type")
	}

	return
}

func setNativeFromBoxed(v reflect.Value, boxed reflect.Value) (err error) {
	switch bv := boxed.Interface().(type) {
	case IA5String:
		v.SetString(string(bv))
	case NumericString:
		v.SetString(string(bv))
	case PrintableString:
		v.SetString(string(bv))
	case UTF8String:
		v.SetString(string(bv))
	case VisibleString:
		v.SetString(string(bv))
	case UniversalString:
		v.SetString(string(bv))
	case BMPString:
		v.SetString(string(bv))
	case OctetString:
		v.SetString(string(bv))
	case Integer:
		if v.CanInt() {
			v.SetInt(bv.Native())
		} else if v.CanUint() {
			v.SetUint(uint64(bv.Native()))
		} else {
			err = codecErrorf("unmarshalValue: cannot adapt INTEGER into ", v.Kind().String())
		}
	case Boolean:
		v.SetBool(bool(bv))
	default:
		err = codecErrorf("unmarshalValue: unsupported adapted type")
	}

	return
}
