package asn1plus

/*
runtime.go contains the exported package-level encoding/decoding
functions and associated private helpers.
*/

import "reflect"

/*
Marshal returns an instance of [Packet] alongside an error following an attempt
to encode x using the specified ASN.1 encoding.

The variadic [EncodingOption] input value is used to further user control using
one or more of:

  - [EncodingRule] (e.g.: [BER], [DER])
  - [EncodingOption] (e.g.: to declare a value to be of an INDEFINITE-LENGTH, or for a class override)

If an [EncodingRule] is not specified, the value of [DefaultEncoding] is used,
which is [BER] by default.

See also [MustMarshal], [MustUnmarshal], [Unmarshal] and [With].
*/
func Marshal(x any, with ...EncodingOption) (pkt Packet, err error) {
	cfg := &encodingConfig{rule: DefaultEncoding}
	for _, o := range with {
		o(cfg)
	}

	traceEnter(cfg.tracer, "Marshal")
	defer traceExit(cfg.tracer, "Marshal")

	if err = marshalCheckBadOptions(cfg.rule, cfg.opts); err == nil {
		pkt = cfg.rule.New()
		traceEvent(cfg.tracer, EventCodec, "Marshal: rule="+cfg.rule.String())
		err = marshalValue(refValueOf(x), pkt, cfg.opts)
		if err == nil {
			pkt.SetOffset(0)
		}
	}
	if err != nil {
		traceEvent(cfg.tracer, EventCodec, "Marshal: failed: "+err.Error())
	}

	return
}

/*
MustMarshal returns an instance of [Packet] and panics if [Marshal] returned an
error during processing.
*/
func MustMarshal(x any, with ...EncodingOption) Packet {
	pkt, err := Marshal(x, with...)
	if err != nil {
		panic(err)
	}
	return pkt
}

/*
marshalCheckBadOptions returns an error following a scan for illegal or
unsupported options statements just prior to the marshaling process.
*/
func marshalCheckBadOptions(rule EncodingRule, o *Options) (err error) {
	if o != nil {
		if !rule.allowsIndefinite() && o.Indefinite {
			err = errorIndefiniteProhibited
		}
	}

	return
}

/*
marshalValue returns an error following an attempt to encode v into pkt,
possibly aided by [Options] directives. Composite (SEQUENCE, SET) and
CHOICE values are dispatched to their dedicated handlers; everything
else is expected to satisfy [Primitive].
*/
func marshalValue(v reflect.Value, pkt Packet, opts *Options) (err error) {
	if !v.IsValid() {
		err = errorNilValue
		return
	}

	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			err = codecErrorf("Marshal: input must be non-nil")
			return
		}
		err = marshalValue(v.Elem(), pkt, opts)
		return
	}

	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			err = codecErrorf("Marshal: input must be non-nil")
			return
		}
		err = marshalValue(v.Elem(), pkt, opts)
		return
	}

	// A bare Choice value (not embedded in a struct field) is resolved
	// solely via opts.ChoicesMap, since there is no parent struct to
	// consult for a "<Field>Choices" method.
	if ch, ok := v.Interface().(Choice); ok {
		err = marshalBareChoice(ch, pkt, opts)
		return
	}

	if isPrimitive(v.Interface()) {
		err = marshalPrimitive(v, pkt, opts)
		return
	}

	if isAdaptableKind(v.Kind()) {
		err = marshalAdaptedPrimitive(v, pkt, opts)
		return
	}

	switch v.Kind() {
	case reflect.Slice:
		if opts != nil && opts.Set {
			err = marshalSet(v, pkt, opts)
		} else {
			err = marshalSequenceOfSlice(v, pkt, opts)
		}
	case reflect.Struct:
		err = marshalSequence(v, pkt, opts)
	default:
		err = compositeErrorf("marshalValue: unsupported type ", v.Kind().String())
	}

	return
}

func marshalPrimitive(v reflect.Value, pkt Packet, opts *Options) (err error) {
	p, ok := toPtr(v).Interface().(Primitive)
	if !ok {
		err = errorPrimitiveAssertionFailed(v.Interface())
		return
	}

	if opts != nil && opts.Explicit {
		err = wrapMarshalExplicit(pkt, p, opts)
	} else {
		_, err = p.write(pkt, opts)
	}

	return
}

func wrapMarshalExplicit(pkt Packet, prim Primitive, opts *Options) (err error) {
	typ := pkt.Type()
	tmp := typ.New()
	innerOpts := clearChildOpts(opts)

	if _, err = prim.write(tmp, innerOpts); err == nil {
		content := tmp.Data()
		tlv := typ.newTLV(opts.Class(), opts.Tag(), len(content), true, content...)
		err = writeTLV(pkt, tlv, nil)
	}

	return
}

func marshalBareChoice(ch Choice, pkt Packet, opts *Options) (err error) {
	if ch.Value == nil {
		return errorChosenNotSet
	}
	if opts == nil || opts.ChoicesMap == nil {
		return errorNoChoicesAvailable
	}

	choices, ok := opts.ChoicesMap[opts.Choices]
	if !ok {
		return errorNoChoicesAvailable
	}

	var structTag string
	if ch.Tag != nil {
		structTag = "choice:tag:" + itoa(*ch.Tag)
	}

	var alt Choice
	if structTag != "" {
		alt, err = choices.Choose(ch.Value, structTag)
	} else {
		alt, err = choices.Choose(ch.Value)
	}
	if err != nil {
		return
	}

	childOpts := Options{Explicit: alt.Explicit || ch.Explicit}
	childOpts.SetClass(ClassContextSpecific)
	if alt.Tag != nil {
		childOpts.SetTag(*alt.Tag)
	}

	return marshalValue(refValueOf(alt.Value), pkt, &childOpts)
}

/*
Unmarshal returns an error following an attempt to decode the input [Packet] instance
into x. x MUST be a pointer.

The variadic [EncodingOption] input value allows for [Options] directives meant to
further control the decoding process.

It is not necessary to declare a particular [EncodingRule] using the [With] package-level
function, as the input instance of [Packet] already has this information. Providing an
[EncodingRule] to Unmarshal -- whether valid or not -- will produce no perceptible effect.

See also [Marshal], [MustMarshal], [MustUnmarshal] and [With].
*/
func Unmarshal(pkt Packet, x any, with ...EncodingOption) error {
	rv := refValueOf(x)

	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return codecErrorf("Unmarshal: target must be a non-nil pointer")
	}

	pkt.SetOffset(0)

	cfg := &encodingConfig{rule: pkt.Type()}
	for _, o := range with {
		o(cfg)
	}

	traceEnter(cfg.tracer, "Unmarshal")
	defer traceExit(cfg.tracer, "Unmarshal")
	traceEvent(cfg.tracer, EventCodec, "Unmarshal: rule="+cfg.rule.String())

	err := unmarshalValue(pkt, rv.Elem(), cfg.opts)
	if err != nil {
		traceEvent(cfg.tracer, EventCodec, "Unmarshal: failed: "+err.Error())
	}
	return err
}

/*
MustUnmarshal panics if [Unmarshal] returned an error during processing.
*/
func MustUnmarshal(pkt Packet, x any, with ...EncodingOption) {
	if err := Unmarshal(pkt, x, with...); err != nil {
		panic(err)
	}
}

/*
unmarshalValue returns an error following an attempt to decode pkt into v, possibly
aided by [Options] directives. This function is called by the top-level Unmarshal
function, as well as certain low level functions via recursion.
*/
func unmarshalValue(pkt Packet, v reflect.Value, opts *Options) (err error) {
	if !v.IsValid() {
		return codecErrorf("unmarshalValue: invalid reflect.Value")
	}

	if v.Kind() == reflect.Ptr {
		return unmarshalPointer(v, pkt, opts)
	}

	if v.Type() == reflect.TypeOf(Choice{}) {
		return unmarshalBareChoice(v, pkt, opts)
	}

	if isPrimitive(v.Interface()) {
		return unmarshalPrimitive(pkt, v, opts)
	}

	if isAdaptableKind(v.Kind()) {
		return unmarshalAdaptedPrimitive(pkt, v, opts)
	}

	switch v.Kind() {
	case reflect.Slice:
		if opts != nil && opts.Set {
			return unmarshalSet(v, pkt, opts)
		}
		return unmarshalSequenceOfSlice(v, pkt, opts)
	case reflect.Struct:
		return unmarshalSequence(v, pkt, opts)
	default:
		return codecErrorf("unmarshalValue: unsupported type ", v.Kind().String())
	}
}

func unmarshalPointer(v reflect.Value, pkt Packet, opts *Options) (err error) {
	if v.IsNil() {
		v.Set(reflect.New(v.Type().Elem()))
	}
	return unmarshalValue(pkt, v.Elem(), opts)
}

func unmarshalBareChoice(v reflect.Value, pkt Packet, opts *Options) (err error) {
	if opts == nil || opts.ChoicesMap == nil {
		return errorNoChoicesAvailable
	}

	choices, ok := opts.ChoicesMap[opts.Choices]
	if !ok {
		return errorNoChoicesAvailable
	}

	var alt Choice
	if alt, err = selectChoiceFromRegistry(choices, pkt, opts); err == nil {
		v.Set(refValueOf(alt))
	}

	return
}

func unmarshalPrimitive(pkt Packet, v reflect.Value, opts *Options) (err error) {
	var tlv TLV
	var start int
	if tlv, err = pkt.TLV(); err != nil {
		return
	}
	start = pkt.Offset()

	p, ok := toPtr(v).Interface().(Primitive)
	if !ok {
		return errorPrimitiveAssertionFailed(v.Interface())
	}

	if err = p.read(pkt, tlv, opts); err == nil {
		if pkt.Offset() < start+tlv.Length {
			pkt.SetOffset(start + tlv.Length)
		}
	}

	return
}

func unmarshalSequenceOfSlice(v reflect.Value, pkt Packet, opts *Options) (err error) {
	var tlv TLV
	if tlv, err = pkt.TLV(); err != nil {
		return compositeErrorf("unmarshalSequenceOfSlice: no SEQUENCE header: ", err.Error())
	}
	if !tlv.matchClassAndTag(ClassUniversal, TagSequence) {
		return compositeErrorf("expected UNIVERSAL SEQUENCE (16)")
	}

	start := pkt.Offset()
	end := start + tlv.Length
	if end > pkt.Len() {
		return compositeErrorf("unmarshalSequenceOfSlice: truncated content")
	}

	data := pkt.Data()[start:end]
	pkt.SetOffset(end)

	sub := pkt.Type().New(data...)
	sub.SetOffset(0)

	elemType := v.Type().Elem()
	elems := reflect.MakeSlice(v.Type(), 0, 0)
	for sub.Offset() < len(data) {
		elem := reflect.New(elemType).Elem()
		if err = unmarshalValue(sub, elem, nil); err != nil {
			return compositeErrorf("unmarshalSequenceOfSlice: element decode failed: ", err.Error())
		}
		elems = reflect.Append(elems, elem)
	}

	v.Set(elems)
	return
}
