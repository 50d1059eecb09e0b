package asn1plus

/*
seq.go contains all private functions pertaining to the
ASN.1 SEQUENCE composite type which, in Go, manifests
as a struct.
*/

import "reflect"

/*
marshalSequence returns an error following an
attempt to marshal sequence (struct) v into pkt.
*/
func marshalSequence(v reflect.Value, pkt Packet, opts *Options) (err error) {
	if isSet(v.Interface(), opts) && (opts == nil || !opts.HasTag()) {
		// A struct whose type name bears a "SET" suffix keeps the
		// field walk below but is framed with the UNIVERSAL SET tag.
		setOpts := Options{}
		if opts != nil {
			setOpts = *opts
		}
		setOpts.SetTag(TagSet)
		opts = &setOpts
	}

	typ := v.Type()
	fields := structFields(typ)

	sub := pkt.Type().New()
	auto := opts != nil && opts.Automatic

	parent := toPtr(v).Interface()

	for i := 0; i < len(fields) && err == nil; i++ {
		field := fields[i]
		if field.PkgPath != "" {
			continue
		}
		var fOpts Options
		if fOpts, err = extractOptions(field, i, auto); err == nil {
			err = marshalSequenceField(field.Name, parent, v.Field(i), sub, &fOpts)
		}
	}

	if err == nil {
		err = marshalSequenceWrap(sub, pkt, opts)
	}

	return
}

/*
structFields returns slices of [reflect.StructField].
*/
func structFields(t reflect.Type) (fields []reflect.StructField) {
	t = derefTypePtr(t)
	if t.Kind() == reflect.Struct {
		num := t.NumField()
		fields = make([]reflect.StructField, 0, num)

		for i := 0; i < num; i++ {
			fields = append(fields, t.Field(i))
		}
	}
	return fields
}

func marshalSequenceField(name string, parent any, fv reflect.Value, pkt Packet, opts *Options) (err error) {
	if opts.Default != nil && fv.IsValid() && fv.CanInterface() && opts.defaultEquals(fv.Interface()) {
		// Value matches the known default; DER/BER omit it.
		return
	}

	if opts.OmitEmpty && fv.IsZero() {
		return
	}

	if err = checkSequenceFieldCriticality(name, fv, opts); err != nil {
		return
	}
	if !opts.Optional && fv.Kind() == reflect.Ptr && fv.IsNil() {
		return
	}

	if err = applyFieldConstraints(fv.Interface(), opts.Constraints, '^'); err != nil {
		return
	}

	var handled bool
	if handled, err = marshalSequenceFieldChoice(name, parent, fv, pkt, opts); err != nil || handled {
		return
	}

	err = marshalValue(fv, pkt, opts)
	return
}

/*
marshalSequenceFieldChoice returns true alongside an error if fv holds a
[Choice] value requiring specialized handling; if fv is not a [Choice],
handled is false and the caller should fall back to [marshalValue].
*/
func marshalSequenceFieldChoice(name string, parent any, fv reflect.Value, pkt Packet, opts *Options) (handled bool, err error) {
	v := fv
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}

	ch, ok := v.Interface().(Choice)
	if !ok {
		return
	}
	handled = true

	if ch.Value == nil {
		err = errorChosenNotSet
		return
	}

	var choices Choices
	if meth, found := getChoicesMethod(name, parent); found {
		choices = meth()
	} else if opts.ChoicesMap != nil {
		var ok2 bool
		if choices, ok2 = opts.ChoicesMap[opts.Choices]; !ok2 {
			err = errorNoChoicesAvailable
			return
		}
	} else {
		err = errorNoChoicesAvailable
		return
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

	err = marshalValue(refValueOf(alt.Value), pkt, &childOpts)
	return
}

func marshalSequenceOfSlice(v reflect.Value, pkt Packet, _ *Options) (err error) {
	typ := pkt.Type()
	sub := typ.New()
	for i := 0; i < v.Len() && err == nil; i++ {
		err = marshalValue(v.Index(i), sub, nil)
	}

	if err == nil {
		content := sub.Data()
		tlv := typ.newTLV(ClassUniversal, TagSequence, len(content), true, content...)
		err = writeTLV(pkt, tlv, nil)
	}

	return
}

func checkSequenceFieldCriticality(name string, fv reflect.Value, opts *Options) (err error) {
	if opts.Optional || opts.Default != nil {
		return
	}

	if fv.Kind() == reflect.Ptr && fv.IsNil() {
		err = compositeErrorf(errorSeqEmptyNonOptField.Error(), ": ", name)
	}

	return
}

func marshalSequenceWrap(sub, pkt Packet, opts *Options) (err error) {
	sub.SetOffset(0)
	content := sub.Data()

	class := ClassUniversal
	tag := TagSequence

	if opts != nil {
		if opts.HasTag() {
			tag = opts.Tag()
		}
		if opts.HasClass() {
			class = opts.Class()
		}
		if opts.Explicit {
			return wrapMarshalExplicitSequence(pkt, content, opts)
		}
	}

	tlv := pkt.Type().newTLV(class, tag, len(content), true, content...)
	return writeTLV(pkt, tlv, nil)
}

func wrapMarshalExplicitSequence(pkt Packet, content []byte, opts *Options) (err error) {
	typ := pkt.Type()
	inner := typ.newTLV(ClassUniversal, TagSequence, len(content), true, content...)
	innerEnc := encodeTLV(inner, nil)
	outer := typ.newTLV(opts.Class(), opts.Tag(), len(innerEnc), true, innerEnc...)
	return writeTLV(pkt, outer, nil)
}

/*
unmarshalSequence returns an error following an attempt to write pkt into sequence (struct) v.
*/
func unmarshalSequence(v reflect.Value, pkt Packet, opts *Options) (err error) {
	var tlv TLV
	if tlv, err = pkt.TLV(); err != nil {
		return compositeErrorf("unmarshalSequence: reading SEQUENCE TL header failed: ", err.Error())
	}

	start := pkt.Offset()
	end := start + tlv.Length
	if end > pkt.Len() {
		return compositeErrorf("unmarshalSequence: insufficient data for SEQUENCE content")
	}

	seqContent := pkt.Data()[start:end]
	pkt.SetOffset(end)
	sub := pkt.Type().New(seqContent...)
	sub.SetOffset(0)

	typ := v.Type()
	fields := structFields(typ)

	auto := opts != nil && opts.Automatic
	parent := toPtr(v).Interface()

	for i := 0; i < len(fields) && err == nil; i++ {
		field := fields[i]
		if field.PkgPath != "" {
			continue
		}
		var fOpts Options
		if fOpts, err = extractOptions(field, i, auto); err == nil {
			err = unmarshalSequenceField(field.Name, parent, v.Field(i), sub, &fOpts)
		}
	}

	return
}

func unmarshalSequenceField(name string, parent any, fv reflect.Value, sub Packet, opts *Options) (err error) {
	if fv.Kind() == reflect.Ptr {
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}
		return unmarshalSequenceField(name, parent, fv.Elem(), sub, opts)
	}

	var handled bool
	if handled, err = unmarshalSequenceFieldOptionalEmpty(sub, opts); err != nil || handled {
		return
	}

	if fv.Type() == reflect.TypeOf(Choice{}) {
		var ch Choice
		if ch, err = unmarshalSequenceFieldChoice(name, parent, sub, opts); err == nil {
			fv.Set(refValueOf(ch))
		}
		return
	}

	if err = unmarshalValue(sub, fv, opts); err != nil {
		if opts.Default != nil {
			fv.Set(refValueOf(opts.Default))
			err = nil
		} else {
			err = compositeErrorf("unmarshalValue: failed for field ", name, ": ", err.Error())
		}
		return
	}

	err = applyFieldConstraints(fv.Interface(), opts.Constraints, '$')
	return
}

func unmarshalSequenceFieldChoice(name string, parent any, pkt Packet, opts *Options) (ch Choice, err error) {
	var choices Choices
	if meth, found := getChoicesMethod(name, parent); found {
		choices = meth()
	} else if opts.ChoicesMap != nil {
		var ok bool
		if choices, ok = opts.ChoicesMap[opts.Choices]; !ok {
			err = errorNoChoicesAvailable
			return
		}
	} else {
		err = errorNoChoicesAvailable
		return
	}

	return selectChoiceFromRegistry(choices, pkt, opts)
}

func unmarshalSequenceFieldOptionalEmpty(sub Packet, opts *Options) (handled bool, err error) {
	if !opts.Optional && opts.Default == nil {
		return
	}

	if !sub.HasMoreData() {
		handled = true
		return
	}

	var tlv TLV
	if tlv, err = sub.PeekTLV(); err != nil {
		handled = true
		err = nil
		return
	}

	if opts.HasTag() {
		if tlv.matchClassAndTag(opts.Class(), opts.Tag()) {
			return
		}
	} else if tlv.matchClassAndTag(ClassUniversal, tlv.Tag) && !opts.Optional {
		return
	} else if opts.Optional {
		return
	}

	handled = true
	return
}
