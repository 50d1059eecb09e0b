package asn1plus

/*
set.go contains all private functions pertaining to the
ASN.1 SET type.
*/

import (
	"bytes"
	"reflect"
	"slices"
)

// isSet returns true if the target's type bears a "SET" name suffix,
// or, for a slice, the supplied options explicitly request SET framing.
func isSet(target any, opts *Options) (set bool) {
	t := derefTypePtr(refTypeOf(target))
	if t.Kind() == reflect.Slice {
		set = (opts != nil && opts.Set) || hasSfx(t.Name(), "SET")
	} else if hasSfx(t.Name(), "SET") {
		set = true
	}

	return
}

/*
marshalSet returns an error following an attempt to encode a SET OF.
Each element is encoded independently and emitted in declaration/
insertion order -- this package never implicitly reorders a SET OF's
payload, under BER or DER alike. Callers who require strict DER
canonical SET-OF ordering (elements sorted by encoded octets) should
sort the source slice beforehand, e.g. using [SortSetOf].
*/
func marshalSet(v reflect.Value, pkt Packet, opts *Options) (err error) {
	v = derefValuePtr(v)
	if v.Kind() != reflect.Slice {
		return compositeErrorf("marshalSet: value is not a slice")
	}

	var elements [][]byte
	for i := 0; i < v.Len() && err == nil; i++ {
		tmp := pkt.Type().New()
		if err = marshalValue(v.Index(i), tmp, nil); err == nil {
			elements = append(elements, tmp.Data())
		}
	}

	if err != nil {
		return compositeErrorf("marshalSet: error marshaling slice element: ", err.Error())
	}

	var concatenated []byte
	for _, e := range elements {
		concatenated = append(concatenated, e...)
	}

	class, tag := ClassUniversal, TagSet
	if opts != nil && opts.HasTag() {
		tag = opts.Tag()
		if opts.HasClass() {
			class = opts.Class()
		}
	}

	tlv := pkt.Type().newTLV(class, tag, len(concatenated), true, concatenated...)
	return writeTLV(pkt, tlv, nil)
}

/*
SortSetOf reorders the slice referenced by v (a pointer to a SET OF
slice field) into DER canonical order -- ascending byte-lexical order
of each element's own [rule]-encoded octets. It is never invoked
implicitly by [Marshal]; callers who require strict DER canonical
SET-OF ordering must call it themselves before encoding.
*/
func SortSetOf(v any, rule EncodingRule) (err error) {
	rv := derefValuePtr(refValueOf(v))
	if rv.Kind() != reflect.Slice {
		return compositeErrorf("SortSetOf: value is not a slice")
	}

	type encodedElem struct {
		idx int
		enc []byte
	}

	elems := make([]encodedElem, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		tmp := rule.New()
		if err = marshalValue(rv.Index(i), tmp, nil); err != nil {
			return compositeErrorf("SortSetOf: error marshaling slice element: ", err.Error())
		}
		elems[i] = encodedElem{idx: i, enc: tmp.Data()}
	}

	slices.SortFunc(elems, func(a, b encodedElem) int {
		return bytes.Compare(a.enc, b.enc)
	})

	sorted := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	for newIdx, e := range elems {
		sorted.Index(newIdx).Set(rv.Index(e.idx))
	}
	rv.Set(sorted)

	return nil
}

/*
unmarshalSet returns an error following an attempt to decode a SET OF
from pkt into the slice value v.
*/
func unmarshalSet(v reflect.Value, pkt Packet, opts *Options) (err error) {
	if v.Kind() != reflect.Slice {
		return compositeErrorf("unmarshalSet: target value is not a slice")
	}

	var outer TLV
	if outer, err = pkt.TLV(); err != nil {
		return
	}

	start := pkt.Offset()
	end := start + outer.Length
	if end > pkt.Len() {
		return compositeErrorf("unmarshalSet: truncated content")
	}

	data := pkt.Data()[start:end]
	pkt.SetOffset(end)

	sub := pkt.Type().New(data...)
	sub.SetOffset(0)

	elemType := v.Type().Elem()
	elems := reflect.MakeSlice(v.Type(), 0, 0)

	isChoiceElem := elemType == reflect.TypeOf(Choice{})

	for sub.HasMoreData() {
		elem := reflect.New(elemType).Elem()
		if isChoiceElem {
			var choices Choices
			if opts != nil && opts.ChoicesMap != nil {
				var ok bool
				if choices, ok = opts.ChoicesMap[opts.Choices]; !ok {
					return errorNoChoicesAvailable
				}
			} else {
				return errorNoChoicesAvailable
			}
			var ch Choice
			if ch, err = selectChoiceFromRegistry(choices, sub, opts); err != nil {
				return compositeErrorf("unmarshalSet: error unmarshaling SET element: ", err.Error())
			}
			elem.Set(refValueOf(ch))
		} else if err = unmarshalValue(sub, elem, nil); err != nil {
			return compositeErrorf("unmarshalSet: error unmarshaling SET element: ", err.Error())
		}
		elems = reflect.Append(elems, elem)
	}

	v.Set(elems)
	return
}
