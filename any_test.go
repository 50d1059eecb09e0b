package asn1plus

import "testing"

func TestAnyElement_encodingRules(t *testing.T) {
	for _, rule := range encodingRules {
		oct, _ := NewOctetString(`hole`)

		a, err := NewAnyElement(oct, With(rule))
		if err != nil {
			t.Fatalf("%s failed [%s NewAnyElement]: %v", t.Name(), rule, err)
		}

		pkt, err := Marshal(a, With(rule))
		if err != nil {
			t.Fatalf("%s failed [%s encoding]: %v", t.Name(), rule, err)
		}

		var a2 AnyElement
		if err = Unmarshal(pkt, &a2); err != nil {
			t.Fatalf("%s failed [%s decoding]: %v", t.Name(), rule, err)
		}

		var got OctetString
		if err = a2.Unwrap(&got, With(rule)); err != nil {
			t.Fatalf("%s failed [%s unwrap]: %v", t.Name(), rule, err)
		}

		if got.String() != "hole" {
			t.Fatalf("%s failed [%s cmp.]:\n\twant: 'hole'\n\tgot:  '%s'", t.Name(), rule, got)
		}
	}
}

func TestAnyElement_emptyFallsBackToNull(t *testing.T) {
	var a AnyElement
	if !a.IsZero() {
		t.Fatalf("expected zero-value AnyElement to report IsZero")
	}

	pkt, err := Marshal(a, With(BER))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "05 00"
	if got := pkt.Hex(); got != want {
		t.Fatalf("expected NULL fallback encoding:\n\twant: '%s'\n\tgot:  '%s'", want, got)
	}
}

func TestAnyElement_codecov(t *testing.T) {
	var a AnyElement
	a.Tag()
	_ = a.String()
	a.IsPrimitive()

	_, err := NewAnyElement(nil)
	if err != nil {
		t.Fatalf("unexpected error for nil input: %v", err)
	}

	oct, _ := NewOctetString(`x`)
	a2, _ := NewAnyElement(oct)
	a3, _ := NewAnyElement(a2)
	if a3.String() != a2.String() {
		t.Fatalf("re-wrapping an AnyElement must return it unchanged")
	}

	var empty AnyElement
	if err = empty.Unwrap(&OctetString{}); err == nil {
		t.Fatalf("expected error unwrapping an empty AnyElement")
	}

	tpkt := &testPacket{}
	_, _ = a2.write(tpkt, nil)
	_ = a2.read(tpkt, TLV{Length: -1}, nil)
}
