package asn1plus

import "testing"

/*
KindChoices backs the Kind field below: a CHOICE between an
OctetString (a raw address) and an ObjectIdentifier (a named
address scheme).
*/
func (r contactInfo) KindChoices() Choices {
	c := NewChoices()
	c.Register(OctetString(""), "choice:tag:0,explicit")
	c.Register(ObjectIdentifier{}, "choice:tag:1,explicit")
	return c
}

type contactInfo struct {
	Name OctetString
	Kind Choice `asn1:"choices:kind"`
}

func TestChoice_SequenceField_OctetString(t *testing.T) {
	ci := contactInfo{
		Name: OctetString("alice"),
		Kind: Choice{Value: OctetString("555-0100")},
	}

	for _, rule := range encodingRules {
		pkt, err := Marshal(ci, With(rule))
		if err != nil {
			t.Fatalf("%s failed [%s encoding]: %v", t.Name(), rule, err)
		}

		var out contactInfo
		if err = Unmarshal(pkt, &out, With(rule)); err != nil {
			t.Fatalf("%s failed [%s decoding]: %v", t.Name(), rule, err)
		}

		os, ok := out.Kind.Value.(OctetString)
		if !ok || string(os) != "555-0100" {
			t.Fatalf("%s: decoded Kind = %#v, want OctetString(555-0100)", t.Name(), out.Kind.Value)
		}
	}
}

func TestChoice_SequenceField_OID(t *testing.T) {
	oid, err := NewObjectIdentifier(1, 3, 6, 1, 4, 1)
	if err != nil {
		t.Fatalf("NewObjectIdentifier failed: %v", err)
	}

	ci := contactInfo{
		Name: OctetString("bob"),
		Kind: Choice{Value: oid},
	}

	for _, rule := range encodingRules {
		pkt, err := Marshal(ci, With(rule))
		if err != nil {
			t.Fatalf("%s failed [%s encoding]: %v", t.Name(), rule, err)
		}

		var out contactInfo
		if err = Unmarshal(pkt, &out, With(rule)); err != nil {
			t.Fatalf("%s failed [%s decoding]: %v", t.Name(), rule, err)
		}

		got, ok := out.Kind.Value.(ObjectIdentifier)
		if !ok || !got.Eq(oid) {
			t.Fatalf("%s: decoded Kind = %#v, want %v", t.Name(), out.Kind.Value, oid)
		}
	}
}

func TestChoices_RegisterChooseDuplicateTag(t *testing.T) {
	c := NewChoices()
	if err := c.Register(OctetString(""), "choice:tag:0"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := c.Register(ObjectIdentifier{}, "choice:tag:0"); err == nil {
		t.Fatalf("expected duplicate tag error, got nil")
	}
}

func TestChoices_ChooseAmbiguous(t *testing.T) {
	c := NewChoices()
	c.Register(OctetString(""), "choice:tag:0")
	c.Register(OctetString(""), "choice:tag:1")

	if _, err := c.Choose(OctetString("x")); err == nil {
		t.Fatalf("expected ambiguous choice error, got nil")
	}
}

func TestChoice_IsZero(t *testing.T) {
	var ch Choice
	if !ch.IsZero() {
		t.Fatalf("expected zero-value Choice to report IsZero true")
	}
	ch.Value = OctetString("x")
	if ch.IsZero() {
		t.Fatalf("expected populated Choice to report IsZero false")
	}
}
