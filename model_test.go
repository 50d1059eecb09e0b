package asn1plus

import (
	"errors"
	"testing"
)

func TestModel_duplicateContentName(t *testing.T) {
	name, _ := NewUTF8String(`Alice`)
	nameAgain, _ := NewUTF8String(`Bob`)

	root := SequenceElem{
		Children: []Decl{
			BaseElem{Name: "name", Value: name},
			BaseElem{Name: "name", Value: nameAgain},
		},
	}

	_, err := NewModel("Person", root)
	var mErr *ModelValidationError
	if !errors.As(err, &mErr) {
		t.Fatalf("expected *ModelValidationError for duplicate content names, got %T (%v)", err, err)
	}
}

func TestModel_roundTrip(t *testing.T) {
	name, _ := NewUTF8String(`Alice`)
	age, _ := NewInteger(30)

	root := SequenceElem{
		Children: []Decl{
			BaseElem{Name: "name", Value: name},
			BaseElem{Name: "age", Value: age},
		},
	}

	m, err := NewModel("Person", root)
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}

	der, err := m.ToDER()
	if err != nil {
		t.Fatalf("ToDER failed: %v", err)
	}

	m2 := m.Clone()
	pkt := DER.New(der...)
	pkt.SetOffset(0)
	if err = m2.Decode(pkt); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	h := m2.ToH()
	gotName, ok := h["name"].(UTF8String)
	if !ok || gotName.String() != "Alice" {
		t.Fatalf("expected name=Alice, got %#v", h["name"])
	}
	gotAge, ok := h["age"].(Integer)
	if !ok || gotAge.String() != "30" {
		t.Fatalf("expected age=30, got %#v", h["age"])
	}
}

func TestModel_subclassDoesNotMutateAncestor(t *testing.T) {
	name, _ := NewUTF8String(`Alice`)

	root := SequenceElem{
		Children: []Decl{
			BaseElem{Name: "name", Value: name},
		},
	}

	base, err := NewModel("Person", root)
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}

	otherName, _ := NewUTF8String(`Bob`)
	sub := base.Subclass("Employee", map[string]any{"name": otherName})

	baseVal, _ := base.Get("name")
	subVal, _ := sub.Get("name")

	if baseVal.(UTF8String).String() != "Alice" {
		t.Fatalf("expected ancestor Model to remain unchanged, got %#v", baseVal)
	}
	if subVal.(UTF8String).String() != "Bob" {
		t.Fatalf("expected subclass override to take effect, got %#v", subVal)
	}
}

type personExample struct{}

func TestModel_registerAndParse(t *testing.T) {
	name, _ := NewUTF8String(``)

	root := SequenceElem{
		Children: []Decl{
			BaseElem{Name: "name", Value: name},
		},
	}

	m, err := NewModel("Person", root)
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	RegisterModel[personExample](m)

	populated, _ := NewUTF8String(`Carol`)
	m.Set("name", populated)

	der, err := m.ToDER()
	if err != nil {
		t.Fatalf("ToDER failed: %v", err)
	}

	parsed, err := ParseModel[personExample](der, DER)
	if err != nil {
		t.Fatalf("ParseModel failed: %v", err)
	}

	got, ok := parsed.Get("name")
	if !ok || got.(UTF8String).String() != "Carol" {
		t.Fatalf("expected name=Carol, got %#v", got)
	}
}

func TestModel_wrapElemSelfReference(t *testing.T) {
	var leaf SequenceElem
	var self *Model

	leaf = SequenceElem{
		Children: []Decl{
			WrapElem{Name: "child", W: NewWrapper(func() Element {
				return self
			}), Opts: Options{Optional: true}},
		},
	}

	var err error
	self, err = NewModel("Node", leaf)
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}

	if _, ok := self.Get("child"); !ok {
		t.Fatalf("expected 'child' content element to be declared")
	}
}
