package asn1plus

/*
model.go implements [Model], a named ASN.1 schema assembled from a
programmatically-built declaration tree ([BaseElem], [ModelElem],
[WrapElem], [SequenceElem]) rather than an ordinary Go struct walked
by reflection. This is the mechanism by which a schema can be
assembled dynamically, subclassed, or made self-referential -- none of
which a fixed struct definition can express.

Grounded on the teacher's class.go (named-field registry with
duplicate-label detection) generalized to content-name uniqueness, and
on seq.go's struct/child walking generalized to a Decl-driven walk.
*/

import (
	"reflect"
	"sync"
)

// elemSlot binds a Decl's static shape to the live value occupying
// that content position for one particular Model instance.
type elemSlot struct {
	d   Decl
	val any
}

/*
Model implements a named, composable ASN.1 schema. See [NewModel] to
construct one, [RegisterModel]/[ParseModel] to decode a previously
registered schema by type, and [Model.ToDER]/[Model.ToH] to serialize
or introspect one.
*/
type Model struct {
	Name   string
	Tracer Tracer
	root   Decl
	slots  []*elemSlot
	opts   Options
}

/*
NewModel returns a new [Model] named name, built from the declaration
tree rooted at root, alongside an error if root declares two content
elements sharing the same name (aggregated via
[github.com/hashicorp/go-multierror] into a single
[*ModelValidationError] when more than one violation is found).
*/
func NewModel(name string, root Decl) (*Model, error) {
	if name == "" {
		return nil, modelValidationErrorf("model name may not be empty")
	}
	if root == nil {
		return nil, modelValidationErrorf("model " + name + ": nil root declaration")
	}

	children := modelChildren(root)

	seen := map[string]bool{}
	var violations []error
	for _, c := range children {
		n := c.declName()
		if n == "" {
			continue
		}
		if seen[n] {
			violations = append(violations, mkerrf("duplicate content name ", n))
		}
		seen[n] = true
	}
	if len(violations) > 0 {
		return nil, newModelValidationError("model "+name+": invalid content list", violations...)
	}

	m := &Model{Name: name, root: root, opts: root.declOptions(), Tracer: NoopTracer{}}
	m.slots = make([]*elemSlot, len(children))
	for i, c := range children {
		m.slots[i] = newElemSlot(c)
	}

	return m, nil
}

func modelChildren(root Decl) []Decl {
	if sq, ok := root.(SequenceElem); ok {
		return sq.Children
	}
	return nil
}

func newElemSlot(d Decl) *elemSlot {
	switch dv := d.(type) {
	case BaseElem:
		return &elemSlot{d: d, val: dv.Value}
	case ModelElem:
		return &elemSlot{d: d, val: dv.Inner}
	case WrapElem:
		return &elemSlot{d: d, val: nil}
	default:
		return &elemSlot{d: d}
	}
}

/*
Clone returns a copy of the receiver: a new [Model] whose declaration
tree is a deep copy of the original and whose content slots are
re-initialized from those declarations; values assigned to the original
with [Model.Set] are not carried over. The result is suitable as the starting point for subclassing (overriding selected
content without mutating the ancestor) or for giving [ParseModel] a
fresh instance to decode into.
*/
func (m *Model) Clone() *Model {
	if m == nil {
		return nil
	}

	clonedRoot := m.root.declClone()
	clone := &Model{Name: m.Name, root: clonedRoot, opts: m.opts, Tracer: m.Tracer}

	children := modelChildren(clonedRoot)
	clone.slots = make([]*elemSlot, len(children))
	for i, c := range children {
		clone.slots[i] = newElemSlot(c)
	}

	return clone
}

/*
Subclass returns a clone of the receiver named name, with the content
elements named in overrides replaced by the supplied values (the
ancestor Model, and any other clone derived from it, is left
untouched).
*/
func (m *Model) Subclass(name string, overrides map[string]any) *Model {
	c := m.Clone()
	c.Name = name
	for k, v := range overrides {
		if slot := c.slotByName(k); slot != nil {
			slot.val = v
		}
	}
	return c
}

func (m *Model) slotByName(name string) *elemSlot {
	for _, s := range m.slots {
		if s.d.declName() == name {
			return s
		}
	}
	return nil
}

/*
Set assigns val to the content element named name, returning false if
no such element exists.
*/
func (m *Model) Set(name string, val any) (ok bool) {
	if slot := m.slotByName(name); slot != nil {
		slot.val = val
		ok = true
	}
	return
}

/*
Get returns the current value of the content element named name,
alongside a presence-indicative Boolean.
*/
func (m *Model) Get(name string) (val any, ok bool) {
	if slot := m.slotByName(name); slot != nil {
		val, ok = slot.val, true
	}
	return
}

/*
ToH returns a recursive map[string]any representation of the
receiver's current content, nested [Model] values rendered via their
own ToH, and [Wrapper] values rendered via their materialized element.
*/
func (m *Model) ToH() map[string]any {
	out := make(map[string]any, len(m.slots))
	for _, s := range m.slots {
		name := s.d.declName()
		if name == "" {
			continue
		}
		switch v := s.val.(type) {
		case *Model:
			if v != nil {
				out[name] = v.ToH()
			}
		case *Wrapper:
			out[name] = v.Materialize()
		default:
			out[name] = v
		}
	}
	return out
}

/*
ToDER returns the DER encoding of the receiver's current content
alongside an error following an attempt to marshal it.
*/
func (m *Model) ToDER() ([]byte, error) {
	pkt, err := m.encode(DER, nil)
	if err != nil {
		return nil, err
	}
	return pkt.Data(), nil
}

/*
Marshal returns the encoding of the receiver's current content under
rule, alongside an error following an attempt to produce it.
*/
func (m *Model) Marshal(rule EncodingRule) ([]byte, error) {
	pkt, err := m.encode(rule, nil)
	if err != nil {
		return nil, err
	}
	return pkt.Data(), nil
}

func (m *Model) encode(rule EncodingRule, opts *Options) (Packet, error) {
	traceEnter(m.Tracer, "Model.encode:"+m.Name)
	defer traceExit(m.Tracer, "Model.encode:"+m.Name)

	pkt := rule.New()
	if err := m.encodeInto(pkt, opts); err != nil {
		traceEvent(m.Tracer, EventModel, "Model.encode: "+m.Name+" failed: "+err.Error())
		return nil, err
	}
	pkt.SetOffset(0)
	return pkt, nil
}

func (m *Model) encodeInto(pkt Packet, opts *Options) (err error) {
	if opts == nil {
		opts = &m.opts
	}
	sub := pkt.Type().New()

	for i := 0; i < len(m.slots) && err == nil; i++ {
		slot := m.slots[i]
		fOpts := slot.d.declOptions()

		if fOpts.Optional && slot.val == nil {
			continue
		}

		switch dv := slot.d.(type) {
		case ModelElem:
			inner, _ := slot.val.(*Model)
			if inner == nil {
				if fOpts.Optional {
					continue
				}
				err = modelValidationErrorf("model " + m.Name + ": content " + dv.Name + " has no nested Model assigned")
				continue
			}
			err = inner.encodeInto(sub, &fOpts)
		case WrapElem:
			elem := dv.W.Materialize()
			if elem == nil {
				if fOpts.Optional {
					continue
				}
				err = modelValidationErrorf("model " + m.Name + ": content " + dv.Name + " wrapper produced no element")
				continue
			}
			err = marshalValue(refValueOf(elem), sub, &fOpts)
		default:
			if slot.val == nil {
				if fOpts.Optional {
					continue
				}
				err = modelValidationErrorf("model " + m.Name + ": content " + slot.d.declName() + " has no value assigned")
				continue
			}
			err = marshalValue(refValueOf(slot.val), sub, &fOpts)
		}
	}

	if err != nil {
		return
	}

	return marshalSequenceWrap(sub, pkt, opts)
}

/*
Decode returns an error following an attempt to decode pkt's next
SEQUENCE TLV into the receiver's content, in declaration order.
*/
func (m *Model) Decode(pkt Packet) error {
	traceEnter(m.Tracer, "Model.Decode:"+m.Name)
	defer traceExit(m.Tracer, "Model.Decode:"+m.Name)

	err := m.decodeFrom(pkt, nil)
	if err != nil {
		traceEvent(m.Tracer, EventModel, "Model.Decode: "+m.Name+" failed: "+err.Error())
	}
	return err
}

func (m *Model) decodeFrom(pkt Packet, opts *Options) (err error) {
	var tlv TLV
	if tlv, err = pkt.TLV(); err != nil {
		return compositeErrorf("Model.decodeFrom: reading SEQUENCE header failed for ", m.Name, ": ", err.Error())
	}

	start := pkt.Offset()
	end := start + tlv.Length
	if end > pkt.Len() {
		return compositeErrorf("Model.decodeFrom: truncated content for ", m.Name)
	}

	content := pkt.Data()[start:end]
	pkt.SetOffset(end)

	sub := pkt.Type().New(content...)
	sub.SetOffset(0)

	for i := 0; i < len(m.slots) && err == nil; i++ {
		slot := m.slots[i]
		fOpts := slot.d.declOptions()

		if (fOpts.Optional || fOpts.Default != nil) && !sub.HasMoreData() {
			continue
		}

		switch dv := slot.d.(type) {
		case ModelElem:
			inner := dv.Inner.Clone()
			if inner == nil {
				err = modelValidationErrorf("model " + m.Name + ": content " + dv.Name + " has no nested Model declared")
				continue
			}
			if err = inner.decodeFrom(sub, &fOpts); err == nil {
				slot.val = inner
			}
		case WrapElem:
			elem := dv.W.Materialize()
			if elem == nil {
				err = modelValidationErrorf("model " + m.Name + ": content " + dv.Name + " wrapper produced no element")
				continue
			}
			ptr := reflect.New(reflect.TypeOf(elem))
			if err = unmarshalValue(sub, ptr.Elem(), &fOpts); err == nil {
				slot.val = ptr.Elem().Interface()
			}
		default:
			proto := slot.val
			if proto == nil {
				if be, ok := slot.d.(BaseElem); ok {
					proto = be.Value
				}
			}
			if proto == nil {
				err = modelValidationErrorf("model " + m.Name + ": content " + slot.d.declName() + " has no prototype value to decode into")
				continue
			}
			ptr := reflect.New(reflect.TypeOf(proto))
			if err = unmarshalValue(sub, ptr.Elem(), &fOpts); err == nil {
				slot.val = ptr.Elem().Interface()
			}
		}
	}

	return
}

var (
	modelRegistryMu sync.RWMutex
	modelRegistry   = map[reflect.Type]*Model{}
)

/*
RegisterModel associates the prototype [Model] m with the Go type T,
making it resolvable via [ParseModel][T].
*/
func RegisterModel[T any](m *Model) {
	modelRegistryMu.Lock()
	defer modelRegistryMu.Unlock()
	var zero T
	modelRegistry[reflect.TypeOf(&zero).Elem()] = m
}

/*
ParseModel returns a [Model] alongside an error following an attempt
to decode data (encoded per rule) into a fresh clone of the [Model]
previously registered for T via [RegisterModel].
*/
func ParseModel[T any](data []byte, rule EncodingRule) (*Model, error) {
	var zero T
	t := reflect.TypeOf(&zero).Elem()

	modelRegistryMu.RLock()
	proto, ok := modelRegistry[t]
	modelRegistryMu.RUnlock()
	if !ok {
		return nil, notImplementedErrorf("ParseModel: no Model registered for type ", t.String())
	}

	m := proto.Clone()
	pkt := rule.New(data...)
	pkt.SetOffset(0)

	if err := m.decodeFrom(pkt, nil); err != nil {
		return nil, err
	}

	return m, nil
}
