package fabric

import "fmt"

// Kind identifies which producer variant an attribute spec holds. Raw string
// and bool template values are literals and never carry a Spec at all; the
// resolver copies them verbatim.
type Kind string

const (
	KindSequence    Kind = "sequence"
	KindDerived     Kind = "derived"
	KindAssociation Kind = "association"
)

// Attributes is the read view of the attributes resolved so far for the
// instance currently being built. Derived helpers observe only keys declared
// earlier in template order, never their own key or later ones.
type Attributes map[string]any

// Object is one fabricated instance: an integer "id" entry plus one entry per
// resolved attribute. Nested fabrications appear verbatim as attribute
// values. The engine holds no reference to an Object after returning it.
type Object map[string]any

// SequenceFunc produces a value from the id assigned to the instance
// currently being built.
type SequenceFunc func(id int) (any, error)

// DerivedFunc produces a value from the attributes resolved earlier in the
// same fabrication call.
type DerivedFunc func(attrs Attributes) (any, error)

// Spec is the producer variant stored in templates alongside raw literals.
// Associations additionally carry the child fabricator, override attributes,
// and multiplicity so the resolver can register the child before creating.
type Spec struct {
	kind      Kind
	sequence  SequenceFunc
	derived   DerivedFunc
	child     *Fabricator
	many      bool
	count     int
	overrides Template
}

// Kind reports which variant the spec holds.
func (s *Spec) Kind() Kind {
	return s.kind
}

// Child returns the associated fabricator, or nil for non-association specs.
func (s *Spec) Child() *Fabricator {
	if s.kind != KindAssociation {
		return nil
	}
	return s.child
}

// Sequence returns an attribute spec that calls fn with the id already
// assigned to the instance being built. Ids increase by one per instance the
// owning fabricator creates, batch calls included.
func Sequence(fn SequenceFunc) *Spec {
	return &Spec{kind: KindSequence, sequence: fn}
}

// Derived returns an attribute spec that calls fn with the in-progress
// attribute map. Resolution is sequential in template order, so fn can only
// rely on attributes declared before its own key.
func Derived(fn DerivedFunc) *Spec {
	return &Spec{kind: KindDerived, derived: fn}
}

// Associate returns an attribute spec that resolves to one object created by
// child with the given overrides. Resolving it also registers child with the
// parent so a later Clean on the parent cascades into child.
func Associate(child *Fabricator, overrides Template) *Spec {
	return &Spec{kind: KindAssociation, child: child, overrides: cloneTemplate(overrides)}
}

// AssociateToMany is Associate for an ordered slice of count objects. The
// count is validated when the child's CreateMany runs, not at construction.
func AssociateToMany(child *Fabricator, count int, overrides Template) *Spec {
	return &Spec{kind: KindAssociation, child: child, many: true, count: count, overrides: cloneTemplate(overrides)}
}

// resolveEntry evaluates one template entry against the in-progress state of
// the instance identified by id. Association specs append the child to the
// parent's registration list before creating, so the reset cascade includes
// every fabricator that contributed to the instance, once per trigger.
func (f *Fabricator) resolveEntry(value any, id int, inProgress Attributes) (any, error) {
	spec, ok := value.(*Spec)
	if !ok {
		// Validated literal, copied verbatim.
		return value, nil
	}

	switch spec.kind {
	case KindSequence:
		return spec.sequence(id)
	case KindDerived:
		return spec.derived(inProgress)
	case KindAssociation:
		f.children = append(f.children, spec.child)
		if spec.many {
			return spec.child.CreateMany(spec.count, spec.overrides)
		}
		return spec.child.Create(spec.overrides)
	default:
		return nil, fmt.Errorf("unknown attribute kind %q", spec.kind)
	}
}
