// Package fabricator fabricates plain data objects for automated tests.
//
// A Fabricator pairs a model name with an ordered attribute template whose
// values are literals (string/bool) or producers: Sequence functions fed an
// auto-incrementing per-fabricator id, Derived functions fed the attributes
// resolved so far, and associations that delegate an attribute to another
// fabricator. Association graphs are registered as they are triggered and
// torn down together via Clean, restoring id counters for test isolation.
//
// The engine lives under internal/fabric; this package re-exports the public
// surface. Declarative YAML definitions and OpenAPI-derived templates are
// provided by pkg/definition and pkg/openapi.
package fabricator

import "github.com/goliatone/go-fabricator/internal/fabric"

// Fabricator produces fabricated instances of one named model.
type Fabricator = fabric.Fabricator

// Template is the ordered attribute map a fabricator resolves per instance.
type Template = fabric.Template

// Entry is one named attribute in a template.
type Entry = fabric.Entry

// Spec is a producer-valued attribute: sequence, derived, or association.
type Spec = fabric.Spec

// Attributes is the resolved-so-far view passed to Derived functions.
type Attributes = fabric.Attributes

// Object is one fabricated instance: an integer id plus resolved attributes.
type Object = fabric.Object

// SequenceFunc produces a value from the id of the instance being built.
type SequenceFunc = fabric.SequenceFunc

// DerivedFunc produces a value from the attributes resolved earlier in the
// same fabrication call.
type DerivedFunc = fabric.DerivedFunc

// Validation errors returned by constructors and creation calls. All checks
// run eagerly at the boundary; once fabrication starts, only producer
// failures can abort a call.
var (
	ErrInvalidModelName      = fabric.ErrInvalidModelName
	ErrInvalidAttributes     = fabric.ErrInvalidAttributes
	ErrInvalidAttributeValue = fabric.ErrInvalidAttributeValue
	ErrInvalidCount          = fabric.ErrInvalidCount
)

// New constructs a fabricator for the named model. The template may be nil
// for models with no attributes beyond the id.
func New(model string, template Template) (*Fabricator, error) {
	return fabric.New(model, template)
}

// Attr builds a template entry; value must be a string, bool, or *Spec.
func Attr(name string, value any) Entry {
	return fabric.Attr(name, value)
}

// Sequence returns an attribute spec evaluated once per object with the id
// already assigned to that object.
func Sequence(fn SequenceFunc) *Spec {
	return fabric.Sequence(fn)
}

// Derived returns an attribute spec evaluated against the attributes
// resolved earlier in template order for the same object.
func Derived(fn DerivedFunc) *Spec {
	return fabric.Derived(fn)
}

// Associate returns an attribute spec that resolves to one object created by
// child, registering child with the parent for cascade reset.
func Associate(child *Fabricator, overrides Template) *Spec {
	return fabric.Associate(child, overrides)
}

// AssociateToMany returns an attribute spec that resolves to an ordered
// slice of count objects created by child, with the same registration side
// effect as Associate.
func AssociateToMany(child *Fabricator, count int, overrides Template) *Spec {
	return fabric.AssociateToMany(child, count, overrides)
}
