// Package fabric implements the attribute-resolution and association engine
// behind the public fabricator API: how an ordered template of literal,
// sequence, derived, and association values becomes a concrete object, and
// how association graphs are registered and reset together.
package fabric

import "fmt"

// Entry is one named attribute in a template. Value must be a string, a
// bool, or a *Spec producer.
type Entry struct {
	Name  string
	Value any
}

// Template is the ordered attribute map a fabricator resolves per instance.
// Order is significant: derived attributes observe only earlier entries, and
// overrides replace entries in place so the original position is kept.
type Template []Entry

// Attr builds a template entry.
func Attr(name string, value any) Entry {
	return Entry{Name: name, Value: value}
}

// Fabricator produces fabricated instances of one named model from a
// template. It owns a monotonic id counter shared by every object it
// creates, and the append-only list of child fabricators it has associated
// with, used for cascade reset.
type Fabricator struct {
	model    string
	template Template

	currentID int
	created   int
	children  []*Fabricator
}

// New constructs a fabricator after eagerly validating the model name and
// every template entry.
func New(model string, template Template) (*Fabricator, error) {
	if err := validateModelName(model); err != nil {
		return nil, err
	}
	if err := validateTemplate(template); err != nil {
		return nil, err
	}
	return &Fabricator{model: model, template: cloneTemplate(template)}, nil
}

// Model returns the model name supplied at construction.
func (f *Fabricator) Model() string {
	return f.model
}

// CurrentID returns the id of the most recently created instance, or zero
// after construction or Clean.
func (f *Fabricator) CurrentID() int {
	return f.currentID
}

// CreatedCount reports the total number of objects this fabricator has
// created. Diagnostics only; Clean does not reset it.
func (f *Fabricator) CreatedCount() int {
	return f.created
}

// Children returns a copy of the association registration list in trigger
// order. Repeated triggers of the same child appear repeatedly.
func (f *Fabricator) Children() []*Fabricator {
	return append([]*Fabricator(nil), f.children...)
}

// Extend derives a brand-new fabricator whose template is this one's with
// the overrides merged in: override keys replace in place, new keys append.
// The result has its own counter and association list and no runtime link
// back to the receiver.
func (f *Fabricator) Extend(model string, overrides Template) (*Fabricator, error) {
	if err := validateModelName(model); err != nil {
		return nil, err
	}
	if err := validateTemplate(overrides); err != nil {
		return nil, err
	}
	return &Fabricator{model: model, template: mergeTemplates(f.template, overrides)}, nil
}

// Create fabricates one object from the stored template with the call-time
// overrides merged over it.
func (f *Fabricator) Create(overrides Template) (Object, error) {
	if err := validateTemplate(overrides); err != nil {
		return nil, err
	}
	return f.fabricate(mergeTemplates(f.template, overrides))
}

// CreateMany fabricates count objects sequentially via the same
// merge-and-fabricate path as Create, so ids and sequence outputs increase
// monotonically across the whole batch. Count zero yields an empty slice.
func (f *Fabricator) CreateMany(count int, overrides Template) ([]Object, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if err := validateTemplate(overrides); err != nil {
		return nil, err
	}

	merged := mergeTemplates(f.template, overrides)
	objects := make([]Object, 0, count)
	for i := 0; i < count; i++ {
		object, err := f.fabricate(merged)
		if err != nil {
			return nil, err
		}
		objects = append(objects, object)
	}
	return objects, nil
}

// Clean cascades depth-first into every registered child in registration
// order, then resets this fabricator's id counter to zero. The registration
// list itself is never cleared: membership only grows across creates, and a
// child registered more than once is cleaned more than once, which is
// harmless since reset only zeroes the counter.
func (f *Fabricator) Clean() {
	for _, child := range f.children {
		child.Clean()
	}
	f.currentID = 0
}

// fabricate assigns the next id, then resolves each template entry in
// declared order, writing every resolved value into the in-progress map
// immediately so later derived attributes of the same instance can observe
// it. No validation happens past this point; resolver failures abort the
// call with the counter already advanced.
func (f *Fabricator) fabricate(template Template) (Object, error) {
	f.currentID++
	f.created++

	inProgress := make(Attributes, len(template))
	object := make(Object, len(template)+1)
	object["id"] = f.currentID

	for _, entry := range template {
		value, err := f.resolveEntry(entry.Value, f.currentID, inProgress)
		if err != nil {
			return nil, fmt.Errorf("fabricator %s: attribute %q: %w", f.model, entry.Name, err)
		}
		object[entry.Name] = value
		inProgress[entry.Name] = value
	}
	return object, nil
}

func mergeTemplates(base, overrides Template) Template {
	merged := cloneTemplate(base)
	for _, override := range overrides {
		replaced := false
		for i := range merged {
			if merged[i].Name == override.Name {
				merged[i].Value = override.Value
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, override)
		}
	}
	return merged
}

func cloneTemplate(template Template) Template {
	if len(template) == 0 {
		return Template{}
	}
	return append(Template(nil), template...)
}
