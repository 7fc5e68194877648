package definition

// Document is the root of a fixture definition file.
type Document struct {
	Models map[string]Model `yaml:"models"`
}

// Model declares one fabricator as an ordered list of attribute definitions.
// List order is the template order, which controls what template expressions
// can observe.
type Model struct {
	Attributes []Attribute `yaml:"attributes"`
}

// Attribute declares a single template entry. Exactly one of Value,
// Sequence, Template, or Association may be set; Count and Overrides are
// only valid alongside Association.
type Attribute struct {
	Name string `yaml:"name"`

	// Value is a literal string or bool copied verbatim.
	Value any `yaml:"value"`
	// Sequence is a fmt format string applied to the instance id.
	Sequence string `yaml:"sequence"`
	// Template is a pongo2 expression rendered against the attributes
	// resolved earlier in the same instance.
	Template string `yaml:"template"`
	// Association names another model in the document whose fabricator
	// produces this attribute's value.
	Association string `yaml:"association"`

	// Count turns the association into a many-association of that length.
	Count *int `yaml:"count"`
	// Overrides are literal attributes passed to the associated fabricator.
	Overrides []Attribute `yaml:"overrides"`
}

func (a Attribute) forms() int {
	forms := 0
	if a.Value != nil {
		forms++
	}
	if a.Sequence != "" {
		forms++
	}
	if a.Template != "" {
		forms++
	}
	if a.Association != "" {
		forms++
	}
	return forms
}
