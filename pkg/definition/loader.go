package definition

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"
	"gopkg.in/yaml.v3"

	fabricator "github.com/goliatone/go-fabricator"
)

// templates compiles interpolated attribute expressions. Definitions only
// ever render inline strings, but pongo2.NewSet requires at least one
// loader, so a local filesystem loader is attached even though FromString
// never consults it.
var templates = pongo2.NewSet("fabricator-definitions", pongo2.MustNewLocalFileSystemLoader(""))

// Load reads a definition file from disk and compiles it.
func Load(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("definition: path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("definition: read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadFS reads a definition file from an abstract filesystem and compiles it.
func LoadFS(fsys fs.FS, path string) (*Registry, error) {
	if fsys == nil {
		return nil, errors.New("definition: filesystem is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("definition: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse compiles a YAML definition document into a registry of fabricators.
// All validation is eager: malformed attributes, unknown association
// targets, association cycles, and template parse errors all fail here
// rather than at fabrication time.
func Parse(data []byte) (*Registry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("definition: document is empty")
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("definition: parse: %w", err)
	}
	if len(doc.Models) == 0 {
		return nil, errors.New("definition: document declares no models")
	}

	b := &builder{
		doc:      doc,
		built:    make(map[string]*fabricator.Fabricator, len(doc.Models)),
		visiting: make(map[string]bool),
	}

	names := make([]string, 0, len(doc.Models))
	for name := range doc.Models {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := b.build(name); err != nil {
			return nil, err
		}
	}

	return &Registry{fabricators: b.built, order: names}, nil
}

type builder struct {
	doc      Document
	built    map[string]*fabricator.Fabricator
	visiting map[string]bool
}

// build compiles one model, recursing into association targets first so a
// child fabricator exists before any template binds to it.
func (b *builder) build(name string) (*fabricator.Fabricator, error) {
	if fab, ok := b.built[name]; ok {
		return fab, nil
	}
	if b.visiting[name] {
		return nil, fmt.Errorf("definition: association cycle involving model %q", name)
	}
	model, ok := b.doc.Models[name]
	if !ok {
		return nil, fmt.Errorf("definition: model %q is not defined", name)
	}

	b.visiting[name] = true
	defer delete(b.visiting, name)

	template := make(fabricator.Template, 0, len(model.Attributes))
	for _, attr := range model.Attributes {
		entry, err := b.compile(name, attr)
		if err != nil {
			return nil, err
		}
		template = append(template, entry)
	}

	fab, err := fabricator.New(name, template)
	if err != nil {
		return nil, fmt.Errorf("definition: model %q: %w", name, err)
	}
	b.built[name] = fab
	return fab, nil
}

func (b *builder) compile(model string, attr Attribute) (fabricator.Entry, error) {
	name := strings.TrimSpace(attr.Name)
	if name == "" {
		return fabricator.Entry{}, fmt.Errorf("definition: model %q declares an attribute without a name", model)
	}
	if attr.forms() != 1 {
		return fabricator.Entry{}, fmt.Errorf("definition: model %q attribute %q must set exactly one of value, sequence, template, or association", model, name)
	}
	if attr.Association == "" && (attr.Count != nil || len(attr.Overrides) > 0) {
		return fabricator.Entry{}, fmt.Errorf("definition: model %q attribute %q sets count or overrides without an association", model, name)
	}

	switch {
	case attr.Value != nil:
		switch attr.Value.(type) {
		case string, bool:
			return fabricator.Attr(name, attr.Value), nil
		default:
			return fabricator.Entry{}, fmt.Errorf("definition: model %q attribute %q: literal must be a string or bool, got %T", model, name, attr.Value)
		}

	case attr.Sequence != "":
		format := attr.Sequence
		return fabricator.Attr(name, fabricator.Sequence(func(id int) (any, error) {
			return fmt.Sprintf(format, id), nil
		})), nil

	case attr.Template != "":
		tpl, err := templates.FromString(attr.Template)
		if err != nil {
			return fabricator.Entry{}, fmt.Errorf("definition: model %q attribute %q: parse template: %w", model, name, err)
		}
		return fabricator.Attr(name, fabricator.Derived(func(attrs fabricator.Attributes) (any, error) {
			var buf bytes.Buffer
			if err := tpl.ExecuteWriter(pongo2.Context(attrs), &buf); err != nil {
				return nil, fmt.Errorf("render template: %w", err)
			}
			return buf.String(), nil
		})), nil

	default:
		child, err := b.build(attr.Association)
		if err != nil {
			return fabricator.Entry{}, err
		}
		overrides, err := compileOverrides(model, name, attr.Overrides)
		if err != nil {
			return fabricator.Entry{}, err
		}
		if attr.Count != nil {
			return fabricator.Attr(name, fabricator.AssociateToMany(child, *attr.Count, overrides)), nil
		}
		return fabricator.Attr(name, fabricator.Associate(child, overrides)), nil
	}
}

// compileOverrides restricts association overrides to literals; producer
// overrides would need access to the parent's in-progress state, which the
// engine deliberately scopes per fabricator.
func compileOverrides(model, attribute string, overrides []Attribute) (fabricator.Template, error) {
	if len(overrides) == 0 {
		return nil, nil
	}
	template := make(fabricator.Template, 0, len(overrides))
	for _, override := range overrides {
		name := strings.TrimSpace(override.Name)
		if name == "" {
			return nil, fmt.Errorf("definition: model %q attribute %q declares an override without a name", model, attribute)
		}
		switch override.Value.(type) {
		case string, bool:
			template = append(template, fabricator.Attr(name, override.Value))
		default:
			return nil, fmt.Errorf("definition: model %q attribute %q override %q must be a string or bool literal", model, attribute, name)
		}
	}
	return template, nil
}
