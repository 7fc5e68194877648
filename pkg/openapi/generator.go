package openapi

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	fabricator "github.com/goliatone/go-fabricator"
)

const componentPrefix = "#/components/schemas/"

// Generator derives fabricators from the component schemas of a parsed
// OpenAPI document. Fabricators are memoized per schema name, so repeated
// lookups and association edges share one id counter per model.
type Generator struct {
	spec  *openapi3.T
	cache map[string]*fabricator.Fabricator
}

// Load parses an OpenAPI document from raw bytes. The document must declare
// at least one component schema; paths are not required.
func Load(data []byte) (*Generator, error) {
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi: document declares no component schemas")
	}

	return &Generator{
		spec:  spec,
		cache: make(map[string]*fabricator.Fabricator, len(spec.Components.Schemas)),
	}, nil
}

// Components lists the available component schema names in sorted order.
func (g *Generator) Components() []string {
	names := make([]string, 0, len(g.spec.Components.Schemas))
	for name := range g.spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fabricator returns the fabricator derived from the named component
// schema, building and memoizing it (and any associated child schemas) on
// first use. Recursive schema references are rejected.
func (g *Generator) Fabricator(name string) (*fabricator.Fabricator, error) {
	return g.build(name, make(map[string]bool))
}

func (g *Generator) build(name string, visiting map[string]bool) (*fabricator.Fabricator, error) {
	if fab, ok := g.cache[name]; ok {
		return fab, nil
	}
	ref, ok := g.spec.Components.Schemas[name]
	if !ok {
		return nil, fmt.Errorf("openapi: schema %q not found", name)
	}
	if ref.Value == nil {
		return nil, fmt.Errorf("openapi: schema %q is unresolved", name)
	}
	return g.buildSchema(name, ref.Value, visiting)
}

func (g *Generator) buildSchema(name string, schema *openapi3.Schema, visiting map[string]bool) (*fabricator.Fabricator, error) {
	if fab, ok := g.cache[name]; ok {
		return fab, nil
	}
	if visiting[name] {
		return nil, fmt.Errorf("openapi: recursive reference to schema %q", name)
	}
	visiting[name] = true
	defer delete(visiting, name)

	properties := make([]string, 0, len(schema.Properties))
	for property := range schema.Properties {
		properties = append(properties, property)
	}
	sort.Strings(properties)

	template := make(fabricator.Template, 0, len(properties))
	for _, property := range properties {
		if property == "id" {
			// The engine assigns ids.
			continue
		}
		entry, ok, err := g.entryFor(name, property, schema.Properties[property], visiting)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		template = append(template, entry)
	}

	fab, err := fabricator.New(name, template)
	if err != nil {
		return nil, fmt.Errorf("openapi: schema %q: %w", name, err)
	}
	g.cache[name] = fab
	return fab, nil
}

// entryFor maps one schema property to a template entry. Properties with no
// fixture representation (untyped schemas, scalar arrays) are skipped rather
// than rejected, mirroring how unusable operations are skipped upstream.
func (g *Generator) entryFor(owner, property string, ref *openapi3.SchemaRef, visiting map[string]bool) (fabricator.Entry, bool, error) {
	if ref == nil {
		return fabricator.Entry{}, false, nil
	}

	if name, ok := componentName(ref.Ref); ok {
		child, err := g.build(name, visiting)
		if err != nil {
			return fabricator.Entry{}, false, err
		}
		return fabricator.Attr(property, fabricator.Associate(child, nil)), true, nil
	}

	schema := ref.Value
	if schema == nil {
		return fabricator.Entry{}, false, nil
	}

	switch firstSchemaType(schema.Type) {
	case "string":
		if value, ok := schema.Default.(string); ok {
			return fabricator.Attr(property, value), true, nil
		}
		if len(schema.Enum) > 0 {
			if value, ok := schema.Enum[0].(string); ok {
				return fabricator.Attr(property, value), true, nil
			}
		}
		return fabricator.Attr(property, fabricator.Sequence(func(id int) (any, error) {
			return fmt.Sprintf("%s-%d", property, id), nil
		})), true, nil

	case "boolean":
		if value, ok := schema.Default.(bool); ok {
			return fabricator.Attr(property, value), true, nil
		}
		return fabricator.Attr(property, false), true, nil

	case "integer":
		return fabricator.Attr(property, fabricator.Sequence(func(id int) (any, error) {
			return id, nil
		})), true, nil

	case "number":
		return fabricator.Attr(property, fabricator.Sequence(func(id int) (any, error) {
			return float64(id), nil
		})), true, nil

	case "object":
		child, err := g.buildSchema(owner+"."+property, schema, visiting)
		if err != nil {
			return fabricator.Entry{}, false, err
		}
		return fabricator.Attr(property, fabricator.Associate(child, nil)), true, nil

	case "array":
		return g.arrayEntry(owner, property, schema, visiting)

	default:
		return fabricator.Entry{}, false, nil
	}
}

func (g *Generator) arrayEntry(owner, property string, schema *openapi3.Schema, visiting map[string]bool) (fabricator.Entry, bool, error) {
	items := schema.Items
	if items == nil {
		return fabricator.Entry{}, false, nil
	}

	count := int(schema.MinItems)
	if count < 1 {
		count = 1
	}

	if name, ok := componentName(items.Ref); ok {
		child, err := g.build(name, visiting)
		if err != nil {
			return fabricator.Entry{}, false, err
		}
		return fabricator.Attr(property, fabricator.AssociateToMany(child, count, nil)), true, nil
	}

	if items.Value != nil && firstSchemaType(items.Value.Type) == "object" {
		child, err := g.buildSchema(owner+"."+property, items.Value, visiting)
		if err != nil {
			return fabricator.Entry{}, false, err
		}
		return fabricator.Attr(property, fabricator.AssociateToMany(child, count, nil)), true, nil
	}

	// Scalar item arrays have no fixture representation.
	return fabricator.Entry{}, false, nil
}

func componentName(ref string) (string, bool) {
	if ref == "" || !strings.HasPrefix(ref, componentPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(ref, componentPrefix)
	return name, name != ""
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
