package openapi_test

import (
	"strings"
	"testing"

	fabricator "github.com/goliatone/go-fabricator"
	"github.com/goliatone/go-fabricator/pkg/openapi"
	"github.com/goliatone/go-fabricator/pkg/testsupport"
)

const document = `{
  "openapi": "3.0.0",
  "info": {"title": "fixtures", "version": "1.0.0"},
  "paths": {},
  "components": {
    "schemas": {
      "User": {
        "type": "object",
        "properties": {
          "id": {"type": "integer"},
          "name": {"type": "string"},
          "role": {"type": "string", "default": "member"},
          "active": {"type": "boolean", "default": true},
          "age": {"type": "integer"}
        }
      },
      "Post": {
        "type": "object",
        "properties": {
          "title": {"type": "string"},
          "author": {"$ref": "#/components/schemas/User"},
          "tags": {
            "type": "array",
            "minItems": 2,
            "items": {
              "type": "object",
              "properties": {"label": {"type": "string"}}
            }
          }
        }
      }
    }
  }
}`

func mustLoad(t *testing.T, data string) *openapi.Generator {
	t.Helper()
	gen, err := openapi.Load([]byte(data))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return gen
}

func TestLoadListsComponents(t *testing.T) {
	gen := mustLoad(t, document)

	want := []string{"Post", "User"}
	if diff := testsupport.Diff(want, gen.Components()); diff != "" {
		t.Fatalf("components mismatch (-want +got):\n%s", diff)
	}
}

func TestFabricatorFromSchema(t *testing.T) {
	gen := mustLoad(t, document)

	user, err := gen.Fabricator("User")
	if err != nil {
		t.Fatalf("fabricator: %v", err)
	}

	object := testsupport.MustCreate(t, user, nil)
	want := fabricator.Object{
		"id":     1,
		"active": true,
		"age":    1,
		"name":   "name-1",
		"role":   "member",
	}
	if diff := testsupport.Diff(want, object); diff != "" {
		t.Fatalf("object mismatch (-want +got):\n%s", diff)
	}
}

func TestFabricatorIsMemoized(t *testing.T) {
	gen := mustLoad(t, document)

	first, err := gen.Fabricator("User")
	if err != nil {
		t.Fatalf("fabricator: %v", err)
	}
	second, err := gen.Fabricator("User")
	if err != nil {
		t.Fatalf("fabricator: %v", err)
	}
	if first != second {
		t.Fatal("expected the same fabricator instance on repeated lookups")
	}
}

func TestReferencesBecomeAssociations(t *testing.T) {
	gen := mustLoad(t, document)

	user, err := gen.Fabricator("User")
	if err != nil {
		t.Fatalf("fabricator User: %v", err)
	}
	post, err := gen.Fabricator("Post")
	if err != nil {
		t.Fatalf("fabricator Post: %v", err)
	}

	// Consume one user id directly; the association shares the counter.
	testsupport.MustCreate(t, user, nil)
	object := testsupport.MustCreate(t, post, nil)

	author, ok := object["author"].(fabricator.Object)
	if !ok {
		t.Fatalf("expected nested author, got %T", object["author"])
	}
	if author["id"] != 2 {
		t.Fatalf("expected author id 2, got %v", author["id"])
	}

	tags, ok := object["tags"].([]fabricator.Object)
	if !ok {
		t.Fatalf("expected nested tag slice, got %T", object["tags"])
	}
	if len(tags) != 2 {
		t.Fatalf("expected minItems tags, got %d", len(tags))
	}
	for i, tag := range tags {
		wantLabel := []string{"label-1", "label-2"}[i]
		if tag["label"] != wantLabel {
			t.Fatalf("tag %d: expected %q, got %v", i, wantLabel, tag["label"])
		}
	}

	// Cascade reset reaches schema-derived children too.
	post.Clean()
	if user.CurrentID() != 0 {
		t.Fatalf("expected user counter reset via cascade, got %d", user.CurrentID())
	}
}

func TestUnknownSchema(t *testing.T) {
	gen := mustLoad(t, document)

	if _, err := gen.Fabricator("Missing"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRecursiveReference(t *testing.T) {
	recursive := `{
  "openapi": "3.0.0",
  "info": {"title": "fixtures", "version": "1.0.0"},
  "paths": {},
  "components": {
    "schemas": {
      "Node": {
        "type": "object",
        "properties": {
          "label": {"type": "string"},
          "parent": {"$ref": "#/components/schemas/Node"}
        }
      }
    }
  }
}`

	gen := mustLoad(t, recursive)
	if _, err := gen.Fabricator("Node"); err == nil || !strings.Contains(err.Error(), "recursive") {
		t.Fatalf("expected recursive-reference error, got %v", err)
	}
}

func TestLoadRejectsEmptyDocuments(t *testing.T) {
	if _, err := openapi.Load(nil); err == nil {
		t.Fatal("expected an error for empty payload")
	}

	noSchemas := `{"openapi": "3.0.0", "info": {"title": "x", "version": "1"}, "paths": {}}`
	if _, err := openapi.Load([]byte(noSchemas)); err == nil || !strings.Contains(err.Error(), "no component schemas") {
		t.Fatalf("expected no-schemas error, got %v", err)
	}
}
