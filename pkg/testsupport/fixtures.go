// Package testsupport bundles small helpers shared by the package tests.
// Helpers fail the test on error to keep contract tests concise.
package testsupport

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	fabricator "github.com/goliatone/go-fabricator"
)

// MustNew constructs a fabricator, failing the test when validation rejects
// the model name or template.
func MustNew(t *testing.T, model string, template fabricator.Template) *fabricator.Fabricator {
	t.Helper()

	fab, err := fabricator.New(model, template)
	if err != nil {
		t.Fatalf("new fabricator %s: %v", model, err)
	}
	return fab
}

// MustCreate fabricates one object, failing the test on error.
func MustCreate(t *testing.T, fab *fabricator.Fabricator, overrides fabricator.Template) fabricator.Object {
	t.Helper()

	object, err := fab.Create(overrides)
	if err != nil {
		t.Fatalf("create %s: %v", fab.Model(), err)
	}
	return object
}

// MustCreateMany fabricates a batch, failing the test on error.
func MustCreateMany(t *testing.T, fab *fabricator.Fabricator, count int, overrides fabricator.Template) []fabricator.Object {
	t.Helper()

	objects, err := fab.CreateMany(count, overrides)
	if err != nil {
		t.Fatalf("create %d %s: %v", count, fab.Model(), err)
	}
	return objects
}

// Diff returns a human-readable diff between two values.
func Diff(want, got any) string {
	return cmp.Diff(want, got)
}
