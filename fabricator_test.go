package fabricator_test

import (
	"fmt"
	"testing"

	fabricator "github.com/goliatone/go-fabricator"
	"github.com/goliatone/go-fabricator/pkg/testsupport"
)

func TestLiteralTemplate(t *testing.T) {
	user := testsupport.MustNew(t, "User", fabricator.Template{
		fabricator.Attr("name", "Frodo"),
		fabricator.Attr("age", "30"),
	})

	first := testsupport.MustCreate(t, user, nil)
	want := fabricator.Object{"id": 1, "name": "Frodo", "age": "30"}
	if diff := testsupport.Diff(want, first); diff != "" {
		t.Fatalf("first create mismatch (-want +got):\n%s", diff)
	}

	second := testsupport.MustCreate(t, user, nil)
	want["id"] = 2
	if diff := testsupport.Diff(want, second); diff != "" {
		t.Fatalf("second create mismatch (-want +got):\n%s", diff)
	}
}

func TestSequenceAndDerivedHelpers(t *testing.T) {
	user := testsupport.MustNew(t, "User", fabricator.Template{
		fabricator.Attr("name", fabricator.Sequence(func(id int) (any, error) {
			return fmt.Sprintf("User%d", id), nil
		})),
		fabricator.Attr("email", fabricator.Derived(func(attrs fabricator.Attributes) (any, error) {
			return fmt.Sprintf("%v@mail.com", attrs["name"]), nil
		})),
	})

	object := testsupport.MustCreate(t, user, nil)
	want := fabricator.Object{"id": 1, "name": "User1", "email": "User1@mail.com"}
	if diff := testsupport.Diff(want, object); diff != "" {
		t.Fatalf("object mismatch (-want +got):\n%s", diff)
	}
}

func TestAssociateToManyAcrossBatches(t *testing.T) {
	book := testsupport.MustNew(t, "Book", nil)
	author := testsupport.MustNew(t, "Author", fabricator.Template{
		fabricator.Attr("book", fabricator.AssociateToMany(book, 2, nil)),
	})

	authors := testsupport.MustCreateMany(t, author, 2, nil)

	wantBookID := 1
	for i, object := range authors {
		if object["id"] != i+1 {
			t.Fatalf("author %d: expected id %d, got %v", i, i+1, object["id"])
		}
		books := object["book"].([]fabricator.Object)
		for _, nested := range books {
			if nested["id"] != wantBookID {
				t.Fatalf("expected globally contiguous book id %d, got %v", wantBookID, nested["id"])
			}
			wantBookID++
		}
	}

	author.Clean()
	if book.CurrentID() != 0 {
		t.Fatalf("expected cascade reset, book counter is %d", book.CurrentID())
	}
}

func TestExtendOverridesAndAppends(t *testing.T) {
	user := testsupport.MustNew(t, "User", fabricator.Template{
		fabricator.Attr("name", "Frodo"),
		fabricator.Attr("role", "member"),
	})

	admin, err := user.Extend("Admin", fabricator.Template{
		fabricator.Attr("role", "admin"),
		fabricator.Attr("superuser", true),
	})
	if err != nil {
		t.Fatalf("extend: %v", err)
	}

	object := testsupport.MustCreate(t, admin, nil)
	want := fabricator.Object{"id": 1, "name": "Frodo", "role": "admin", "superuser": true}
	if diff := testsupport.Diff(want, object); diff != "" {
		t.Fatalf("extended object mismatch (-want +got):\n%s", diff)
	}
	if user.CurrentID() != 0 {
		t.Fatalf("extended creates must not touch the parent counter, got %d", user.CurrentID())
	}
}
