package search

import (
	"reflect"
	"testing"
)

type member struct {
	ID    string
	Name  string
	Email string
}

func TestFilter_CaseInsensitiveSubstring(t *testing.T) {
	ix := New([]member{
		{ID: "M1", Name: "Alice", Email: "alice@example.com"},
		{ID: "M2", Name: "Bob", Email: "bob@example.com"},
		{ID: "M3", Name: "Khalid", Email: "khalid@example.com"},
	})

	got := ix.Filter("ali")
	if len(got) != 2 {
		t.Fatalf("expected Alice and Khalid, got %v", got)
	}
	if got[0].Name != "Alice" || got[1].Name != "Khalid" {
		t.Errorf("unexpected matches %v", got)
	}

	if got := ix.Filter("ALI"); len(got) != 2 {
		t.Errorf("query must be case-insensitive, got %v", got)
	}
}

func TestFilter_MatchesAnyKey(t *testing.T) {
	ix := New([]member{
		{ID: "M1", Name: "Alice", Email: "alice@example.com"},
		{ID: "M2", Name: "Bob", Email: "bob@example.com"},
	})

	// Hits via the ID field, not the name.
	got := ix.Filter("m2")
	if len(got) != 1 || got[0].Name != "Bob" {
		t.Errorf("expected match through ID, got %v", got)
	}
}

func TestFilter_EmptyQueryReturnsAll(t *testing.T) {
	items := []member{{ID: "M1"}, {ID: "M2"}}
	ix := New(items)

	got := ix.Filter("")
	if !reflect.DeepEqual(got, items) {
		t.Errorf("empty query must return everything, got %v", got)
	}

	// Whitespace-only counts as empty.
	if got := ix.Filter("   "); len(got) != 2 {
		t.Errorf("whitespace query must return everything, got %v", got)
	}

	// The result is a copy, not the backing slice.
	got[0].ID = "mutated"
	if items[0].ID != "M1" {
		t.Error("Filter leaked the backing slice")
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	ix := New([]member{
		{ID: "M3", Name: "Ann"},
		{ID: "M1", Name: "Anna"},
		{ID: "M2", Name: "Annabel"},
	})

	got := ix.Filter("ann")
	if got[0].ID != "M3" || got[1].ID != "M1" || got[2].ID != "M2" {
		t.Errorf("filter reordered results: %v", got)
	}
}

func TestFilter_EmptyCollection(t *testing.T) {
	ix := New([]member{})

	if got := ix.Filter("anything"); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
	if got := ix.Filter(""); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestFilter_MapElements(t *testing.T) {
	ix := New([]map[string]any{
		{"name": "Alice", "city": "Lagos"},
		{"name": "Bob", "city": "Accra"},
	})

	got := ix.Filter("accra")
	if len(got) != 1 || got[0]["name"] != "Bob" {
		t.Errorf("expected Bob via city, got %v", got)
	}
}

func TestNew_KeysSampledFromFirstElementOnly(t *testing.T) {
	// Element 0 lacks the "phone" key, so later elements are not searchable
	// by phone even though they carry one.
	ix := New([]map[string]any{
		{"name": "Alice"},
		{"name": "Bob", "phone": "555-0100"},
	})

	if got := ix.Filter("555"); len(got) != 0 {
		t.Errorf("keys absent from element 0 must be unsearchable, got %v", got)
	}
	if got := ix.Filter("bob"); len(got) != 1 {
		t.Errorf("keys present on element 0 still searchable, got %v", got)
	}
}

func TestFilter_ScalarElements(t *testing.T) {
	ix := New([]string{"alpha", "beta", "gamma"})

	got := ix.Filter("am")
	if !reflect.DeepEqual(got, []string{"gamma"}) {
		t.Errorf("scalar filter = %v", got)
	}
}

func TestFilter_PointerElements(t *testing.T) {
	ix := New([]*member{
		{ID: "M1", Name: "Alice"},
		{ID: "M2", Name: "Bob"},
	})

	got := ix.Filter("bob")
	if len(got) != 1 || got[0].ID != "M2" {
		t.Errorf("pointer filter = %v", got)
	}
}
