package catalog_test

import (
	"testing"

	"github.com/alash-quiz/backend/internal/domain/catalog"
)

func sampleTopics() []catalog.Topic {
	return []catalog.Topic{
		{Name: "Math", Tests: []catalog.Test{{ID: "m1", Name: "Algebra"}, {ID: "m2", Name: "Geometry"}}},
		{Name: "History", Tests: []catalog.Test{{ID: "h1", Name: "Empire"}}},
	}
}

func TestFindTest(t *testing.T) {
	test, ok := catalog.FindTest(sampleTopics(), "h1")
	if !ok {
		t.Fatal("expected test h1 to be found")
	}
	if test.Name != "Empire" {
		t.Errorf("expected name %q, got %q", "Empire", test.Name)
	}

	if _, ok := catalog.FindTest(sampleTopics(), "missing"); ok {
		t.Error("expected missing test not to be found")
	}
}

func TestTestIDs_CatalogOrder(t *testing.T) {
	ids := catalog.TestIDs(sampleTopics())
	want := []string{"m1", "m2", "h1"}

	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}
