package id_test

import (
	"testing"

	"github.com/alash-quiz/backend/internal/id"
)

func TestGenerateID_Unique(t *testing.T) {
	a := id.GenerateID()
	b := id.GenerateID()

	if a == b {
		t.Error("expected different IDs")
	}
	if !id.Valid(a) {
		t.Errorf("expected %q to be valid", a)
	}
}

func TestValid_RejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "abc", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"} {
		if id.Valid(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
