package source_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alash-quiz/backend/internal/source"
)

func TestFileSource_FetchQuestions(t *testing.T) {
	src := source.NewFileSource("testdata")

	questions, err := src.FetchQuestions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}

	q := questions[1]
	if q.Text != "Who founded the Mongol Empire?" {
		t.Errorf("unexpected text %q", q.Text)
	}
	if q.ImageRef != "/images/empire.png" {
		t.Errorf("expected image ref to be mapped, got %q", q.ImageRef)
	}
	if q.Topic != "history" {
		t.Errorf("expected topic %q, got %q", "history", q.Topic)
	}

	// A correct answer outside the options loads fine.
	if !questions[2].HasMismatch() {
		t.Error("expected third question to carry its mismatched answer unchanged")
	}
}

func TestFileSource_FetchTopics(t *testing.T) {
	src := source.NewFileSource("testdata")

	topics, err := src.FetchTopics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(topics))
	}
	if topics[0].Name != "Math" || topics[0].Description != "Numbers and shapes" {
		t.Errorf("unexpected topic %+v", topics[0])
	}
	if got := topics[0].Tests[1].ID; got != "tests/broken.json" {
		t.Errorf("expected test without id to use its reference, got %q", got)
	}
}

func TestFileSource_FetchQuestionsForTest(t *testing.T) {
	src := source.NewFileSource("testdata")

	questions, err := src.FetchQuestionsForTest(context.Background(), "algebra")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Errorf("expected 2 questions, got %d", len(questions))
	}
}

func TestFileSource_LoadFailures(t *testing.T) {
	src := source.NewFileSource("testdata")
	ctx := context.Background()

	tests := []struct {
		name     string
		testID   string
		notFound bool
	}{
		{"malformed json", "tests/broken.json", false},
		{"unknown test", "missing", true},
		{"reference escapes root", "escape", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := src.FetchQuestionsForTest(ctx, tt.testID)
			if !errors.Is(err, source.ErrLoad) {
				t.Fatalf("expected ErrLoad, got %v", err)
			}

			var le *source.LoadError
			if !errors.As(err, &le) {
				t.Fatalf("expected *LoadError, got %T", err)
			}
			if errors.Is(err, source.ErrNotFound) != tt.notFound {
				t.Errorf("ErrNotFound match = %v, want %v", !tt.notFound, tt.notFound)
			}
		})
	}
}

func TestFileSource_MissingRoot(t *testing.T) {
	src := source.NewFileSource(t.TempDir())

	if _, err := src.FetchQuestions(context.Background()); !errors.Is(err, source.ErrLoad) {
		t.Errorf("expected ErrLoad, got %v", err)
	}
	if _, err := src.FetchTopics(context.Background()); !errors.Is(err, source.ErrLoad) {
		t.Errorf("expected ErrLoad, got %v", err)
	}
}

func TestFileSource_CanceledContext(t *testing.T) {
	src := source.NewFileSource("testdata")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.FetchQuestions(ctx)
	if !errors.Is(err, source.ErrLoad) || !errors.Is(err, context.Canceled) {
		t.Errorf("expected load error wrapping context.Canceled, got %v", err)
	}
}
