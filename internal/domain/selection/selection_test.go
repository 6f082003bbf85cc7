package selection_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alash-quiz/backend/internal/domain/question"
	"github.com/alash-quiz/backend/internal/domain/selection"
)

type fakeFetcher struct {
	questions []question.Question
	tests     map[string][]question.Question
	err       error
	calls     int
}

func (f *fakeFetcher) FetchQuestions(ctx context.Context) ([]question.Question, error) {
	f.calls++
	return f.questions, f.err
}

func (f *fakeFetcher) FetchQuestionsForTest(ctx context.Context, testID string) ([]question.Question, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.tests[testID], nil
}

func topicQuestions() []question.Question {
	return []question.Question{
		{Text: "one", Topic: "math"},
		{Text: "two", Topic: "history"},
		{Text: "three", Topic: "math"},
	}
}

func TestFilterByTopics_PreservesOrder(t *testing.T) {
	got := selection.FilterByTopics(topicQuestions(), []string{"math"})

	if len(got) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(got))
	}
	if got[0].Text != "one" || got[1].Text != "three" {
		t.Errorf("expected [one three], got [%s %s]", got[0].Text, got[1].Text)
	}
}

func TestFilterByTopics_ExactMatch(t *testing.T) {
	got := selection.FilterByTopics(topicQuestions(), []string{"Math"})
	if len(got) != 0 {
		t.Errorf("expected no matches for differently cased topic, got %d", len(got))
	}
}

func TestFilterByTopics_MultipleTopics(t *testing.T) {
	got := selection.FilterByTopics(topicQuestions(), []string{"history", "math"})
	if len(got) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(got))
	}
	if got[1].Text != "two" {
		t.Errorf("expected original order, got %q at position 1", got[1].Text)
	}
}

func TestTopics_DistinctFirstSeen(t *testing.T) {
	qs := append(topicQuestions(), question.Question{Text: "four"})
	got := selection.Topics(qs)

	if len(got) != 2 || got[0] != "math" || got[1] != "history" {
		t.Errorf("expected [math history], got %v", got)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    selection.Kind
		wantErr bool
	}{
		{"", selection.KindFlat, false},
		{"flat", selection.KindFlat, false},
		{"topics", selection.KindTopicFiltered, false},
		{"test", selection.KindTopicTestNested, false},
		{"random", "", true},
	}

	for _, tt := range tests {
		got, err := selection.ParseKind(tt.in)
		if tt.wantErr {
			if !errors.Is(err, selection.ErrUnknownKind) {
				t.Errorf("ParseKind(%q): expected ErrUnknownKind, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseKind(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestResolve_Flat(t *testing.T) {
	f := &fakeFetcher{questions: topicQuestions()}

	got, err := selection.Flat().Resolve(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 questions, got %d", len(got))
	}
}

func TestResolve_TopicsRequiresSelection(t *testing.T) {
	f := &fakeFetcher{questions: topicQuestions()}

	_, err := selection.ByTopics().Resolve(context.Background(), f)
	if !errors.Is(err, selection.ErrNoTopics) {
		t.Fatalf("expected ErrNoTopics, got %v", err)
	}
	if f.calls != 0 {
		t.Error("expected no fetch before validation passes")
	}
}

func TestResolve_TopicsEmptyResult(t *testing.T) {
	f := &fakeFetcher{questions: topicQuestions()}

	_, err := selection.ByTopics("geography").Resolve(context.Background(), f)
	if !errors.Is(err, selection.ErrEmptyFilterResult) {
		t.Fatalf("expected ErrEmptyFilterResult, got %v", err)
	}
}

func TestResolve_Topics(t *testing.T) {
	f := &fakeFetcher{questions: topicQuestions()}

	got, err := selection.ByTopics("math").Resolve(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 questions, got %d", len(got))
	}
}

func TestResolve_Test(t *testing.T) {
	f := &fakeFetcher{tests: map[string][]question.Question{
		"t1": {{Text: "nested"}},
	}}

	got, err := selection.ByTest("t1").Resolve(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Text != "nested" {
		t.Errorf("unexpected questions: %+v", got)
	}

	if _, err := selection.ByTest("").Resolve(context.Background(), f); !errors.Is(err, selection.ErrNoTest) {
		t.Errorf("expected ErrNoTest, got %v", err)
	}
}

func TestResolve_PropagatesFetchError(t *testing.T) {
	boom := errors.New("boom")
	f := &fakeFetcher{err: boom}

	if _, err := selection.Flat().Resolve(context.Background(), f); !errors.Is(err, boom) {
		t.Errorf("expected fetch error to propagate, got %v", err)
	}
}
