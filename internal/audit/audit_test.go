package audit_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alash-quiz/backend/internal/audit"
	"github.com/alash-quiz/backend/internal/domain/question"
	"github.com/alash-quiz/backend/internal/source"
)

func TestCheck(t *testing.T) {
	qs := []question.Question{
		{Text: "ok", Options: []string{"a", "b"}, CorrectAnswer: "a"},
		{Text: "case", Options: []string{"Yes", "No"}, CorrectAnswer: "yes"},
		{Text: "space", Options: []string{"A", "B"}, CorrectAnswer: "B "},
	}

	got := audit.Check(qs)
	if len(got) != 2 {
		t.Fatalf("expected 2 mismatches, got %d", len(got))
	}
	if got[0].Index != 1 || got[1].Index != 2 {
		t.Errorf("unexpected indices %d, %d", got[0].Index, got[1].Index)
	}
}

func TestRun_SourceTestdata(t *testing.T) {
	src := source.NewFileSource(filepath.Join("..", "source", "testdata"))

	report, err := audit.Run(context.Background(), src, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// questions + algebra + broken + escape
	if len(report.Sets) != 4 {
		t.Fatalf("expected 4 sets, got %d", len(report.Sets))
	}

	flat := report.Sets[0]
	if flat.Set != audit.FlatSetName || flat.Questions != 3 {
		t.Errorf("unexpected flat report %+v", flat)
	}
	if len(flat.Mismatches) != 1 || flat.Mismatches[0].CorrectAnswer != "nine" {
		t.Errorf("expected the 'nine' mismatch, got %+v", flat.Mismatches)
	}

	if report.Sets[1].Set != "algebra" || report.Sets[1].Err != nil {
		t.Errorf("expected algebra to load, got %+v", report.Sets[1])
	}
	if report.Failures() != 2 {
		t.Errorf("expected 2 failing sets, got %d", report.Failures())
	}
	if report.Clean() {
		t.Error("expected report not to be clean")
	}
}

func TestRun_Clean(t *testing.T) {
	src := source.NewFileSource(filepath.Join("..", "..", "data"))

	report, err := audit.Run(context.Background(), src, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Clean() {
		t.Errorf("expected sample data to be clean, got %+v", report)
	}
	if len(report.Sets) != 3 {
		t.Errorf("expected 3 sets, got %d", len(report.Sets))
	}
}

func TestRun_NoCatalog(t *testing.T) {
	dir := t.TempDir()
	src := source.NewFileSource(dir)

	report, err := audit.Run(context.Background(), src, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Sets) != 1 || report.Sets[0].Err == nil {
		t.Errorf("expected only the missing flat set to be reported, got %+v", report.Sets)
	}
}

func TestRun_TestIDCollidesWithFlatSet(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "questions.json"),
		`[{"question":"ok","options":["a","b"],"correctAnswer":"a"}]`)
	writeFile(t, filepath.Join(dir, "topics.json"),
		`[{"name":"T","tests":[{"id":"questions","name":"Same name","questions":"t.json"}]}]`)
	writeFile(t, filepath.Join(dir, "t.json"),
		`[{"question":"bad","options":["a","b"],"correctAnswer":"zzz"}]`)

	report, err := audit.Run(context.Background(), source.NewFileSource(dir), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Sets) != 2 {
		t.Fatalf("expected 2 sets, got %d", len(report.Sets))
	}
	if len(report.Sets[0].Mismatches) != 0 {
		t.Errorf("expected the flat set to be clean, got %+v", report.Sets[0])
	}
	if len(report.Sets[1].Mismatches) != 1 || report.Sets[1].Mismatches[0].CorrectAnswer != "zzz" {
		t.Errorf("expected the test set mismatch, got %+v", report.Sets[1])
	}
	if report.Clean() {
		t.Error("expected report not to be clean")
	}
}

func TestCheckStructure(t *testing.T) {
	qs := []question.Question{
		{Text: "ok", Options: []string{"a", "b"}, CorrectAnswer: "a"},
		{Text: "one option", Options: []string{"a"}, CorrectAnswer: "a"},
		{Text: "", Options: []string{"a", "b"}, CorrectAnswer: "a"},
		{Text: "dup", Options: []string{"a", "a"}, CorrectAnswer: "a"},
	}

	got := audit.CheckStructure(qs)
	if len(got) != 3 {
		t.Fatalf("expected 3 invalid questions, got %d", len(got))
	}
	if !errors.Is(got[0].Err, question.ErrTooFewOptions) ||
		!errors.Is(got[1].Err, question.ErrEmptyText) ||
		!errors.Is(got[2].Err, question.ErrDuplicateOption) {
		t.Errorf("unexpected errors %v, %v, %v", got[0].Err, got[1].Err, got[2].Err)
	}
}

func TestRun_ReportsStructuralProblems(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "questions.json"),
		`[{"question":"q","options":["only"],"correctAnswer":"only"}]`)

	report, err := audit.Run(context.Background(), source.NewFileSource(dir), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Failures() != 0 {
		t.Errorf("expected the set to load, got %+v", report.Sets)
	}
	if report.InvalidQuestions() != 1 || report.Clean() {
		t.Errorf("expected one invalid question, got %+v", report.Sets)
	}
}
