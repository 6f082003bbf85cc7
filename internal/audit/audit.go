// Package audit checks question sets for questions that can never score.
package audit

import (
	"context"
	"errors"
	"io/fs"
	"strconv"

	"github.com/alash-quiz/backend/internal/domain/catalog"
	"github.com/alash-quiz/backend/internal/domain/question"
	"github.com/alash-quiz/backend/internal/source"
	"github.com/alash-quiz/backend/internal/worker"
)

// FlatSetName labels the top-level question list in a report.
const FlatSetName = "questions"

// Mismatch is a question whose correct answer matches none of its options.
type Mismatch struct {
	Index         int
	Text          string
	CorrectAnswer string
}

// Invalid is a question that breaks a structural rule, such as having fewer
// than two options. It still loads and is shown as-is.
type Invalid struct {
	Index int
	Text  string
	Err   error
}

// SetReport is the audit of one question set.
type SetReport struct {
	Set        string
	Questions  int
	Mismatches []Mismatch
	Invalid    []Invalid
	Err        error // load failure; the set could not be checked
}

// Report covers the flat set and every catalog test, in catalog order.
// A test ID that appears twice is reported twice.
type Report struct {
	Sets []SetReport
}

// Mismatches counts unscorable questions across all sets.
func (r Report) Mismatches() int {
	n := 0
	for _, s := range r.Sets {
		n += len(s.Mismatches)
	}
	return n
}

// InvalidQuestions counts structurally broken questions across all sets.
func (r Report) InvalidQuestions() int {
	n := 0
	for _, s := range r.Sets {
		n += len(s.Invalid)
	}
	return n
}

// Failures counts sets that could not be loaded.
func (r Report) Failures() int {
	n := 0
	for _, s := range r.Sets {
		if s.Err != nil {
			n++
		}
	}
	return n
}

// Clean reports whether every set loaded and every question is well formed
// and scorable.
func (r Report) Clean() bool {
	return r.Mismatches() == 0 && r.InvalidQuestions() == 0 && r.Failures() == 0
}

// Check lists the mismatched questions of one set.
func Check(questions []question.Question) []Mismatch {
	var out []Mismatch
	for i, q := range questions {
		if q.HasMismatch() {
			out = append(out, Mismatch{Index: i, Text: q.Text, CorrectAnswer: q.CorrectAnswer})
		}
	}
	return out
}

// CheckStructure lists the questions of one set that fail question.Validate.
func CheckStructure(questions []question.Question) []Invalid {
	var out []Invalid
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			out = append(out, Invalid{Index: i, Text: q.Text, Err: err})
		}
	}
	return out
}

// Run loads every set src serves on a pool of workers and checks each one.
// A failing set is recorded in its SetReport; only a failure to read the
// catalog itself (other than it being absent) aborts the run.
func Run(ctx context.Context, src source.Source, workers int) (Report, error) {
	topics, err := src.FetchTopics(ctx)
	if err != nil && !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, source.ErrNotFound) {
		return Report{}, err
	}

	names := append([]string{FlatSetName}, catalog.TestIDs(topics)...)
	pool := worker.NewPool[SetReport](ctx, workers, len(names))

	// Jobs are keyed by position: set names are labels and may repeat.
	for i, name := range names {
		flat := i == 0
		set := name
		pool.Submit(strconv.Itoa(i), func(ctx context.Context) SetReport {
			var qs []question.Question
			var err error
			if flat {
				qs, err = src.FetchQuestions(ctx)
			} else {
				qs, err = src.FetchQuestionsForTest(ctx, set)
			}
			if err != nil {
				return SetReport{Set: set, Err: err}
			}
			return SetReport{
				Set:        set,
				Questions:  len(qs),
				Mismatches: Check(qs),
				Invalid:    CheckStructure(qs),
			}
		})
	}
	pool.Close()

	report := Report{Sets: make([]SetReport, len(names))}
	for res := range pool.Results() {
		i, err := strconv.Atoi(res.JobID)
		if err != nil {
			continue
		}
		report.Sets[i] = res.Output
	}
	return report, nil
}
