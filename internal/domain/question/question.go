package question

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyText       = errors.New("question text cannot be empty")
	ErrTooFewOptions   = errors.New("question needs at least two options")
	ErrDuplicateOption = errors.New("question options must be distinct")
)

// Question is one multiple-choice quiz item. Values are treated as immutable
// once loaded from a source.
type Question struct {
	Text          string
	Options       []string
	CorrectAnswer string
	ImageRef      string // optional, empty when the question has no image
	Topic         string // optional, used by topic filtering
}

// IsCorrect reports whether selected is the correct answer.
// Comparison is exact: case and whitespace are significant, and an empty
// selection never matches.
func (q Question) IsCorrect(selected string) bool {
	return selected != "" && selected == q.CorrectAnswer
}

// HasOption reports whether s is exactly one of the options.
func (q Question) HasOption(s string) bool {
	for _, o := range q.Options {
		if o == s {
			return true
		}
	}
	return false
}

// HasMismatch reports whether the correct answer is missing from the options.
// Such a question can never be scored correct. This is reported, not fixed.
func (q Question) HasMismatch() bool {
	return !q.HasOption(q.CorrectAnswer)
}

// HasImage reports whether the question carries an image reference.
func (q Question) HasImage() bool {
	return q.ImageRef != ""
}

// Validate checks the structural rules of a question. A correct answer that
// matches no option is not a validation error; see HasMismatch.
func (q Question) Validate() error {
	if q.Text == "" {
		return ErrEmptyText
	}
	if len(q.Options) < 2 {
		return ErrTooFewOptions
	}
	seen := make(map[string]struct{}, len(q.Options))
	for _, o := range q.Options {
		if _, dup := seen[o]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateOption, o)
		}
		seen[o] = struct{}{}
	}
	return nil
}

// Clone returns a copy that shares no slice memory with q.
func (q Question) Clone() Question {
	c := q
	c.Options = append([]string(nil), q.Options...)
	return c
}
