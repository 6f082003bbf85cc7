// Package source loads question sets and topic catalogs.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/alash-quiz/backend/internal/domain/catalog"
	"github.com/alash-quiz/backend/internal/domain/question"
)

// Default resource names under a source root.
const (
	QuestionsFile = "questions.json"
	TopicsFile    = "topics.json"
)

var (
	// ErrLoad matches every *LoadError.
	ErrLoad     = errors.New("load failed")
	ErrNotFound = errors.New("not found")

	// ErrUnknownTest is the cause when a test id is absent from the catalog.
	ErrUnknownTest = fmt.Errorf("test %w", ErrNotFound)
)

// Source supplies questions to the quiz. Implementations must return a
// *LoadError for any failure so callers can offer a retry.
type Source interface {
	FetchQuestions(ctx context.Context) ([]question.Question, error)
	FetchTopics(ctx context.Context) ([]catalog.Topic, error)
	FetchQuestionsForTest(ctx context.Context, testID string) ([]question.Question, error)
}

// LoadError is returned when a question set or catalog cannot be retrieved
// or decoded.
type LoadError struct {
	Resource string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Resource, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

func loadErr(resource string, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		return err
	}
	return &LoadError{Resource: resource, Err: err}
}

func unknownTest(testID string) error {
	return &LoadError{Resource: "test " + testID, Err: ErrUnknownTest}
}
