package selection

import (
	"context"
	"errors"
	"fmt"

	"github.com/alash-quiz/backend/internal/domain/question"
)

var (
	ErrNoTopics          = errors.New("at least one topic must be selected")
	ErrNoTest            = errors.New("a test must be selected")
	ErrEmptyFilterResult = errors.New("no questions found")
	ErrUnknownKind       = errors.New("unknown selection kind")
)

// Kind names how a question list is chosen before a session starts.
type Kind string

const (
	KindFlat            Kind = "flat"
	KindTopicFiltered   Kind = "topics"
	KindTopicTestNested Kind = "test"
)

// ParseKind maps a user-supplied mode to a Kind. Empty means flat.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case "":
		return KindFlat, nil
	case KindFlat, KindTopicFiltered, KindTopicTestNested:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Fetcher is the part of a question source a selection needs.
type Fetcher interface {
	FetchQuestions(ctx context.Context) ([]question.Question, error)
	FetchQuestionsForTest(ctx context.Context, testID string) ([]question.Question, error)
}

// Strategy is a tagged variant: Topics is read only for KindTopicFiltered,
// TestID only for KindTopicTestNested.
type Strategy struct {
	Kind   Kind
	Topics []string
	TestID string
}

func Flat() Strategy { return Strategy{Kind: KindFlat} }

func ByTopics(topics ...string) Strategy {
	return Strategy{Kind: KindTopicFiltered, Topics: topics}
}

func ByTest(testID string) Strategy {
	return Strategy{Kind: KindTopicTestNested, TestID: testID}
}

// Validate checks the selection before anything is fetched.
func (s Strategy) Validate() error {
	switch s.Kind {
	case KindFlat:
		return nil
	case KindTopicFiltered:
		if len(s.Topics) == 0 {
			return ErrNoTopics
		}
		return nil
	case KindTopicTestNested:
		if s.TestID == "" {
			return ErrNoTest
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
}

// Resolve produces the ordered question list for this selection.
// Fetch errors are returned unchanged so callers can match them.
func (s Strategy) Resolve(ctx context.Context, src Fetcher) ([]question.Question, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	switch s.Kind {
	case KindTopicFiltered:
		all, err := src.FetchQuestions(ctx)
		if err != nil {
			return nil, err
		}
		filtered := FilterByTopics(all, s.Topics)
		if len(filtered) == 0 {
			return nil, ErrEmptyFilterResult
		}
		return filtered, nil
	case KindTopicTestNested:
		return src.FetchQuestionsForTest(ctx, s.TestID)
	default:
		return src.FetchQuestions(ctx)
	}
}

// FilterByTopics keeps the questions whose topic is one of selected,
// preserving their relative order. Topic comparison is exact.
func FilterByTopics(all []question.Question, selected []string) []question.Question {
	set := make(map[string]struct{}, len(selected))
	for _, t := range selected {
		set[t] = struct{}{}
	}

	out := make([]question.Question, 0, len(all))
	for _, q := range all {
		if _, ok := set[q.Topic]; ok {
			out = append(out, q)
		}
	}
	return out
}

// Topics lists the distinct non-empty topics of all, in first-seen order.
func Topics(all []question.Question) []string {
	seen := make(map[string]struct{})
	var topics []string
	for _, q := range all {
		if q.Topic == "" {
			continue
		}
		if _, ok := seen[q.Topic]; ok {
			continue
		}
		seen[q.Topic] = struct{}{}
		topics = append(topics, q.Topic)
	}
	return topics
}
