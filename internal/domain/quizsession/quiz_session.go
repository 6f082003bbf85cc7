package quizsession

import (
	"errors"

	"github.com/alash-quiz/backend/internal/domain/question"
)

// ErrUnanswered is returned by Advance when Config.RequireAnswer is set and
// the current question has no answer yet.
var ErrUnanswered = errors.New("current question has not been answered")

// State is the coarse lifecycle of a session.
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

// AdvanceResult describes what a call to Advance did.
type AdvanceResult struct {
	Moved     bool
	Completed bool
}

// Score is the outcome of a session: exact matches out of the question count.
type Score struct {
	Correct int
	Total   int
}

// Session tracks progress through a fixed, ordered question list.
// It is not safe for concurrent use; callers serialize access.
type Session struct {
	questions []question.Question
	answers   []string // "" = unanswered
	index     int
	completed bool
	config    Config
}

// New starts a session over questions. The list is copied, so later changes
// to the caller's slice do not affect the session. An empty list yields a
// degenerate session that can never complete.
func New(questions []question.Question, config Config) *Session {
	qs := make([]question.Question, len(questions))
	for i, q := range questions {
		qs[i] = q.Clone()
	}

	return &Session{
		questions: qs,
		answers:   make([]string, len(qs)),
		config:    config,
	}
}

// RecordAnswer stores selected as the answer to the current question,
// overwriting any earlier answer. The value is not checked against the
// question's options.
func (s *Session) RecordAnswer(selected string) {
	if len(s.questions) == 0 {
		return
	}
	s.answers[s.index] = selected
}

// Advance moves to the next question, or completes the session when called
// on the last one.
func (s *Session) Advance() (AdvanceResult, error) {
	if len(s.questions) == 0 {
		return AdvanceResult{}, nil
	}
	if s.config.RequireAnswer && s.answers[s.index] == "" {
		return AdvanceResult{}, ErrUnanswered
	}

	if s.index < len(s.questions)-1 {
		s.index++
		return AdvanceResult{Moved: true, Completed: false}, nil
	}

	s.completed = true
	return AdvanceResult{Moved: false, Completed: true}, nil
}

// Retreat moves to the previous question. It is a no-op on the first one.
func (s *Session) Retreat() {
	if s.index > 0 {
		s.index--
	}
}

// Score counts the positions whose answer exactly equals the correct answer.
// It has no side effects and may be called at any time.
func (s *Session) Score() Score {
	correct := 0
	for i, q := range s.questions {
		if q.IsCorrect(s.answers[i]) {
			correct++
		}
	}
	return Score{Correct: correct, Total: len(s.questions)}
}

// Reset returns the session to its starting point over the same questions.
func (s *Session) Reset() {
	s.index = 0
	s.completed = false
	s.answers = make([]string, len(s.questions))
}

// Current returns the question at the current index.
func (s *Session) Current() (question.Question, bool) {
	if len(s.questions) == 0 {
		return question.Question{}, false
	}
	return s.questions[s.index], true
}

func (s *Session) Index() int      { return s.index }
func (s *Session) Total() int      { return len(s.questions) }
func (s *Session) Completed() bool { return s.completed }
func (s *Session) Config() Config  { return s.config }

// IsLast reports whether the current question is the final one.
func (s *Session) IsLast() bool {
	return len(s.questions) > 0 && s.index == len(s.questions)-1
}

// Answer returns the recorded answer at index i, "" when unanswered or out
// of range.
func (s *Session) Answer(i int) string {
	if i < 0 || i >= len(s.answers) {
		return ""
	}
	return s.answers[i]
}

// CurrentAnswer returns the answer recorded for the current question.
func (s *Session) CurrentAnswer() string {
	return s.Answer(s.index)
}

// Answers returns a copy of the answer set.
func (s *Session) Answers() []string {
	out := make([]string, len(s.answers))
	copy(out, s.answers)
	return out
}

// State derives the lifecycle state.
func (s *Session) State() State {
	switch {
	case s.completed:
		return StateCompleted
	case len(s.questions) == 0:
		return StateNotStarted
	default:
		return StateInProgress
	}
}
