// internal/service/quiz.go
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alash-quiz/backend/internal/domain/catalog"
	"github.com/alash-quiz/backend/internal/domain/question"
	"github.com/alash-quiz/backend/internal/domain/quizsession"
	"github.com/alash-quiz/backend/internal/domain/selection"
	"github.com/alash-quiz/backend/internal/id"
	"github.com/alash-quiz/backend/internal/source"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionCompleted = errors.New("session already completed")
)

// QuestionView is a question as shown to the user: no correct answer.
type QuestionView struct {
	Text     string
	Options  []string
	ImageRef string
	Topic    string
}

// View is a read-only snapshot of a live session.
type View struct {
	SessionID  string
	Selection  selection.Strategy
	Index      int
	Total      int
	Question   *QuestionView // nil for an empty session
	Selected   string
	IsLast     bool
	CanAdvance bool
	CanRetreat bool
	Completed  bool
	State      quizsession.State
}

// QuizService keeps live quiz sessions in memory. Sessions are gone when the
// process exits.
type QuizService struct {
	source source.Source
	config quizsession.Config
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*entry // sessionID → session
}

// entry serializes operations on one session.
type entry struct {
	mu        sync.Mutex
	session   *quizsession.Session
	selection selection.Strategy
	lastUsed  atomic.Int64 // unix nanos
}

func (e *entry) touch(now time.Time) {
	e.lastUsed.Store(now.UnixNano())
}

// NewQuizService creates a QuizService that starts sessions from src.
func NewQuizService(src source.Source, config quizsession.Config, logger *slog.Logger) *QuizService {
	return &QuizService{
		source:   src,
		config:   config,
		logger:   logger,
		sessions: make(map[string]*entry),
	}
}

// Start resolves the selection against the source and opens a new session
// over the result. Load failures come back as *source.LoadError so the
// caller can offer a retry.
func (s *QuizService) Start(ctx context.Context, sel selection.Strategy) (View, error) {
	questions, err := sel.Resolve(ctx, s.source)
	if err != nil {
		if errors.Is(err, source.ErrLoad) {
			s.logger.Error("failed to load questions",
				"selection", string(sel.Kind),
				"error", err,
			)
		}
		return View{}, err
	}

	sessionID := id.GenerateID()
	e := &entry{
		session:   quizsession.New(questions, s.config),
		selection: sel,
	}
	e.touch(time.Now())

	s.mu.Lock()
	s.sessions[sessionID] = e
	s.mu.Unlock()

	s.logger.Info("session started",
		"session_id", sessionID,
		"selection", string(sel.Kind),
		"questions", len(questions),
	)

	return snapshot(sessionID, e), nil
}

// Get returns the current view of a session.
func (s *QuizService) Get(sessionID string) (View, error) {
	var v View
	err := s.with(sessionID, func(e *entry) error {
		v = snapshot(sessionID, e)
		return nil
	})
	return v, err
}

// RecordAnswer stores the answer for the current question. A completed
// session is frozen until Reset.
func (s *QuizService) RecordAnswer(sessionID, answer string) (View, error) {
	var v View
	err := s.with(sessionID, func(e *entry) error {
		if e.session.Completed() {
			return ErrSessionCompleted
		}
		e.session.RecordAnswer(answer)
		v = snapshot(sessionID, e)
		return nil
	})
	return v, err
}

// Advance moves forward or completes the session.
func (s *QuizService) Advance(sessionID string) (quizsession.AdvanceResult, View, error) {
	var res quizsession.AdvanceResult
	var v View
	err := s.with(sessionID, func(e *entry) error {
		wasCompleted := e.session.Completed()

		var err error
		res, err = e.session.Advance()
		if err != nil {
			return err
		}
		if res.Completed && !wasCompleted {
			score := e.session.Score()
			s.logger.Info("session completed",
				"session_id", sessionID,
				"correct", score.Correct,
				"total", score.Total,
			)
		}
		v = snapshot(sessionID, e)
		return nil
	})
	return res, v, err
}

// Retreat moves back one question.
func (s *QuizService) Retreat(sessionID string) (View, error) {
	var v View
	err := s.with(sessionID, func(e *entry) error {
		e.session.Retreat()
		v = snapshot(sessionID, e)
		return nil
	})
	return v, err
}

// Score computes the session score. It may be called before completion.
func (s *QuizService) Score(sessionID string) (quizsession.Score, bool, error) {
	var score quizsession.Score
	var completed bool
	err := s.with(sessionID, func(e *entry) error {
		score = e.session.Score()
		completed = e.session.Completed()
		return nil
	})
	return score, completed, err
}

// Reset restarts the session over the same questions.
func (s *QuizService) Reset(sessionID string) (View, error) {
	var v View
	err := s.with(sessionID, func(e *entry) error {
		e.session.Reset()
		v = snapshot(sessionID, e)
		return nil
	})
	return v, err
}

// End drops a session.
func (s *QuizService) End(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

// Count returns the number of live sessions.
func (s *QuizService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Topics lists the distinct topics of the flat question set.
func (s *QuizService) Topics(ctx context.Context) ([]string, error) {
	questions, err := s.source.FetchQuestions(ctx)
	if err != nil {
		return nil, err
	}
	return selection.Topics(questions), nil
}

// Catalog returns the topic/test catalog.
func (s *QuizService) Catalog(ctx context.Context) ([]catalog.Topic, error) {
	return s.source.FetchTopics(ctx)
}

// EvictIdle drops every session last used before cutoff and returns how
// many were dropped.
func (s *QuizService) EvictIdle(cutoff time.Time) int {
	limit := cutoff.UnixNano()

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for sessionID, e := range s.sessions {
		if e.lastUsed.Load() < limit {
			delete(s.sessions, sessionID)
			n++
		}
	}
	return n
}

// RunJanitor evicts sessions idle for longer than maxIdle, checking every
// interval, until ctx is done.
func (s *QuizService) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.EvictIdle(now.Add(-maxIdle)); n > 0 {
				s.logger.Info("evicted idle sessions",
					"evicted", n,
					"live_sessions", s.Count(),
				)
			}
		}
	}
}

func (s *QuizService) with(sessionID string, fn func(e *entry) error) error {
	if !id.Valid(sessionID) {
		return ErrSessionNotFound
	}

	s.mu.RLock()
	e, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.touch(time.Now())
	return fn(e)
}

func snapshot(sessionID string, e *entry) View {
	sess := e.session
	v := View{
		SessionID:  sessionID,
		Selection:  e.selection,
		Index:      sess.Index(),
		Total:      sess.Total(),
		Selected:   sess.CurrentAnswer(),
		IsLast:     sess.IsLast(),
		CanRetreat: sess.Index() > 0,
		Completed:  sess.Completed(),
		State:      sess.State(),
	}

	if q, ok := sess.Current(); ok {
		v.Question = newQuestionView(q)
		v.CanAdvance = !v.Completed && (!sess.Config().RequireAnswer || v.Selected != "")
	}
	return v
}

func newQuestionView(q question.Question) *QuestionView {
	return &QuestionView{
		Text:     q.Text,
		Options:  q.Options,
		ImageRef: q.ImageRef,
		Topic:    q.Topic,
	}
}
