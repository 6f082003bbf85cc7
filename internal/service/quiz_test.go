package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alash-quiz/backend/internal/domain/quizsession"
	"github.com/alash-quiz/backend/internal/domain/selection"
	"github.com/alash-quiz/backend/internal/service"
	"github.com/alash-quiz/backend/internal/source"
)

func newService(t *testing.T, config quizsession.Config) *service.QuizService {
	t.Helper()
	src := source.NewFileSource(filepath.Join("..", "..", "data"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewQuizService(src, config, logger)
}

func TestStart_Flat(t *testing.T) {
	svc := newService(t, quizsession.DefaultConfig())

	view, err := svc.Start(context.Background(), selection.Flat())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.SessionID == "" {
		t.Error("expected a session ID")
	}
	if view.Total != 5 || view.Index != 0 {
		t.Errorf("expected 0 of 5, got %d of %d", view.Index, view.Total)
	}
	if view.Question == nil || view.Question.Text != "Which is the capital of Mongolia?" {
		t.Errorf("unexpected current question %+v", view.Question)
	}
	if view.CanRetreat {
		t.Error("expected retreat to be unavailable on the first question")
	}
	if svc.Count() != 1 {
		t.Errorf("expected 1 live session, got %d", svc.Count())
	}
}

func TestStart_TopicsAndTest(t *testing.T) {
	svc := newService(t, quizsession.DefaultConfig())
	ctx := context.Background()

	view, err := svc.Start(ctx, selection.ByTopics("history"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Total != 2 {
		t.Errorf("expected 2 history questions, got %d", view.Total)
	}

	view, err = svc.Start(ctx, selection.ByTest("geography-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Total != 3 {
		t.Errorf("expected 3 questions in geography-1, got %d", view.Total)
	}
}

func TestStart_Errors(t *testing.T) {
	svc := newService(t, quizsession.DefaultConfig())
	ctx := context.Background()

	if _, err := svc.Start(ctx, selection.ByTopics("cooking")); !errors.Is(err, selection.ErrEmptyFilterResult) {
		t.Errorf("expected ErrEmptyFilterResult, got %v", err)
	}
	if _, err := svc.Start(ctx, selection.ByTopics()); !errors.Is(err, selection.ErrNoTopics) {
		t.Errorf("expected ErrNoTopics, got %v", err)
	}
	if _, err := svc.Start(ctx, selection.ByTest("missing")); !errors.Is(err, source.ErrLoad) {
		t.Errorf("expected ErrLoad, got %v", err)
	}
	if svc.Count() != 0 {
		t.Errorf("expected no sessions after failures, got %d", svc.Count())
	}
}

func TestFullRun(t *testing.T) {
	svc := newService(t, quizsession.DefaultConfig())
	view, _ := svc.Start(context.Background(), selection.ByTest("history-1"))
	id := view.SessionID

	svc.RecordAnswer(id, "Genghis Khan")
	res, view, err := svc.Advance(id)
	if err != nil || !res.Moved || view.Index != 1 {
		t.Fatalf("expected to move to index 1, got %+v %+v %v", res, view, err)
	}
	if !view.IsLast {
		t.Error("expected second question to be last")
	}

	svc.RecordAnswer(id, "Sarai")
	res, view, _ = svc.Advance(id)
	if !res.Completed || !view.Completed {
		t.Fatal("expected session to complete")
	}

	score, completed, err := svc.Score(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !completed || score.Correct != 1 || score.Total != 2 {
		t.Errorf("expected completed {1 2}, got %v %+v", completed, score)
	}

	view, _ = svc.Reset(id)
	if view.Completed || view.Index != 0 || view.Selected != "" {
		t.Errorf("expected fresh session after reset, got %+v", view)
	}
	score, _, _ = svc.Score(id)
	if score.Correct != 0 || score.Total != 2 {
		t.Errorf("expected {0 2} after reset, got %+v", score)
	}
}

func TestRetreatKeepsAnswer(t *testing.T) {
	svc := newService(t, quizsession.DefaultConfig())
	view, _ := svc.Start(context.Background(), selection.Flat())
	id := view.SessionID

	svc.RecordAnswer(id, "Ulaanbaatar")
	svc.Advance(id)
	view, _ = svc.Retreat(id)

	if view.Index != 0 || view.Selected != "Ulaanbaatar" {
		t.Errorf("expected answer to survive navigation, got %+v", view)
	}
}

func TestAdvance_RequireAnswer(t *testing.T) {
	svc := newService(t, quizsession.Config{RequireAnswer: true})
	view, _ := svc.Start(context.Background(), selection.Flat())

	if view.CanAdvance {
		t.Error("expected CanAdvance to be false before answering")
	}

	_, _, err := svc.Advance(view.SessionID)
	if !errors.Is(err, quizsession.ErrUnanswered) {
		t.Fatalf("expected ErrUnanswered, got %v", err)
	}

	view, _ = svc.RecordAnswer(view.SessionID, "Darkhan")
	if !view.CanAdvance {
		t.Error("expected CanAdvance after answering")
	}
}

func TestUnknownSession(t *testing.T) {
	svc := newService(t, quizsession.DefaultConfig())

	if _, err := svc.Get("nope"); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
	if err := svc.End("nope"); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestEnd(t *testing.T) {
	svc := newService(t, quizsession.DefaultConfig())
	view, _ := svc.Start(context.Background(), selection.Flat())

	if err := svc.End(view.SessionID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Get(view.SessionID); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("expected session to be gone, got %v", err)
	}
}

func TestConcurrentAnswers(t *testing.T) {
	svc := newService(t, quizsession.DefaultConfig())
	view, _ := svc.Start(context.Background(), selection.Flat())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.RecordAnswer(view.SessionID, "Ulaanbaatar")
			svc.Get(view.SessionID)
		}()
	}
	wg.Wait()

	score, _, _ := svc.Score(view.SessionID)
	if score.Correct != 1 {
		t.Errorf("expected 1 correct, got %d", score.Correct)
	}
}

func TestTopicsAndCatalog(t *testing.T) {
	svc := newService(t, quizsession.DefaultConfig())
	ctx := context.Background()

	topics, err := svc.Topics(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(topics) != 2 || topics[0] != "geography" || topics[1] != "history" {
		t.Errorf("unexpected topics %v", topics)
	}

	cat, err := svc.Catalog(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cat) != 1 || len(cat[0].Tests) != 2 {
		t.Errorf("unexpected catalog %+v", cat)
	}
}

func TestEvictIdle(t *testing.T) {
	svc := newService(t, quizsession.DefaultConfig())
	ctx := context.Background()

	stale, _ := svc.Start(ctx, selection.Flat())
	time.Sleep(5 * time.Millisecond)
	cutoff := time.Now()
	time.Sleep(5 * time.Millisecond)

	fresh, _ := svc.Start(ctx, selection.Flat())

	if n := svc.EvictIdle(cutoff.Add(-time.Hour)); n != 0 {
		t.Fatalf("expected nothing to be evicted, got %d", n)
	}
	if n := svc.EvictIdle(cutoff); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	if _, err := svc.Get(stale.SessionID); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("expected idle session to be gone, got %v", err)
	}
	if _, err := svc.Get(fresh.SessionID); err != nil {
		t.Errorf("expected recent session to survive, got %v", err)
	}
}

func TestEvictIdle_UseKeepsSessionAlive(t *testing.T) {
	svc := newService(t, quizsession.DefaultConfig())
	view, _ := svc.Start(context.Background(), selection.Flat())

	time.Sleep(5 * time.Millisecond)
	cutoff := time.Now()
	time.Sleep(5 * time.Millisecond)

	svc.RecordAnswer(view.SessionID, "Ulaanbaatar")

	if n := svc.EvictIdle(cutoff); n != 0 {
		t.Errorf("expected the used session to be kept, evicted %d", n)
	}
}

func TestRunJanitor(t *testing.T) {
	svc := newService(t, quizsession.DefaultConfig())
	svc.Start(context.Background(), selection.Flat())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.RunJanitor(ctx, 5*time.Millisecond, time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for svc.Count() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("expected the idle session to be evicted")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCompletedSessionIsFrozen(t *testing.T) {
	var logs bytes.Buffer
	src := source.NewFileSource(filepath.Join("..", "..", "data"))
	svc := service.NewQuizService(src, quizsession.DefaultConfig(), slog.New(slog.NewTextHandler(&logs, nil)))

	view, _ := svc.Start(context.Background(), selection.ByTest("history-1"))
	id := view.SessionID

	svc.RecordAnswer(id, "Genghis Khan")
	svc.Advance(id)
	svc.RecordAnswer(id, "Karakorum")
	svc.Advance(id)

	res, view, err := svc.Advance(id)
	if err != nil || !res.Completed {
		t.Fatalf("expected a repeated advance to report completion, got %+v %v", res, err)
	}
	if view.CanAdvance {
		t.Error("expected CanAdvance to be false once completed")
	}

	if _, err := svc.RecordAnswer(id, "Sarai"); !errors.Is(err, service.ErrSessionCompleted) {
		t.Errorf("expected ErrSessionCompleted, got %v", err)
	}
	score, _, _ := svc.Score(id)
	if score.Correct != 2 {
		t.Errorf("expected the score to stay at 2, got %+v", score)
	}

	if n := strings.Count(logs.String(), "session completed"); n != 1 {
		t.Errorf("expected one completion log line, got %d", n)
	}
}

func TestMalformedSessionID(t *testing.T) {
	svc := newService(t, quizsession.DefaultConfig())

	for _, sessionID := range []string{"", "../etc", strings.Repeat("z", 32)} {
		if _, err := svc.Get(sessionID); !errors.Is(err, service.ErrSessionNotFound) {
			t.Errorf("%q: expected ErrSessionNotFound, got %v", sessionID, err)
		}
	}
}
