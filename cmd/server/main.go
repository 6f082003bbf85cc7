package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alash-quiz/backend/internal/api"
	"github.com/alash-quiz/backend/internal/domain/quizsession"
	"github.com/alash-quiz/backend/internal/infrastructure/config"
	"github.com/alash-quiz/backend/internal/service"
	"github.com/alash-quiz/backend/internal/source"
	"github.com/alash-quiz/backend/internal/store"

	_ "github.com/alash-quiz/backend/docs" // generated swagger docs
)

// @title           Alash Quiz API
// @version         1.0
// @description     Multiple-choice quiz engine: pick questions by topic or test, answer, navigate and get scored.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// ── Dependencies ────────────────────────────────────────────────
	src, closeSrc, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	quizSvc := service.NewQuizService(src, quizsession.Config{RequireAnswer: cfg.RequireAnswer}, logger)
	handler := api.NewHandler(quizSvc, logger, cfg.Locale)

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           api.NewRouter(handler, logger, cfg.CORSOrigins),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		quizSvc.RunJanitor(gctx, cfg.SessionSweepInterval, cfg.SessionIdleTimeout)
		return nil
	})

	g.Go(func() error {
		logger.Info("starting server",
			"address", cfg.ServerAddress,
			"source", cfg.QuestionSource,
			"require_answer", cfg.RequireAnswer,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server", "live_sessions", quizSvc.Count())
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// openSource builds the configured question source. The returned func
// releases any resources it holds.
func openSource(ctx context.Context, cfg *config.Config) (source.Source, func(), error) {
	switch cfg.QuestionSource {
	case config.SourceHTTP:
		src, err := source.NewHTTPSource(cfg.QuestionsURL)
		if err != nil {
			return nil, nil, err
		}
		return src, func() {}, nil
	case config.SourceDB:
		db, err := store.Open(ctx, store.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		return db, func() { db.Close() }, nil
	default:
		return source.NewFileSource(cfg.QuestionsDir), func() {}, nil
	}
}
