package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Question source backends.
const (
	SourceFile = "file"
	SourceHTTP = "http"
	SourceDB   = "db"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// Question source
	QuestionSource string // file, http or db
	QuestionsDir   string // root for the file source
	QuestionsURL   string // base URL for the http source, e.g. "https://example.org/quiz/"

	// Database, used when QuestionSource is db
	DBDriver string // sqlite or postgres
	DBDSN    string

	// Quiz behavior
	RequireAnswer bool
	Locale        string // "en" or "mn"

	// Sessions unused for SessionIdleTimeout are dropped; checked every
	// SessionSweepInterval.
	SessionIdleTimeout   time.Duration
	SessionSweepInterval time.Duration

	CORSOrigins []string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddress:   mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout: mustGetDuration("SHUTDOWN_TIMEOUT"),
		QuestionSource:  getenvDefault("QUESTION_SOURCE", SourceFile),
		QuestionsDir:    getenvDefault("QUESTIONS_DIR", "./data"),
		QuestionsURL:    os.Getenv("QUESTIONS_URL"),
		DBDriver:        getenvDefault("DB_DRIVER", "sqlite"),
		DBDSN:           os.Getenv("DB_DSN"),
		RequireAnswer:   envBool("REQUIRE_ANSWER", true),
		Locale:          getenvDefault("LOCALE", "en"),
		CORSOrigins:     csvOr("CORS_ORIGINS", "*"),

		SessionIdleTimeout:   getDurationDefault("SESSION_IDLE_TIMEOUT", 2*time.Hour),
		SessionSweepInterval: getDurationDefault("SESSION_SWEEP_INTERVAL", time.Minute),
	}

	switch cfg.QuestionSource {
	case SourceFile, SourceDB:
	case SourceHTTP:
		if cfg.QuestionsURL == "" {
			log.Fatalf("config: QUESTIONS_URL is required when QUESTION_SOURCE=%s", SourceHTTP)
		}
	default:
		log.Fatalf("config: QUESTION_SOURCE=%q must be one of file, http, db", cfg.QuestionSource)
	}
	return cfg
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := mustGetenv(k)
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Fatalf("config: %s=%q is not a valid positive duration", k, v)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k, def string) []string {
	parts := strings.Split(getenvDefault(k, def), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
