package quizsession

// Config holds the policy knobs of a quiz session.
type Config struct {
	// RequireAnswer makes Advance fail with ErrUnanswered while the current
	// question has no recorded answer. When false the check is left to the
	// presentation layer.
	RequireAnswer bool
}

// DefaultConfig returns a config that enforces nothing in the core.
func DefaultConfig() Config {
	return Config{
		RequireAnswer: false,
	}
}
