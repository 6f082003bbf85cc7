package id

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateID creates a unique 32-character lowercase hex ID.
func GenerateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Valid reports whether s looks like an ID produced by GenerateID.
func Valid(s string) bool {
	if len(s) != 32 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
