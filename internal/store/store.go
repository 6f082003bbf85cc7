package store

import (
	"errors"
	"strconv"
	"strings"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// FlatSet is the set ID of the top-level question list; every other set is
// keyed by its test ID.
const FlatSet = ""

// ImportResult counts what a Seed call wrote.
type ImportResult struct {
	QuestionsCreated int `json:"questions_created"`
	TopicsCreated    int `json:"topics_created"`
	TestsCreated     int `json:"tests_created"`
}

// rebind rewrites ? placeholders to $n for drivers that need it.
func rebind(driver Driver, query string) string {
	if driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
