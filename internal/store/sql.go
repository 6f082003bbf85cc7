// internal/store/sql.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite

	"github.com/alash-quiz/backend/internal/domain/catalog"
	"github.com/alash-quiz/backend/internal/domain/question"
	"github.com/alash-quiz/backend/internal/source"
)

const schema = `
CREATE TABLE IF NOT EXISTS topics (
    name TEXT PRIMARY KEY,
    description TEXT NOT NULL DEFAULT '',
    position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tests (
    id TEXT PRIMARY KEY,
    topic_name TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    position INTEGER NOT NULL,
    FOREIGN KEY (topic_name) REFERENCES topics(name) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS questions (
    set_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    text TEXT NOT NULL,
    options TEXT NOT NULL,
    correct_answer TEXT NOT NULL,
    image_ref TEXT NOT NULL DEFAULT '',
    topic TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (set_id, position)
);
`

// Store keeps question sets and the topic catalog in SQL and serves them
// as a question source.
type Store struct {
	db     *sql.DB
	driver Driver
}

// Compile-time check: *Store satisfies the source.Source interface.
var _ source.Source = (*Store)(nil)

// Open opens the database and ensures the schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*Store, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:quiz.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/quiz?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, driver: driver}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) q(query string) string {
	return rebind(s.driver, query)
}

// ============================================================================
// Questions
// ============================================================================

// ImportQuestions replaces the question set setID with questions, keeping
// their order.
func (s *Store) ImportQuestions(ctx context.Context, setID string, questions []question.Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertQuestions(ctx, tx, s.q, setID, questions); err != nil {
		return err
	}
	return tx.Commit()
}

func insertQuestions(ctx context.Context, tx *sql.Tx, q func(string) string, setID string, questions []question.Question) error {
	if _, err := tx.ExecContext(ctx, q("DELETE FROM questions WHERE set_id = ?"), setID); err != nil {
		return err
	}

	for i, qn := range questions {
		options, err := json.Marshal(qn.Options)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			q("INSERT INTO questions (set_id, position, text, options, correct_answer, image_ref, topic) VALUES (?, ?, ?, ?, ?, ?, ?)"),
			setID, i, qn.Text, string(options), qn.CorrectAnswer, qn.ImageRef, qn.Topic,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) listQuestions(ctx context.Context, setID string) ([]question.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		s.q("SELECT text, options, correct_answer, image_ref, topic FROM questions WHERE set_id = ? ORDER BY position"),
		setID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []question.Question
	for rows.Next() {
		var qn question.Question
		var optionsJSON string
		if err := rows.Scan(&qn.Text, &optionsJSON, &qn.CorrectAnswer, &qn.ImageRef, &qn.Topic); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(optionsJSON), &qn.Options); err != nil {
			return nil, fmt.Errorf("decode options: %w", err)
		}
		questions = append(questions, qn)
	}
	return questions, rows.Err()
}

// FetchQuestions returns the flat question set.
func (s *Store) FetchQuestions(ctx context.Context) ([]question.Question, error) {
	questions, err := s.listQuestions(ctx, FlatSet)
	if err != nil {
		return nil, &source.LoadError{Resource: "questions", Err: err}
	}
	return questions, nil
}

// FetchQuestionsForTest returns the question set of a catalog test.
func (s *Store) FetchQuestionsForTest(ctx context.Context, testID string) ([]question.Question, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, s.q("SELECT 1 FROM tests WHERE id = ?"), testID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, &source.LoadError{Resource: "test " + testID, Err: source.ErrUnknownTest}
	}
	if err != nil {
		return nil, &source.LoadError{Resource: "test " + testID, Err: err}
	}

	questions, err := s.listQuestions(ctx, testID)
	if err != nil {
		return nil, &source.LoadError{Resource: "test " + testID, Err: err}
	}
	return questions, nil
}

// ============================================================================
// Catalog
// ============================================================================

// ImportCatalog replaces the topic catalog. Question sets of tests are not
// touched; import them with ImportQuestions under the test ID.
func (s *Store) ImportCatalog(ctx context.Context, topics []catalog.Topic) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertCatalog(ctx, tx, s.q, topics); err != nil {
		return err
	}
	return tx.Commit()
}

func insertCatalog(ctx context.Context, tx *sql.Tx, q func(string) string, topics []catalog.Topic) error {
	// Tests first: they reference topics.
	if _, err := tx.ExecContext(ctx, "DELETE FROM tests"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM topics"); err != nil {
		return err
	}

	for i, t := range topics {
		_, err := tx.ExecContext(ctx,
			q("INSERT INTO topics (name, description, position) VALUES (?, ?, ?)"),
			t.Name, t.Description, i,
		)
		if err != nil {
			return fmt.Errorf("insert topic %q: %w", t.Name, err)
		}
		for j, test := range t.Tests {
			_, err := tx.ExecContext(ctx,
				q("INSERT INTO tests (id, topic_name, name, description, position) VALUES (?, ?, ?, ?, ?)"),
				test.ID, t.Name, test.Name, test.Description, j,
			)
			if err != nil {
				return fmt.Errorf("insert test %q: %w", test.ID, err)
			}
		}
	}
	return nil
}

// FetchTopics returns the catalog in import order. The QuestionsRef of each
// test is its ID, the key of its question set.
func (s *Store) FetchTopics(ctx context.Context) ([]catalog.Topic, error) {
	topics, err := s.listTopics(ctx)
	if err != nil {
		return nil, &source.LoadError{Resource: "topics", Err: err}
	}
	return topics, nil
}

func (s *Store) listTopics(ctx context.Context) ([]catalog.Topic, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, description FROM topics ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []catalog.Topic
	index := make(map[string]int)
	for rows.Next() {
		var t catalog.Topic
		if err := rows.Scan(&t.Name, &t.Description); err != nil {
			return nil, err
		}
		index[t.Name] = len(topics)
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	testRows, err := s.db.QueryContext(ctx, "SELECT id, topic_name, name, description FROM tests ORDER BY topic_name, position")
	if err != nil {
		return nil, err
	}
	defer testRows.Close()

	for testRows.Next() {
		var test catalog.Test
		var topicName string
		if err := testRows.Scan(&test.ID, &topicName, &test.Name, &test.Description); err != nil {
			return nil, err
		}
		test.QuestionsRef = test.ID
		if i, ok := index[topicName]; ok {
			topics[i].Tests = append(topics[i].Tests, test)
		}
	}
	return topics, testRows.Err()
}

// ============================================================================
// Seeding
// ============================================================================

// Seed copies everything src serves into the store in one transaction: the
// flat set, the catalog and each test's questions. A source without a
// catalog is fine; only the flat set is copied then.
func (s *Store) Seed(ctx context.Context, src source.Source) (ImportResult, error) {
	var result ImportResult

	flat, err := src.FetchQuestions(ctx)
	if err != nil {
		return result, err
	}

	topics, err := src.FetchTopics(ctx)
	if err != nil && !missing(err) {
		return result, err
	}

	sets := make(map[string][]question.Question)
	for _, testID := range catalog.TestIDs(topics) {
		qs, err := src.FetchQuestionsForTest(ctx, testID)
		if err != nil {
			return result, err
		}
		sets[testID] = qs
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, err
	}
	defer tx.Rollback()

	if err := insertQuestions(ctx, tx, s.q, FlatSet, flat); err != nil {
		return result, err
	}
	result.QuestionsCreated += len(flat)

	if err := insertCatalog(ctx, tx, s.q, topics); err != nil {
		return result, err
	}
	result.TopicsCreated = len(topics)

	for testID, qs := range sets {
		if err := insertQuestions(ctx, tx, s.q, testID, qs); err != nil {
			return result, err
		}
		result.TestsCreated++
		result.QuestionsCreated += len(qs)
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

func missing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, source.ErrNotFound)
}
