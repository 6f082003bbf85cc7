package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/alash-quiz/backend/internal/domain/question"
)

// ExportResult counts what Export wrote.
type ExportResult struct {
	Questions int
	Topics    int
	Tests     int
}

// Export writes everything src serves into dir in the layout FileSource
// reads: questions.json, topics.json and one file per test under tests/.
// Test files are numbered in catalog order and the catalog is rewritten to
// point at them; test IDs are kept. A source without a catalog only yields
// questions.json.
func Export(ctx context.Context, src Source, dir string) (ExportResult, error) {
	var result ExportResult

	flat, err := src.FetchQuestions(ctx)
	if err != nil {
		return result, err
	}

	topics, err := src.FetchTopics(ctx)
	if err != nil && !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, ErrNotFound) {
		return result, err
	}

	if err := os.MkdirAll(filepath.Join(dir, "tests"), 0o755); err != nil {
		return result, fmt.Errorf("create export directory: %w", err)
	}

	if err := writeQuestions(filepath.Join(dir, QuestionsFile), flat); err != nil {
		return result, err
	}
	result.Questions += len(flat)

	if topics == nil {
		return result, nil
	}

	records := make([]TopicRecord, len(topics))
	n := 0
	for i, topic := range topics {
		records[i] = NewTopicRecord(topic)
		for j, test := range topic.Tests {
			qs, err := src.FetchQuestionsForTest(ctx, test.ID)
			if err != nil {
				return result, err
			}

			n++
			ref := path.Join("tests", fmt.Sprintf("%03d.json", n))
			if err := writeQuestions(filepath.Join(dir, filepath.FromSlash(ref)), qs); err != nil {
				return result, err
			}
			records[i].Tests[j].ID = test.ID
			records[i].Tests[j].Questions = ref

			result.Tests++
			result.Questions += len(qs)
		}
	}

	if err := writeJSON(filepath.Join(dir, TopicsFile), records); err != nil {
		return result, err
	}
	result.Topics = len(topics)
	return result, nil
}

func writeQuestions(name string, qs []question.Question) error {
	records := make([]QuestionRecord, len(qs))
	for i, q := range qs {
		records[i] = NewQuestionRecord(q)
	}
	return writeJSON(name, records)
}

func writeJSON(name string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(name), err)
	}
	if err := os.WriteFile(name, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(name), err)
	}
	return nil
}
