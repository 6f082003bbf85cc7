package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alash-quiz/backend/internal/domain/catalog"
	"github.com/alash-quiz/backend/internal/domain/question"
)

// FileSource reads question sets from a local directory laid out like the
// static site: questions.json, topics.json and per-test files.
type FileSource struct {
	root string
}

// Compile-time check: *FileSource satisfies the Source interface.
var _ Source = (*FileSource)(nil)

func NewFileSource(root string) *FileSource {
	return &FileSource{root: root}
}

func (s *FileSource) FetchQuestions(ctx context.Context) ([]question.Question, error) {
	return s.readQuestions(ctx, QuestionsFile)
}

func (s *FileSource) FetchTopics(ctx context.Context) ([]catalog.Topic, error) {
	if err := ctx.Err(); err != nil {
		return nil, loadErr(TopicsFile, err)
	}

	f, err := s.open(TopicsFile)
	if err != nil {
		return nil, loadErr(TopicsFile, err)
	}
	defer f.Close()

	topics, err := DecodeTopics(f)
	if err != nil {
		return nil, loadErr(TopicsFile, err)
	}
	return topics, nil
}

func (s *FileSource) FetchQuestionsForTest(ctx context.Context, testID string) ([]question.Question, error) {
	topics, err := s.FetchTopics(ctx)
	if err != nil {
		return nil, err
	}

	test, ok := catalog.FindTest(topics, testID)
	if !ok {
		return nil, unknownTest(testID)
	}
	return s.readQuestions(ctx, test.QuestionsRef)
}

func (s *FileSource) readQuestions(ctx context.Context, name string) ([]question.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, loadErr(name, err)
	}

	f, err := s.open(name)
	if err != nil {
		return nil, loadErr(name, err)
	}
	defer f.Close()

	questions, err := DecodeQuestions(f)
	if err != nil {
		return nil, loadErr(name, err)
	}
	return questions, nil
}

// open resolves name inside the root; references may not climb out of it.
func (s *FileSource) open(name string) (*os.File, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if !filepath.IsLocal(clean) {
		return nil, fmt.Errorf("reference %q escapes the question directory", name)
	}
	return os.Open(filepath.Join(s.root, clean))
}
