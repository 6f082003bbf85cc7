package source

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alash-quiz/backend/internal/domain/catalog"
	"github.com/alash-quiz/backend/internal/domain/question"
)

// QuestionRecord is one entry of a question set file.
type QuestionRecord struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Image         string   `json:"image,omitempty"`
	Topic         string   `json:"topic,omitempty"`
}

// TopicRecord is one entry of a topics file.
type TopicRecord struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Tests       []TestRecord `json:"tests"`
}

// TestRecord points at a question set file relative to the source root.
// When ID is empty the Questions reference doubles as the ID.
type TestRecord struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Questions   string `json:"questions"`
}

func (r QuestionRecord) toQuestion() question.Question {
	return question.Question{
		Text:          r.Question,
		Options:       r.Options,
		CorrectAnswer: r.CorrectAnswer,
		ImageRef:      r.Image,
		Topic:         r.Topic,
	}
}

// NewQuestionRecord maps a question back to its file form.
func NewQuestionRecord(q question.Question) QuestionRecord {
	return QuestionRecord{
		Question:      q.Text,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Image:         q.ImageRef,
		Topic:         q.Topic,
	}
}

// NewTopicRecord maps a topic back to its file form. Test references are
// taken from QuestionsRef.
func NewTopicRecord(t catalog.Topic) TopicRecord {
	rec := TopicRecord{
		Name:        t.Name,
		Description: t.Description,
		Tests:       make([]TestRecord, len(t.Tests)),
	}
	for i, test := range t.Tests {
		rec.Tests[i] = TestRecord{
			ID:          test.ID,
			Name:        test.Name,
			Description: test.Description,
			Questions:   test.QuestionsRef,
		}
	}
	return rec
}

// DecodeQuestions reads a JSON array of question records. Records are taken
// as they are: structural problems and answers missing from the options are
// left for the audit to report.
func DecodeQuestions(r io.Reader) ([]question.Question, error) {
	var records []QuestionRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	questions := make([]question.Question, len(records))
	for i, rec := range records {
		questions[i] = rec.toQuestion()
	}
	return questions, nil
}

// DecodeTopics reads a JSON array of topic records.
func DecodeTopics(r io.Reader) ([]catalog.Topic, error) {
	var records []TopicRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode topics: %w", err)
	}

	topics := make([]catalog.Topic, len(records))
	for i, rec := range records {
		if rec.Name == "" {
			return nil, fmt.Errorf("topic %d: name is required", i)
		}
		topic := catalog.Topic{
			Name:        rec.Name,
			Description: rec.Description,
			Tests:       make([]catalog.Test, len(rec.Tests)),
		}
		for j, tr := range rec.Tests {
			if tr.Questions == "" {
				return nil, fmt.Errorf("topic %q test %d: questions reference is required", rec.Name, j)
			}
			testID := tr.ID
			if testID == "" {
				testID = tr.Questions
			}
			topic.Tests[j] = catalog.Test{
				ID:           testID,
				Name:         tr.Name,
				Description:  tr.Description,
				QuestionsRef: tr.Questions,
			}
		}
		topics[i] = topic
	}
	return topics, nil
}
