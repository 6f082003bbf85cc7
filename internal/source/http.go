package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alash-quiz/backend/internal/domain/catalog"
	"github.com/alash-quiz/backend/internal/domain/question"
)

// HTTPSource fetches the static question files from a web server.
type HTTPSource struct {
	base   *url.URL
	client *http.Client // reused across calls
}

// Compile-time check: *HTTPSource satisfies the Source interface.
var _ Source = (*HTTPSource)(nil)

// NewHTTPSource creates a source rooted at baseURL, e.g.
// "https://quiz.example.com/data/".
func NewHTTPSource(baseURL string) (*HTTPSource, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid questions url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid questions url %q: scheme must be http or https", baseURL)
	}

	return &HTTPSource{
		base: u,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (s *HTTPSource) FetchQuestions(ctx context.Context) ([]question.Question, error) {
	return s.fetchQuestions(ctx, QuestionsFile)
}

func (s *HTTPSource) FetchTopics(ctx context.Context) ([]catalog.Topic, error) {
	var topics []catalog.Topic
	err := s.get(ctx, TopicsFile, func(r io.Reader) error {
		var err error
		topics, err = DecodeTopics(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return topics, nil
}

func (s *HTTPSource) FetchQuestionsForTest(ctx context.Context, testID string) ([]question.Question, error) {
	topics, err := s.FetchTopics(ctx)
	if err != nil {
		return nil, err
	}

	test, ok := catalog.FindTest(topics, testID)
	if !ok {
		return nil, unknownTest(testID)
	}
	return s.fetchQuestions(ctx, test.QuestionsRef)
}

func (s *HTTPSource) fetchQuestions(ctx context.Context, ref string) ([]question.Question, error) {
	var questions []question.Question
	err := s.get(ctx, ref, func(r io.Reader) error {
		var err error
		questions, err = DecodeQuestions(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// get resolves ref against the base URL, performs a GET and hands the body
// to decode. Every failure comes back as a *LoadError.
func (s *HTTPSource) get(ctx context.Context, ref string, decode func(io.Reader) error) error {
	rel, err := url.Parse(strings.TrimPrefix(ref, "/"))
	if err != nil {
		return loadErr(ref, err)
	}
	target := s.base.ResolveReference(rel).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return loadErr(target, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return loadErr(target, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			return loadErr(target, ErrNotFound)
		}
		return loadErr(target, fmt.Errorf("server returned status %d", resp.StatusCode))
	}

	if err := decode(resp.Body); err != nil {
		return loadErr(target, err)
	}
	return nil
}
