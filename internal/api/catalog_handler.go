package api

import (
	"net/http"
)

// ── Request / Response types ────────────────────────────────────────────────

type TopicsResponse struct {
	Topics []string `json:"topics"`
}

type TestResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type TopicResponse struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Tests       []TestResponse `json:"tests"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listTopics returns the distinct topics of the flat question set.
// @Summary      List question topics
// @Description  Distinct topic labels of the flat question set, in first-seen order.
// @Tags         Questions
// @Produce      json
// @Success      200  {object}  TopicsResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /questions/topics [get]
func (h *Handler) listTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.quiz.Topics(r.Context())
	if h.handleServiceError(w, r, err) {
		return
	}
	if topics == nil {
		topics = []string{}
	}
	respondJSON(w, http.StatusOK, TopicsResponse{Topics: topics})
}

// getCatalog returns the topic → test catalog.
// @Summary      Get the test catalog
// @Tags         Questions
// @Produce      json
// @Success      200  {array}   TopicResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /catalog [get]
func (h *Handler) getCatalog(w http.ResponseWriter, r *http.Request) {
	topics, err := h.quiz.Catalog(r.Context())
	if h.handleServiceError(w, r, err) {
		return
	}

	resp := make([]TopicResponse, 0, len(topics))
	for _, t := range topics {
		tests := make([]TestResponse, 0, len(t.Tests))
		for _, test := range t.Tests {
			tests = append(tests, TestResponse{
				ID:          test.ID,
				Name:        test.Name,
				Description: test.Description,
			})
		}
		resp = append(resp, TopicResponse{
			Name:        t.Name,
			Description: t.Description,
			Tests:       tests,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}
