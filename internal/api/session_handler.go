package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/message"

	"github.com/alash-quiz/backend/internal/domain/selection"
	"github.com/alash-quiz/backend/internal/presenter"
	"github.com/alash-quiz/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartSessionRequest struct {
	Mode   string   `json:"mode" example:"topics" enums:"flat,topics,test"`
	Topics []string `json:"topics,omitempty" example:"geography"`
	TestID string   `json:"test_id,omitempty" example:"geography-1"`

	strategy selection.Strategy // set by Validate
}

// toStrategy converts the request into a selection strategy.
func (r *StartSessionRequest) toStrategy() (selection.Strategy, error) {
	kind, err := selection.ParseKind(r.Mode)
	if err != nil {
		return selection.Strategy{}, err
	}
	switch kind {
	case selection.KindTopicFiltered:
		return selection.ByTopics(r.Topics...), nil
	case selection.KindTopicTestNested:
		return selection.ByTest(r.TestID), nil
	default:
		return selection.Flat(), nil
	}
}

// Validate checks the selection and keeps the resulting strategy for the
// handler.
func (r *StartSessionRequest) Validate() error {
	s, err := r.toStrategy()
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	r.strategy = s
	return nil
}

type RecordAnswerRequest struct {
	Answer string `json:"answer" example:"Ulaanbaatar"`
}

type QuestionResponse struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Image   string   `json:"image,omitempty"`
	Topic   string   `json:"topic,omitempty"`
}

type SessionResponse struct {
	ID              string            `json:"id"`
	Mode            string            `json:"mode"`
	Index           int               `json:"index"`
	Total           int               `json:"total"`
	Heading         string            `json:"heading,omitempty" example:"Question 1/5"`
	Progress        string            `json:"progress,omitempty" example:"1/5"`
	ProgressPercent int               `json:"progress_percent"`
	Question        *QuestionResponse `json:"question,omitempty"`
	SelectedAnswer  string            `json:"selected_answer,omitempty"`
	IsLast          bool              `json:"is_last"`
	CanAdvance      bool              `json:"can_advance"`
	CanRetreat      bool              `json:"can_retreat"`
	NextLabel       string            `json:"next_label,omitempty" example:"Next"`
	Completed       bool              `json:"completed"`
	State           string            `json:"state" example:"in_progress"`
}

type AdvanceResponse struct {
	Moved     bool            `json:"moved"`
	Completed bool            `json:"completed"`
	Session   SessionResponse `json:"session"`
}

type ScoreResponse struct {
	SessionID  string `json:"session_id"`
	Correct    int    `json:"correct"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Completed  bool   `json:"completed"`
	Summary    string `json:"summary" example:"You answered 4 of 5 questions correctly."`
}

func newSessionResponse(p *message.Printer, v service.View) SessionResponse {
	resp := SessionResponse{
		ID:         v.SessionID,
		Mode:       string(v.Selection.Kind),
		Index:      v.Index,
		Total:      v.Total,
		IsLast:     v.IsLast,
		CanAdvance: v.CanAdvance,
		CanRetreat: v.CanRetreat,
		Completed:  v.Completed,
		State:      string(v.State),

		SelectedAnswer: v.Selected,
	}
	if v.Question == nil {
		return resp
	}

	resp.Heading = p.Sprintf(presenter.MsgQuestion, v.Index+1, v.Total)
	resp.Progress = presenter.Progress(v.Index, v.Total)
	resp.ProgressPercent = presenter.ProgressPercentage(v.Index, v.Total)
	resp.NextLabel = presenter.NextLabel(p, v.IsLast)
	resp.Question = &QuestionResponse{
		Text:    v.Question.Text,
		Options: v.Question.Options,
		Image:   v.Question.ImageRef,
		Topic:   v.Question.Topic,
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// startSession loads questions and opens a new quiz session.
// @Summary      Start a quiz session
// @Description  Resolve the question list for the chosen mode and open a session positioned on the first question.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        body  body      StartSessionRequest  true  "Selection"
// @Success      201   {object}  SessionResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse  "test not found"
// @Failure      422   {object}  ErrorResponse  "no questions match the topics"
// @Failure      502   {object}  ErrorResponse  "question source unavailable"
// @Router       /sessions [post]
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	view, err := h.quiz.Start(r.Context(), req.strategy)
	if h.handleServiceError(w, r, err) {
		return
	}

	respondJSON(w, http.StatusCreated, newSessionResponse(h.printer(r), view))
}

// getSession returns the current state of a session.
// @Summary      Get a quiz session
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /sessions/{sessionID} [get]
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.quiz.Get(chi.URLParam(r, "sessionID"))
	if h.handleServiceError(w, r, err) {
		return
	}
	respondJSON(w, http.StatusOK, newSessionResponse(h.printer(r), view))
}

// recordAnswer stores the selected option for the current question.
// @Summary      Answer the current question
// @Description  Record (or overwrite) the selected option for the current question. The value is not checked against the options. A completed session must be reset first.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string               true  "Session ID"
// @Param        body       body      RecordAnswerRequest  true  "Selected option"
// @Success      200        {object}  SessionResponse
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse  "session already completed"
// @Router       /sessions/{sessionID}/answer [put]
func (h *Handler) recordAnswer(w http.ResponseWriter, r *http.Request) {
	var req RecordAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.quiz.RecordAnswer(chi.URLParam(r, "sessionID"), req.Answer)
	if h.handleServiceError(w, r, err) {
		return
	}
	respondJSON(w, http.StatusOK, newSessionResponse(h.printer(r), view))
}

// advance moves to the next question, completing the session on the last one.
// @Summary      Go to the next question
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  AdvanceResponse
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse  "current question unanswered"
// @Router       /sessions/{sessionID}/advance [post]
func (h *Handler) advance(w http.ResponseWriter, r *http.Request) {
	res, view, err := h.quiz.Advance(chi.URLParam(r, "sessionID"))
	if h.handleServiceError(w, r, err) {
		return
	}

	respondJSON(w, http.StatusOK, AdvanceResponse{
		Moved:     res.Moved,
		Completed: res.Completed,
		Session:   newSessionResponse(h.printer(r), view),
	})
}

// retreat moves back one question.
// @Summary      Go to the previous question
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /sessions/{sessionID}/retreat [post]
func (h *Handler) retreat(w http.ResponseWriter, r *http.Request) {
	view, err := h.quiz.Retreat(chi.URLParam(r, "sessionID"))
	if h.handleServiceError(w, r, err) {
		return
	}
	respondJSON(w, http.StatusOK, newSessionResponse(h.printer(r), view))
}

// getScore returns the number of correct answers so far.
// @Summary      Get the score
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  ScoreResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /sessions/{sessionID}/score [get]
func (h *Handler) getScore(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	score, completed, err := h.quiz.Score(sessionID)
	if h.handleServiceError(w, r, err) {
		return
	}

	respondJSON(w, http.StatusOK, ScoreResponse{
		SessionID:  sessionID,
		Correct:    score.Correct,
		Total:      score.Total,
		Percentage: presenter.Percentage(score),
		Completed:  completed,
		Summary:    presenter.Summary(h.printer(r), score),
	})
}

// resetSession clears all answers and returns to the first question.
// @Summary      Restart a session
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /sessions/{sessionID}/reset [post]
func (h *Handler) resetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.quiz.Reset(chi.URLParam(r, "sessionID"))
	if h.handleServiceError(w, r, err) {
		return
	}
	respondJSON(w, http.StatusOK, newSessionResponse(h.printer(r), view))
}

// endSession discards a session.
// @Summary      End a session
// @Tags         Sessions
// @Param        sessionID  path  string  true  "Session ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /sessions/{sessionID} [delete]
func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	if h.handleServiceError(w, r, h.quiz.End(chi.URLParam(r, "sessionID"))) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
