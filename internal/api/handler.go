// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/text/message"

	"github.com/alash-quiz/backend/internal/domain/quizsession"
	"github.com/alash-quiz/backend/internal/domain/selection"
	"github.com/alash-quiz/backend/internal/presenter"
	"github.com/alash-quiz/backend/internal/service"
	"github.com/alash-quiz/backend/internal/source"
)

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	quiz   *service.QuizService
	logger *slog.Logger
	locale string // fallback when the request names no language
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(quiz *service.QuizService, logger *slog.Logger, locale string) *Handler {
	return &Handler{
		quiz:   quiz,
		logger: logger,
		locale: locale,
	}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error" example:"session not found"`
	Retryable bool   `json:"retryable,omitempty" example:"false"`
}

// validator is implemented by request types that check their own fields.
type validator interface {
	Validate() error
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg})
}

// decodeJSON decodes the request body into v. On failure it writes a 400
// and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// decodeAndValidate decodes v and runs its Validate method.
func decodeAndValidate[T validator](w http.ResponseWriter, r *http.Request, v T) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// printer picks the response language: ?lang=, then Accept-Language, then
// the configured default.
func (h *Handler) printer(r *http.Request) *message.Printer {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return presenter.Printer(lang)
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return message.NewPrinter(message.MatchLanguage(accept, h.locale, "en"))
	}
	return presenter.Printer(h.locale)
}

// handleServiceError maps domain errors to HTTP responses. Returns true if
// an error was handled (caller should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, source.ErrUnknownTest):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, selection.ErrEmptyFilterResult):
		respondError(w, http.StatusUnprocessableEntity, h.printer(r).Sprintf(presenter.MsgNoQuestions))
	case errors.Is(err, selection.ErrNoTopics),
		errors.Is(err, selection.ErrNoTest),
		errors.Is(err, selection.ErrUnknownKind):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSessionCompleted):
		respondError(w, http.StatusConflict, "session already completed; reset it to answer again")
	case errors.Is(err, quizsession.ErrUnanswered):
		respondError(w, http.StatusConflict, h.printer(r).Sprintf(presenter.MsgAnswerFirst))
	case errors.Is(err, source.ErrLoad):
		h.logger.Error("question source unavailable", "error", err)
		respondJSON(w, http.StatusBadGateway, ErrorResponse{
			Error:     h.printer(r).Sprintf(presenter.MsgLoadFailed),
			Retryable: true,
		})
	default:
		h.logger.Error("unexpected error", "error", err, "path", r.URL.Path)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
