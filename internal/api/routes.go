// internal/api/routes.go
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RegisterRoutes mounts the quiz endpoints on r.
func RegisterRoutes(r chi.Router, h *Handler) {
	// Question sets
	r.Get("/questions/topics", h.listTopics)
	r.Get("/catalog", h.getCatalog)

	// Sessions
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.startSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.getSession)
			r.Delete("/", h.endSession)
			r.Put("/answer", h.recordAnswer)
			r.Post("/advance", h.advance)
			r.Post("/retreat", h.retreat)
			r.Get("/score", h.getScore)
			r.Post("/reset", h.resetSession)
		})
	})
}

// NewRouter builds the full HTTP handler: middleware chain, health check,
// swagger UI and the quiz routes.
func NewRouter(h *Handler, logger *slog.Logger, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	// ── Middleware chain: RequestID → RealIP → Logging → Recoverer → Timeout → CORS ──
	r.Use(middleware.RequestID, middleware.RealIP, Logging(logger), middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(CORS(corsOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger UI served at /swagger/
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	RegisterRoutes(r, h)
	return r
}
