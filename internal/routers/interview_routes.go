package routers

import (
	"github.com/go-chi/chi/v5"

	"peerprep/interview/internal/handlers"
	"peerprep/interview/internal/middleware"
	"peerprep/interview/internal/models"
)

// InterviewRoutes mounts the session API. Every route requires a bearer
// token; the history routes are optional and skipped when the handler is nil.
func InterviewRoutes(router *chi.Mux, sessionHandler *handlers.SessionHandler, historyHandler *handlers.HistoryHandler, jwtSecret string) {
	router.Route("/api/v1/interviews", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))

		r.With(middleware.ValidateRequest[*models.CreateSessionRequest]()).Post("/sessions", sessionHandler.CreateHandler)
		r.Get("/sessions", sessionHandler.ListHandler)

		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", sessionHandler.GetHandler)
			r.Post("/start", sessionHandler.StartHandler)
			r.Get("/current", sessionHandler.CurrentHandler)
			r.With(middleware.ValidateRequest[*models.AnswerRequest]()).Post("/questions/{index}/answer", sessionHandler.AnswerHandler)
			r.With(middleware.ValidateRequest[*models.FollowUpRequest]()).Post("/followup", sessionHandler.FollowUpHandler)
			r.Post("/advance", sessionHandler.AdvanceHandler)
			r.Post("/pause", sessionHandler.PauseHandler)
			r.Post("/resume", sessionHandler.ResumeHandler)
			r.Post("/complete", sessionHandler.CompleteHandler)
			r.Post("/abandon", sessionHandler.AbandonHandler)
			r.Get("/summary", sessionHandler.SummaryHandler)
		})

		if historyHandler != nil {
			r.Get("/history", historyHandler.ListHandler)
		}
	})
}
