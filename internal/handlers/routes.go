package handlers

import (
	"study_cards/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// Mount は学習APIのルートを r に登録する。すべて X-User-ID が必要
func Mount(r chi.Router, study *StudyHandler, stats *StatsHandler, sessions *SessionHandler) {
	r.Route("/api/v1/study", func(r chi.Router) {
		r.Use(middleware.UserContextMiddleware)

		r.Post("/answers", study.SubmitAnswer)
		r.Get("/queue", study.GetQueue)
		r.Get("/recommendations", study.GetRecommendations)
		r.Get("/stats", stats.GetStats)

		r.Get("/sessions", sessions.ListSessions)
		r.Get("/sessions/current", sessions.GetCurrent)
		r.Post("/sessions/current/end", sessions.EndCurrent)
		r.Get("/sessions/{session_id}", sessions.GetSession)
	})
}
