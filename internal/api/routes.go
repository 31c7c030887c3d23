package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/auth/profile", s.handleProfile)
			r.Put("/auth/profile", s.handleUpdateProfile)
			r.Post("/auth/logout", s.handleLogout)

			r.Get("/lessons", s.handleListLessons)
			r.Get("/lessons/{id}", s.handleLesson)
			r.Post("/lessons/{id}/complete", s.handleCompleteLesson)

			r.Get("/vocabulary", s.handleListCards)
			r.Get("/vocabulary/due", s.handleDueCards)
			r.Post("/vocabulary/add", s.handleAddCard)
			r.Post("/vocabulary/review", s.handleReviewCard)
			r.Get("/vocabulary/stats", s.handleVocabularyStats)
			r.Delete("/vocabulary/{cardId}", s.handleDeleteCard)

			r.Get("/placement/questions", s.handlePlacementQuestions)
			r.Post("/placement/submit", s.handleSubmitPlacement)
			r.Get("/placement/history", s.handlePlacementHistory)
			r.Post("/placement/retake", s.handleRetakePlacement)

			r.Get("/badges", s.handleBadgeCatalog)
			r.Get("/badges/my", s.handleMyBadges)
			r.Post("/badges/award", s.handleAwardBadge)

			r.Get("/analytics/weak-topics", s.handleWeakTopics)
			r.Post("/analytics/record-error", s.handleRecordError)
			r.Get("/analytics/weekly-stats", s.handleWeeklyStats)
			r.Get("/analytics/monthly-stats", s.handleMonthlyStats)
			r.Get("/analytics/overall-stats", s.handleOverallStats)
			r.Get("/analytics/lessons-to-review", s.handleLessonsToReview)
		})
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(s.StaticDir))))
	return r
}
