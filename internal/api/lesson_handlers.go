package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qazaqstep/qazaqstep/internal/models"
)

type completeLessonRequest struct {
	Score     int      `json:"score"`
	TimeSpent int      `json:"time_spent"`
	Mistakes  []string `json:"mistakes"`
}

func (s *Server) handleListLessons(w http.ResponseWriter, r *http.Request) {
	filter := models.LessonFilter{
		Level: r.URL.Query().Get("level"),
		Skill: r.URL.Query().Get("skill"),
	}
	lessons, err := s.Lessons.ListLessons(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"lessons": lessons})
}

func (s *Server) handleLesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := s.Lessons.Lesson(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, lesson)
}

func (s *Server) handleCompleteLesson(w http.ResponseWriter, r *http.Request) {
	var req completeLessonRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.Lessons.CompleteLesson(r.Context(), UserID(r.Context()),
		chi.URLParam(r, "id"), req.Score, req.TimeSpent, req.Mistakes)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}
