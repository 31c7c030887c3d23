package api

import (
	"net/http"
	"time"

	"github.com/qazaqstep/qazaqstep/internal/errors"
)

type recordErrorRequest struct {
	Topic string `json:"topic"`
}

func (s *Server) handleWeakTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := s.Analytics.WeakTopics(r.Context(), UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"weak_topics": topics})
}

func (s *Server) handleRecordError(w http.ResponseWriter, r *http.Request) {
	var req recordErrorRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	weak, err := s.Analytics.RecordTopicError(r.Context(), UserID(r.Context()), req.Topic)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, weak)
}

func (s *Server) handleLessonsToReview(w http.ResponseWriter, r *http.Request) {
	lessons, err := s.Analytics.LessonsToReview(r.Context(), UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"lessons": lessons})
}

func (s *Server) handleWeeklyStats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.Analytics.WeeklyProgress(r.Context(), UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, snapshot)
}

// handleMonthlyStats aggregates the month given as ?month=YYYY-MM, defaulting
// to the current month.
func (s *Server) handleMonthlyStats(w http.ResponseWriter, r *http.Request) {
	now := s.Clock.Now()
	year, month := now.Year(), now.Month()
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			handleError(w, r, errors.NewInvalidInputError("month", "must be formatted YYYY-MM"))
			return
		}
		year, month = parsed.Year(), parsed.Month()
	}

	snapshot, err := s.Analytics.MonthlyStats(r.Context(), UserID(r.Context()), year, month)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, snapshot)
}

func (s *Server) handleOverallStats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.Analytics.Overall(r.Context(), UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, snapshot)
}
