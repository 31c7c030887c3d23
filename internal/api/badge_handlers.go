package api

import (
	"net/http"
)

type awardBadgeRequest struct {
	BadgeID string `json:"badge_id"`
}

func (s *Server) handleBadgeCatalog(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Badges.Catalog(r.Context(), UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	earned := 0
	for _, e := range entries {
		if e.Earned {
			earned++
		}
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"total_badges":  len(entries),
		"earned_badges": earned,
		"badges":        entries,
	})
}

func (s *Server) handleMyBadges(w http.ResponseWriter, r *http.Request) {
	mine, err := s.Badges.EarnedBadges(r.Context(), UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, mine)
}

func (s *Server) handleAwardBadge(w http.ResponseWriter, r *http.Request) {
	var req awardBadgeRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	earned, err := s.Badges.Award(r.Context(), UserID(r.Context()), req.BadgeID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, earned)
}
