package api

import (
	"net/http"
)

type submitPlacementRequest struct {
	Answers map[string]int `json:"answers"`
}

func (s *Server) handlePlacementQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := s.Placement.Questions(r.Context(), UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"questions": questions})
}

func (s *Server) handleSubmitPlacement(w http.ResponseWriter, r *http.Request) {
	var req submitPlacementRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	outcome, err := s.Placement.Submit(r.Context(), UserID(r.Context()), req.Answers)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, outcome)
}

func (s *Server) handlePlacementHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.Placement.History(r.Context(), UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"records": records})
}

func (s *Server) handleRetakePlacement(w http.ResponseWriter, r *http.Request) {
	if err := s.Placement.Retake(r.Context(), UserID(r.Context())); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"message": "placement reopened"})
}
