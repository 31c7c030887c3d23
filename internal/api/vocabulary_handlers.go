package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type addCardRequest struct {
	Word          string `json:"word"`
	Translation   string `json:"translation"`
	Pronunciation string `json:"pronunciation"`
}

type reviewCardRequest struct {
	CardID  string `json:"card_id"`
	Quality int    `json:"quality"`
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.Vocabulary.ListCards(r.Context(), UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"cards": cards})
}

func (s *Server) handleDueCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.Vocabulary.DueCards(r.Context(), UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"count": len(cards), "cards": cards})
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	var req addCardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Vocabulary.AddCard(r.Context(), UserID(r.Context()),
		req.Word, req.Translation, req.Pronunciation)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleReviewCard(w http.ResponseWriter, r *http.Request) {
	var req reviewCardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.Vocabulary.ReviewCard(r.Context(), UserID(r.Context()), req.CardID, req.Quality)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := s.Vocabulary.DeleteCard(r.Context(), UserID(r.Context()), chi.URLParam(r, "cardId")); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"message": "card deleted"})
}

func (s *Server) handleVocabularyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Vocabulary.Stats(r.Context(), UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}
