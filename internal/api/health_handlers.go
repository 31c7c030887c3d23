package api

import (
	"net/http"

	"github.com/qazaqstep/qazaqstep/internal/logger"
)

// handleHealth is a liveness probe. The process is up, so answer OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady checks that the database is reachable before reporting ready.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.DB.PingContext(r.Context()); err != nil {
		logger.FromContext(r.Context()).Warn("readiness check failed: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Database unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}
