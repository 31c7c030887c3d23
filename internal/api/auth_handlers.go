package api

import (
	"net/http"

	"github.com/qazaqstep/qazaqstep/internal/services"
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, token, err := s.Auth.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, map[string]any{
		"user":  user,
		"token": token,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, token, err := s.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"user":  user,
		"token": token,
	})
}

// handleLogout exists for client symmetry. Tokens are stateless, so the
// client discards its copy and the server has nothing to revoke.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]any{"message": "logged out"})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.Auth.Profile(r.Context(), UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req services.ProfileUpdate
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.Auth.UpdateProfile(r.Context(), UserID(r.Context()), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, profile)
}
