package api

import (
	"encoding/json"
	"net/http"

	"github.com/qazaqstep/qazaqstep/internal/errors"
	"github.com/qazaqstep/qazaqstep/internal/logger"
)

const maxBodyBytes = 1 << 20

// decodeJSON parses the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewInvalidInputError("body", "malformed JSON: "+err.Error())
	}
	return nil
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}
