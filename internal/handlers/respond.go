// Package handlers contains the HTTP layer: request decoding, response
// envelopes, and the mapping from service errors to status codes.
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"ai-tutorial/internal/apperrors"
	"ai-tutorial/internal/models"
)

const (
	maskedSecurityMessage = "Request contains invalid or inappropriate content"
	maskedInternalMessage = "An unexpected error occurred"
)

func writeJSON(w http.ResponseWriter, status int, body models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, data interface{}, message string) {
	writeJSON(w, http.StatusOK, models.Success(data, message))
}

// writeError maps a service error onto the HTTP status and envelope the API
// promises. Security and unknown errors are masked so internals never leak.
func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	var validationErr *apperrors.ValidationError
	var securityErr *apperrors.SecurityError
	var aiErr *apperrors.AIServiceError
	var storeErr *apperrors.VectorStoreError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, models.Error("Validation failed", validationErr.Error()))
	case errors.As(err, &securityErr):
		logger.Printf("security violation rejected: %v", err)
		writeJSON(w, http.StatusBadRequest, models.Error(maskedSecurityMessage, ""))
	case errors.As(err, &aiErr):
		logger.Printf("AI service error: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, models.Error("AI service is currently unavailable", aiErr.Message))
	case errors.As(err, &storeErr):
		logger.Printf("vector store error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.Error("Vector store operation failed", storeErr.Message))
	default:
		logger.Printf("unexpected error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.Error(maskedInternalMessage, ""))
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, models.Error("Invalid request body", err.Error()))
		return false
	}
	return true
}
