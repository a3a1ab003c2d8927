package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adfharrison1/go-sortdex/pkg/domain"
)

// ErrorResponse represents a standard JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// WriteJSONError writes a JSON error response with the given status code and message
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	json.NewEncoder(w).Encode(response)
}

// StatusFor maps engine errors to HTTP status codes
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrCollectionNotFound),
		errors.Is(err, domain.ErrIndexNotFound),
		errors.Is(err, domain.ErrPositionOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCollectionExists),
		errors.Is(err, domain.ErrIndexExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidMatcher),
		errors.Is(err, domain.ErrInvalidPath):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeEngineError writes err with the status StatusFor picks
func writeEngineError(w http.ResponseWriter, err error) {
	WriteJSONError(w, StatusFor(err), err.Error())
}
