package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"agri-pos/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeJSON writes a JSON response with the given status code. The status
// line is already on the wire when encoding starts, so an encode failure
// cannot be reported to the client anymore.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeDomainError maps a service error onto an HTTP status. Domain errors
// carry their code and operator-facing message through; anything else is an
// opaque 500.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg("unexpected handler error")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "internal server error",
			Code:  model.ErrCodeInternalError,
		})
		return
	}

	status := statusForCode(domainErr.Code)
	logger.Warn().
		Str("code", domainErr.Code).
		Int("status", status).
		Str("error", domainErr.Message).
		Msg("domain error")
	writeJSON(w, status, ErrorResponse{Error: domainErr.Message, Code: domainErr.Code})
}

// statusForCode picks the HTTP status for a domain error code.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeInvalidQuantity,
		model.ErrCodeMissingField,
		model.ErrCodeEmptyCart,
		model.ErrCodeIndexOutOfRange,
		model.ErrCodeValidation,
		model.ErrCodeInvalidJSON:
		return http.StatusBadRequest
	case model.ErrCodeProductNotFound,
		model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeInsufficientStock,
		model.ErrCodeProductVanished,
		model.ErrCodeDuplicatePhone:
		return http.StatusConflict
	case model.ErrCodeStoreError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
