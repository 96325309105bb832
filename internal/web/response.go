package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"texglossary/internal/domain"

	"go.uber.org/zap"
)

// Error codes of the JSON error body
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeInvalidJSON   = "INVALID_JSON"
	CodeBodyTooLarge  = "BODY_TOO_LARGE"
	CodeInvalidLimit  = "INVALID_LIMIT"
	CodeNothingToUndo = "NOTHING_TO_UNDO"
	CodeUndoMismatch  = "UNDO_MISMATCH"
	CodeIO            = "IO_ERROR"
	CodeInternal      = "INTERNAL_SERVER_ERROR"
)

// ErrorDetail is the payload of an error response
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON body of every non-2xx response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MapErrorToStatusCode maps glossary errors to HTTP status codes
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNothingToUndo), errors.Is(err, domain.ErrUndoMismatch):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorCode(err error) string {
	var ioErr *domain.IOError
	switch {
	case errors.Is(err, domain.ErrValidation):
		return CodeValidation
	case errors.Is(err, domain.ErrNothingToUndo):
		return CodeNothingToUndo
	case errors.Is(err, domain.ErrUndoMismatch):
		return CodeUndoMismatch
	case errors.As(err, &ioErr):
		return CodeIO
	default:
		return CodeInternal
	}
}

// HandleError writes the JSON error response for err; message is shown to the client
func HandleError(w http.ResponseWriter, logger *zap.Logger, err error, message string) {
	status := MapErrorToStatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))
	}
	RespondWithError(w, logger, status, errorCode(err), message)
}

// RespondWithError writes an error body with the given code
func RespondWithError(w http.ResponseWriter, logger *zap.Logger, status int, code, message string) {
	RespondWithJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}, logger)
}

// RespondWithJSON writes payload as JSON
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *zap.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":"INTERNAL_SERVER_ERROR","message":"failed to build response"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		logger.Warn("Failed to write response", zap.Error(err))
	}
}
