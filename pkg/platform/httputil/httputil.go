package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	dErrors "bankadapter/pkg/domain-errors"
)

// ErrorBody is the uniform error payload returned to callers. It mirrors the
// success envelope's timestamp discipline: generated at response-construction
// time, not request-start time.
type ErrorBody struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
	Details    string `json:"details,omitempty"`
	Timestamp  string `json:"timestamp"`
}

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		// best-effort fallback; don't override status for the caller
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// WriteError centralizes domain error translation to HTTP responses.
// It translates transport-agnostic domain errors into HTTP status codes and
// the uniform error body.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := string(dErrors.CodeInternal)
	details := ""

	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		status = DomainCodeToHTTPStatus(domainErr.Code)
		message = domainErr.Message
		if message == "" {
			message = string(domainErr.Code)
		}
		if domainErr.Err != nil {
			details = domainErr.Err.Error()
		}
	}

	WriteJSON(w, status, ErrorBody{
		Success:    false,
		Error:      message,
		StatusCode: status,
		Details:    details,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvariantViolation:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUpstream, dErrors.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
