package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "tokengate/pkg/domain-errors"
)

// errorEnvelope is the JSON error shape every endpoint shares. Details carries
// upstream diagnostics (e.g. the chat platform's rejection reason) and is
// omitted when empty.
type errorEnvelope struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into an HTTP error envelope. Coded
// errors surface their caller-facing message; uncoded errors are masked with a
// generic message so internals never leak.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeInternal
	message := "An unexpected error occurred."
	details := ""

	var de *dErrors.Error
	if errors.As(err, &de) {
		code = de.Code
		message = de.Message
		details = de.Details
	}

	WriteJSON(w, statusOf(code), errorEnvelope{Error: message, Details: details})
}

func statusOf(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation, dErrors.CodeInvariantViolation:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
