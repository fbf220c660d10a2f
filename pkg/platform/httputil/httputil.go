// Package httputil centralizes JSON response writing so every handler shares
// one envelope. Failure responses always carry a caller-safe "message" field;
// wrapped causes stay server-side (handlers log them).
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	dErrors "campusgate/pkg/domain-errors"
)

type normalizer interface{ Normalize() }

type validatable interface{ Validate() error }

// DecodeAndPrepare decodes the JSON body into T, then runs its Normalize and
// Validate hooks when present. On failure it writes the error response itself
// and returns ok=false.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, requestID string) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(r.Context(), "failed to decode request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}

	if n, ok := any(&req).(normalizer); ok {
		n.Normalize()
	}
	if v, ok := any(&req).(validatable); ok {
		if err := v.Validate(); err != nil {
			WriteError(w, err)
			return nil, false
		}
	}
	return &req, true
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into an HTTP failure response.
// Internal and uncoded errors get a generic message so infrastructure detail
// never leaks to callers.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	msg := dErrors.MessageOf(err)
	if code == dErrors.CodeInternal || msg == "" {
		msg = "internal server error"
	}
	WriteJSON(w, ToHTTPStatus(code), map[string]string{"message": msg})
}

// ToHTTPStatus maps a domain error code to its HTTP status.
func ToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeLimitExceeded:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
