package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/travelmaker/backend/internal/domain"
	"github.com/travelmaker/backend/internal/llm"
)

// ErrorDetail is the machine-readable half of an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Snippet carries a short excerpt of an unparseable upstream AI
	// response, for debugging. Only set on upstream_parse errors.
	Snippet string `json:"snippet,omitempty"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response body", "error", err)
	}
}

// badRequest rejects a request before it reaches the service layer
// (e.g. missing or malformed body, bad path parameter).
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{Code: "bad_request", Message: message},
	})
}

// respondError maps a service-layer error onto the HTTP surface:
//
//	domain.ErrNotFound   → 404 not_found (message names the resource)
//	domain.ErrValidation → 422 validation_error
//	*llm.ParseError      → 502 upstream_parse with a response snippet
//	anything else        → 500 internal, logged, body kept generic
func respondError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error: ErrorDetail{Code: "not_found", Message: resource + " not found"},
		})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)},
		})
	default:
		var parseErr *llm.ParseError
		if errors.As(err, &parseErr) {
			writeJSON(w, http.StatusBadGateway, ErrorResponse{
				Error: ErrorDetail{
					Code:    "upstream_parse",
					Message: "AI response could not be parsed",
					Snippet: parseErr.Snippet,
				},
			})
			return
		}
		slog.ErrorContext(r.Context(), "unhandled error", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "internal", Message: "internal server error"},
		})
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "service.TripService.Create: validation error: location is
// required" → "location is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
