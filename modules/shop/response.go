package shop

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/store"
	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/svc/session"
)

// Response is the JSON envelope of every API answer.
type Response struct {
	Code  string       `json:"code,omitempty"`
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a failed request. Validation failures fill Details
// with field to messages and Errors with one entry per failed rule.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
	Errors  []FieldError        `json:"errors,omitempty"`
}

type FieldError struct {
	Field   string         `json:"field"`
	Rule    string         `json:"rule"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func ok(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Code: "ok", Data: data})
}

func fail(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Response{Code: code, Error: &ErrorDetail{Code: code, Message: message}})
}

// renderError maps use-case errors to HTTP answers. Anything not recognised
// is a fault: it is logged and its text is not exposed.
func renderError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	if failures := validator.ExtractValidationErrors(err); failures != nil {
		detail := &ErrorDetail{
			Code:    "validation_error",
			Message: "The given data was invalid",
			Details: failures.Map(),
			Errors:  make([]FieldError, len(failures)),
		}
		for i, f := range failures {
			detail.Errors[i] = FieldError{Field: f.Field, Rule: string(f.Rule), Message: f.Message, Details: f.Details}
		}
		writeJSON(w, http.StatusUnprocessableEntity, Response{Code: detail.Code, Error: detail})
		return
	}

	switch {
	case errors.Is(err, ErrUnsupportedMediaType):
		fail(w, http.StatusUnsupportedMediaType, "unsupported_media_type", err.Error())
	case errors.Is(err, ErrInvalidJSON), errors.Is(err, ErrBodyTooLarge):
		fail(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, store.ErrNotFound):
		fail(w, http.StatusNotFound, "not_found", "Resource not found")
	case errors.Is(err, store.ErrConflict):
		fail(w, http.StatusConflict, "conflict", "Resource is referenced by other records")
	case errors.Is(err, session.ErrSessionNotFound):
		fail(w, http.StatusUnauthorized, "unauthorized", "Session is missing or expired")
	default:
		log.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Error(err),
			logger.Component("shop"),
		)
		fail(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}
