// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// Sentinel errors for domain layer.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrConflict   = errors.New("resource already exists")
	ErrValidation = errors.New("validation failed")
	ErrBadRequest = errors.New("bad request")
)

// InternalMessage is the only message a 500 response ever carries.
const InternalMessage = "Internal server error"

// Error is a failure that already knows its HTTP status. Message is usually a
// string or []string but may itself be a payload carrying a "message" entry.
type Error struct {
	Status  int
	Message any
	Err     error
}

// NewError constructs an Error with a plain message.
func NewError(status int, message string, err error) *Error {
	return &Error{Status: status, Message: message, Err: err}
}

func (e *Error) Error() string {
	if s, ok := flattenMessage(e.Message).(string); ok && s != "" {
		return s
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// FieldError describes one violated rule on one request field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Messages returns the per-field messages in order.
func (e *ValidationError) Messages() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, f.Message)
	}
	return out
}

// Has reports whether the given field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	StatusCode int          `json:"statusCode"`
	Message    any          `json:"message"`
	Errors     []FieldError `json:"errors,omitempty"`
}

// RespondError maps domain errors to the normalized {statusCode, message} body.
func RespondError(w http.ResponseWriter, err error) {
	JSON(w, statusOf(err), BodyFor(err))
}

// LogAndRespondError logs unclassified failures before responding.
func LogAndRespondError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	body := BodyFor(err)
	if body.StatusCode >= http.StatusInternalServerError && logger != nil {
		logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}
	JSON(w, body.StatusCode, body)
}

// BodyFor computes the response body for err without writing it.
func BodyFor(err error) ErrorBody {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return ErrorBody{StatusCode: http.StatusBadRequest, Message: verr.Messages(), Errors: verr.Fields}
	}
	var herr *Error
	if errors.As(err, &herr) {
		status := herr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		if status >= http.StatusInternalServerError {
			return ErrorBody{StatusCode: status, Message: InternalMessage}
		}
		msg := flattenMessage(herr.Message)
		if msg == nil || msg == "" {
			msg = http.StatusText(status)
		}
		return ErrorBody{StatusCode: status, Message: msg}
	}
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		return ErrorBody{StatusCode: status, Message: InternalMessage}
	}
	return ErrorBody{StatusCode: status, Message: err.Error()}
}

func statusOf(err error) int {
	var verr *ValidationError
	var herr *Error
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.As(err, &herr):
		if herr.Status == 0 {
			return http.StatusInternalServerError
		}
		return herr.Status
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrValidation), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// flattenMessage unwraps one level of nesting: a message that is itself an
// object carrying "message" yields that inner value.
func flattenMessage(m any) any {
	switch v := m.(type) {
	case nil:
		return nil
	case string, []string:
		return v
	case *Error:
		if v == nil {
			return nil
		}
		return v.Message
	case map[string]any:
		if inner, ok := v["message"]; ok {
			return inner
		}
		return v
	case map[string]string:
		if inner, ok := v["message"]; ok {
			return inner
		}
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		return v
	}
}
