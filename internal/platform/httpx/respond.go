package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"runtime/debug"
	"sort"
	"strings"
)

// MaxBodyBytes bounds request bodies accepted by DecodeJSON.
const MaxBodyBytes = 1 << 20

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// DecodeJSON decodes a single JSON object into target. Top-level properties
// must match a json tag of target exactly; case variants are rejected too.
// Decoding failures come back as *Error with status 400 and a message safe to
// show the caller.
func DecodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	if r.Body == nil {
		return NewError(http.StatusBadRequest, "Request body is required", ErrBadRequest)
	}
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(body)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return NewError(http.StatusBadRequest, "Request body must contain a single JSON object", ErrBadRequest)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err == nil {
		if unknown := unknownProperties(fields, target); len(unknown) > 0 {
			messages := make([]string, 0, len(unknown))
			for _, name := range unknown {
				messages = append(messages, "property "+name+" should not exist")
			}
			return &Error{Status: http.StatusBadRequest, Message: messages, Err: ErrValidation}
		}
	}

	strict := json.NewDecoder(bytes.NewReader(raw))
	strict.DisallowUnknownFields()
	if err := strict.Decode(target); err != nil {
		return decodeError(err)
	}
	return nil
}

// unknownProperties lists, sorted, the keys of fields that are not an exact
// json name of the struct behind target.
func unknownProperties(fields map[string]json.RawMessage, target any) []string {
	known := jsonNames(reflect.TypeOf(target))
	if known == nil {
		return nil
	}
	var unknown []string
	for name := range fields {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func jsonNames(t reflect.Type) map[string]bool {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	names := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if f.Anonymous && name == "" {
			for embedded := range jsonNames(f.Type) {
				names[embedded] = true
			}
			continue
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		names[name] = true
	}
	return names
}

func decodeError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return NewError(http.StatusBadRequest, "Request body is required", ErrBadRequest)
	case errors.Is(err, io.ErrUnexpectedEOF), errors.As(err, &syntaxErr):
		return NewError(http.StatusBadRequest, "Malformed JSON in request body", ErrBadRequest)
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return NewError(http.StatusBadRequest, "Request body must be a JSON object", ErrBadRequest)
		}
		return NewError(http.StatusBadRequest, fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.Kind()), ErrBadRequest)
	case errors.As(err, &maxErr):
		return NewError(http.StatusRequestEntityTooLarge, "Request body too large", ErrBadRequest)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return &Error{Status: http.StatusBadRequest, Message: []string{"property " + field + " should not exist"}, Err: ErrValidation}
	default:
		return NewError(http.StatusBadRequest, "Invalid request body", err)
	}
}

// NotFoundHandler answers unknown routes with the normalized body.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusNotFound, ErrorBody{
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path),
	})
}

// MethodNotAllowedHandler answers known routes hit with the wrong verb.
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusMethodNotAllowed, ErrorBody{
		StatusCode: http.StatusMethodNotAllowed,
		Message:    http.StatusText(http.StatusMethodNotAllowed),
	})
}

// Recoverer turns panics into a 500 with the normalized body.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				if logger != nil {
					logger.Error("panic recovered",
						slog.Any("panic", rec),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())))
				}
				JSON(w, http.StatusInternalServerError, ErrorBody{
					StatusCode: http.StatusInternalServerError,
					Message:    InternalMessage,
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
