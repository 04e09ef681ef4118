package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestRespondErrorMapsTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message any
	}{
		{"not found", fmt.Errorf("load: %w", ErrNotFound), http.StatusNotFound, "load: resource not found"},
		{"conflict error", NewError(http.StatusConflict, "A client with this SIRET already exists", ErrConflict), http.StatusConflict, "A client with this SIRET already exists"},
		{"wrapped conflict", fmt.Errorf("create: %w", NewError(http.StatusConflict, "dup", ErrConflict)), http.StatusConflict, "dup"},
		{"plain failure", errors.New("dial tcp 10.0.0.1:5432: connection refused"), http.StatusInternalServerError, InternalMessage},
		{"internal error never leaks", NewError(http.StatusServiceUnavailable, "pool exhausted", nil), http.StatusServiceUnavailable, InternalMessage},
		{"zero status", &Error{Message: "boom"}, http.StatusInternalServerError, InternalMessage},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			RespondError(rr, tc.err)
			assert.Equal(t, tc.status, rr.Code)
			body := decodeBody(t, rr)
			assert.EqualValues(t, tc.status, body["statusCode"])
			assert.Equal(t, tc.message, body["message"])
		})
	}
}

func TestRespondErrorValidationListsFields(t *testing.T) {
	verr := &ValidationError{Fields: []FieldError{
		{Field: "siret", Rule: "siret", Message: "SIRET must contain exactly 14 digits"},
		{Field: "city", Rule: "required", Message: "city should not be empty"},
	}}
	rr := httptest.NewRecorder()
	RespondError(rr, fmt.Errorf("create client: %w", verr))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, []any{"SIRET must contain exactly 14 digits", "city should not be empty"}, body["message"])
	fields := body["errors"].([]any)
	require.Len(t, fields, 2)
	assert.Equal(t, "siret", fields[0].(map[string]any)["field"])
	assert.True(t, errors.Is(verr, ErrValidation))
	assert.True(t, verr.Has("city"))
	assert.False(t, verr.Has("name"))
}

func TestRespondErrorUnwrapsNestedMessage(t *testing.T) {
	nested := &Error{
		Status:  http.StatusBadRequest,
		Message: map[string]any{"message": []string{"property foo should not exist"}, "error": "Bad Request"},
	}
	rr := httptest.NewRecorder()
	RespondError(rr, nested)
	body := decodeBody(t, rr)
	assert.Equal(t, []any{"property foo should not exist"}, body["message"])

	inner := NewError(http.StatusNotFound, "Client x not found", ErrNotFound)
	outer := &Error{Status: http.StatusNotFound, Message: inner}
	rr = httptest.NewRecorder()
	RespondError(rr, outer)
	body = decodeBody(t, rr)
	assert.Equal(t, "Client x not found", body["message"])
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"unknown field", `{"name":"a","foo":"bar"}`, http.StatusBadRequest, "property foo should not exist"},
		{"case variant", `{"Name":"a"}`, http.StatusBadRequest, "property Name should not exist"},
		{"array", `[]`, http.StatusBadRequest, "Request body must be a JSON object"},
		{"empty", ``, http.StatusBadRequest, "Request body is required"},
		{"malformed", `{"name":`, http.StatusBadRequest, "Malformed JSON in request body"},
		{"wrong type", `{"name":12}`, http.StatusBadRequest, "name must be a string"},
		{"trailing data", `{"name":"a"}{"name":"b"}`, http.StatusBadRequest, "Request body must contain a single JSON object"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var p payload
			err := DecodeJSON(httptest.NewRecorder(), req, &p)
			require.Error(t, err)
			rr := httptest.NewRecorder()
			RespondError(rr, err)
			assert.Equal(t, tc.status, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.message)
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok"}`))
	var p payload
	require.NoError(t, DecodeJSON(httptest.NewRecorder(), req, &p))
	assert.Equal(t, "ok", p.Name)
}

func TestRecovererEmitsNormalizedBody(t *testing.T) {
	h := Recoverer(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, InternalMessage, body["message"])
	assert.NotContains(t, rr.Body.String(), "kaboom")
}

func TestNotFoundHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	NotFoundHandler(rr, httptest.NewRequest(http.MethodGet, "/api/v1/schools", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Cannot GET /api/v1/schools", decodeBody(t, rr)["message"])
}
