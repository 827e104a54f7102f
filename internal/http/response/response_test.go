package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobboard/internal/common"
)

type countingCollector struct {
	errors int
}

func (c *countingCollector) IncErrors() {
	c.errors++
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var body Envelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestErrorMapsCodesToStatuses(t *testing.T) {
	cases := []struct {
		code common.Code
		want int
	}{
		{common.CodeValidation, http.StatusBadRequest},
		{common.CodeConflict, http.StatusBadRequest},
		{common.CodeUnauthorized, http.StatusUnauthorized},
		{common.CodeForbidden, http.StatusForbidden},
		{common.CodeLocked, http.StatusForbidden},
		{common.CodeNotFound, http.StatusNotFound},
		{common.CodeRateLimited, http.StatusTooManyRequests},
		{common.CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		Error(rec, common.NewError(tc.code, "boom", nil))
		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.code, tc.want, rec.Code)
		}
		if body := decode(t, rec); body.Status != StatusError || body.Message != "boom" {
			t.Fatalf("%s: unexpected body %+v", tc.code, body)
		}
	}
}

func TestErrorIncludesFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, common.NewValidationError("Validation error", map[string]string{"title": "This field is required."}))

	body := decode(t, rec)
	if body.Errors["title"] != "This field is required." {
		t.Fatalf("unexpected errors %+v", body.Errors)
	}
}

func TestErrorHidesUnknownErrorsAndCountsThem(t *testing.T) {
	collector := &countingCollector{}
	SetErrorCollector(collector)
	defer SetErrorCollector(nil)

	rec := httptest.NewRecorder()
	Error(rec, errors.New("pq: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := decode(t, rec); body.Message != "Internal server error." {
		t.Fatalf("expected generic message, got %q", body.Message)
	}
	if collector.errors != 1 {
		t.Fatalf("expected one counted error, got %d", collector.errors)
	}
}

func TestSuccessWrapsData(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, "Job offer created successfully.", map[string]string{"id": "1"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	body := decode(t, rec)
	if body.Status != StatusSuccess || body.Data == nil {
		t.Fatalf("unexpected body %+v", body)
	}
}
