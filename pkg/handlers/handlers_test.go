package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/pendakwaan/pkg/handlers"
)

type fieldErr struct{ fields map[string]string }

func (e fieldErr) Error() string                   { return "validation failed" }
func (e fieldErr) FieldErrors() map[string]string { return e.fields }

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) handlers.ErrorBody {
	t.Helper()
	var body handlers.ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	return body
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.RespondJSON(rec, http.StatusCreated, map[string]string{"case_number": "KES/2026/ABC123"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %s", ct)
	}
}

func TestRespondError(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	tests := []struct {
		name       string
		status     int
		err        error
		wantError  string
		wantFields bool
		wantLogged bool
	}{
		{"client error passes message", http.StatusBadRequest, errors.New("invalid input"), "invalid input", false, false},
		{"field errors included", http.StatusBadRequest, fieldErr{map[string]string{"act_type": "required"}}, "validation failed", true, false},
		{"server error hidden", http.StatusInternalServerError, errors.New("pq: relation cases does not exist"), "Internal Server Error", false, true},
		{"gateway timeout hidden", http.StatusGatewayTimeout, errors.New("context deadline exceeded"), "Gateway Timeout", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs.Reset()
			rec := httptest.NewRecorder()
			handlers.RespondError(rec, logger, tt.status, tt.err)

			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
			body := decodeBody(t, rec)
			if body.Error != tt.wantError {
				t.Errorf("error: got %q, want %q", body.Error, tt.wantError)
			}
			if tt.wantFields && body.Fields["act_type"] != "required" {
				t.Errorf("fields: got %v", body.Fields)
			}
			if tt.wantLogged != (logs.Len() > 0) {
				t.Errorf("logged = %v, want %v", logs.Len() > 0, tt.wantLogged)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"Syarikat Maju"}`, false},
		{"empty", ``, true},
		{"unknown field", `{"name":"x","extra":1}`, true},
		{"trailing data", `{"name":"x"}{"name":"y"}`, true},
		{"oversized", `{"name":"` + strings.Repeat("a", handlers.MaxBodyBytes) + `"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			var dst payload
			err := handlers.DecodeJSON(httptest.NewRecorder(), req, &dst)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
