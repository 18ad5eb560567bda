// Package handlers provides JSON response helpers shared by HTTP handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// MaxBodyBytes caps decoded request bodies.
const MaxBodyBytes = 1 << 20

// FieldError is implemented by errors that carry per-field validation
// messages. RespondError includes them in the response body.
type FieldError interface {
	error
	FieldErrors() map[string]string
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// RespondJSON writes data as JSON with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError writes err as a JSON error body. Server-side failures are
// logged and replaced with the generic status text so internal detail never
// reaches the client.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	body := ErrorBody{Error: err.Error()}

	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "status", status, "error", err)
		body.Error = http.StatusText(status)
	} else {
		var fe FieldError
		if errors.As(err, &fe) {
			body.Fields = fe.FieldErrors()
		}
	}

	RespondJSON(w, status, body)
}

// DecodeJSON decodes the request body into dst, rejecting unknown fields,
// trailing data, and bodies larger than MaxBodyBytes.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is empty")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("invalid request body: unexpected trailing data")
	}
	return nil
}
