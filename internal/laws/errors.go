package laws

import (
	"errors"
	"net/http"
)

var (
	ErrUnknownAct = errors.New("act must be akta4, akta800, or both")
	ErrNotFound   = errors.New("offense not found for act")
)

// MapHTTPStatus maps law lookup errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnknownAct):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
