package audit

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/pendakwaan/internal/auth"
	"github.com/JaimeStill/pendakwaan/pkg/repository"
)

var ErrInvalidFilter = errors.New("invalid audit filter")

// MapHTTPStatus maps audit errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidFilter):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
