package employers

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/pendakwaan/internal/auth"
	"github.com/JaimeStill/pendakwaan/pkg/repository"
	"github.com/JaimeStill/pendakwaan/pkg/validation"
)

var (
	ErrNotFound  = errors.New("employer not found")
	ErrDuplicate = errors.New("employer registration number already exists")
)

// MapHTTPStatus maps employer errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, validation.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrForbidden):
		return auth.MapHTTPStatus(err)
	case errors.Is(err, repository.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
