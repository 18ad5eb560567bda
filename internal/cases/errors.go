package cases

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/pendakwaan/internal/auth"
	"github.com/JaimeStill/pendakwaan/internal/employers"
	"github.com/JaimeStill/pendakwaan/internal/workflow"
	"github.com/JaimeStill/pendakwaan/pkg/repository"
	"github.com/JaimeStill/pendakwaan/pkg/validation"
)

var (
	ErrNotFound  = errors.New("case not found")
	ErrDuplicate = errors.New("case number already exists")
	ErrConflict  = errors.New("case was modified concurrently")
)

// MapHTTPStatus maps case errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrConflict), errors.Is(err, employers.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, validation.ErrInvalid), errors.Is(err, workflow.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrTransitionIllegal):
		return http.StatusUnprocessableEntity
	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrForbidden):
		return auth.MapHTTPStatus(err)
	case errors.Is(err, repository.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
