package workflow

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JaimeStill/pendakwaan/internal/auth"
)

var (
	ErrTransitionIllegal = errors.New("transition not permitted")
	ErrInvalidStatus     = errors.New("unknown case status")
)

// TransitionError names the rejected edge so the caller can correct the
// request. It unwraps to ErrTransitionIllegal.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrTransitionIllegal, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrTransitionIllegal
}

// MapHTTPStatus maps workflow errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrTransitionIllegal):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
