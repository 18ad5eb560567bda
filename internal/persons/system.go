package persons

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/pendakwaan/internal/auth"
)

// System manages persons within a case.
type System interface {
	Handler() *Handler

	ListByCase(ctx context.Context, caseID uuid.UUID) ([]Person, error)
	Create(ctx context.Context, p auth.Principal, caseID uuid.UUID, cmd CreateCommand) (*Person, error)
}
