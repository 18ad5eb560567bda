package cases

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/pendakwaan/internal/auth"
	"github.com/JaimeStill/pendakwaan/internal/workflow"
	"github.com/JaimeStill/pendakwaan/pkg/pagination"
)

// System defines the case operations. Every mutation takes the caller's
// principal and enforces its permission before touching the store.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Case], error)
	Find(ctx context.Context, id uuid.UUID) (*Case, error)
	Detail(ctx context.Context, p auth.Principal, id uuid.UUID) (*Detail, error)
	Actions(ctx context.Context, p auth.Principal, id uuid.UUID) ([]workflow.Transition, error)
	Create(ctx context.Context, p auth.Principal, cmd CreateCommand) (*Case, error)
	Update(ctx context.Context, p auth.Principal, id uuid.UUID, cmd UpdateCommand) (*Case, error)
	Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error
	Transition(ctx context.Context, p auth.Principal, id uuid.UUID, cmd TransitionCommand) (*Case, error)
}
