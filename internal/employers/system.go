package employers

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/pendakwaan/internal/auth"
	"github.com/JaimeStill/pendakwaan/pkg/pagination"
)

// System manages employers. Reads are open to every signed-in role; writes
// require auth.ActionEmployerWrite.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Employer], error)
	Find(ctx context.Context, id uuid.UUID) (*Employer, error)
	Create(ctx context.Context, p auth.Principal, cmd CreateCommand) (*Employer, error)
	Update(ctx context.Context, p auth.Principal, id uuid.UUID, cmd UpdateCommand) (*Employer, error)
}
