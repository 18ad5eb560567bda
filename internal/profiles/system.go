package profiles

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/pendakwaan/internal/auth"
	"github.com/JaimeStill/pendakwaan/pkg/pagination"
)

// System manages profiles and implements auth.Resolver.
type System interface {
	auth.Resolver

	Handler() *Handler

	Me(ctx context.Context, p auth.Principal) (*Profile, error)
	List(
		ctx context.Context,
		p auth.Principal,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Profile], error)
	Find(ctx context.Context, p auth.Principal, id uuid.UUID) (*Profile, error)
	Update(ctx context.Context, p auth.Principal, id uuid.UUID, cmd UpdateCommand) (*Profile, error)
}
