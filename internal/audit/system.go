package audit

import (
	"context"

	"github.com/JaimeStill/pendakwaan/internal/auth"
	"github.com/JaimeStill/pendakwaan/pkg/pagination"
)

// System defines the read side of the audit trail. Writes go through Record
// inside the mutating domain's transaction.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		p auth.Principal,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Trail], error)
}
