package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/JaimeStill/pendakwaan/internal/auth"
	"github.com/JaimeStill/pendakwaan/pkg/pagination"
	"github.com/JaimeStill/pendakwaan/pkg/query"
	"github.com/JaimeStill/pendakwaan/pkg/repository"
)

const insertSQL = `
	INSERT INTO audit_trail(id, table_name, record_id, action, old_data, new_data, user_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Record writes e using the given executor, normally the transaction of the
// mutation being audited.
func Record(ctx context.Context, x repository.Executor, e Entry) error {
	oldData, err := snapshot(e.Old)
	if err != nil {
		return fmt.Errorf("marshal old snapshot: %w", err)
	}
	newData, err := snapshot(e.New)
	if err != nil {
		return fmt.Errorf("marshal new snapshot: %w", err)
	}

	var user any
	if e.UserID != uuid.Nil {
		user = e.UserID
	}

	_, err = x.ExecContext(ctx, insertSQL,
		ulid.Make().String(),
		e.Table,
		e.RecordID,
		string(e.Action),
		oldData,
		newData,
		user,
	)
	return err
}

func snapshot(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an audit repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "audit"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	p auth.Principal,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Trail], error) {
	if err := auth.Require(p, auth.ActionAuditRead); err != nil {
		return nil, err
	}

	ctx, cancel := repository.Bounded(ctx)
	defer cancel()

	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)
	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count audit trail: %w", repository.Upstream(err))
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	rows, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanTrail)
	if err != nil {
		return nil, fmt.Errorf("query audit trail: %w", repository.Upstream(err))
	}

	result := pagination.NewPageResult(rows, total, page.Page, page.PageSize)
	return &result, nil
}
