package employers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/pendakwaan/internal/audit"
	"github.com/JaimeStill/pendakwaan/internal/auth"
	"github.com/JaimeStill/pendakwaan/pkg/pagination"
	"github.com/JaimeStill/pendakwaan/pkg/query"
	"github.com/JaimeStill/pendakwaan/pkg/repository"
	"github.com/JaimeStill/pendakwaan/pkg/validation"
)

const insertSQL = `
	INSERT INTO employers(id, name, registration_number, address, phone, email, business_type)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + returning

// Insert creates an employer inside tx and records the audit row. Callers
// validate cmd first. Store errors are returned unmapped.
func Insert(ctx context.Context, tx *sql.Tx, p auth.Principal, cmd CreateCommand) (Employer, error) {
	args := []any{
		uuid.New(),
		strings.TrimSpace(cmd.Name),
		strings.TrimSpace(cmd.RegistrationNumber),
		cmd.Address,
		cmd.Phone,
		cmd.Email,
		cmd.BusinessType,
	}

	e, err := repository.QueryOne(ctx, tx, insertSQL, args, scanEmployer)
	if err != nil {
		return Employer{}, err
	}

	err = audit.Record(ctx, tx, audit.Entry{
		Table:    "employers",
		RecordID: e.ID,
		Action:   audit.ActionCreate,
		New:      e,
		UserID:   p.UserID,
	})
	return e, err
}

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an employer repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "employers"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Employer], error) {
	ctx, cancel := repository.Bounded(ctx)
	defer cancel()

	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "RegistrationNumber")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count employers: %w", repository.Upstream(err))
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	employers, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEmployer)
	if err != nil {
		return nil, fmt.Errorf("query employers: %w", repository.Upstream(err))
	}

	result := pagination.NewPageResult(employers, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Employer, error) {
	ctx, cancel := repository.Bounded(ctx)
	defer cancel()

	q, args := query.NewBuilder(projection).BuildSingle("ID", id)
	e, err := repository.QueryOne(ctx, r.db, q, args, scanEmployer)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

func (r *repo) Create(ctx context.Context, p auth.Principal, cmd CreateCommand) (*Employer, error) {
	if err := auth.Require(p, auth.ActionEmployerWrite); err != nil {
		return nil, err
	}

	var v validation.Collector
	cmd.Validate(&v, "")
	if err := v.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := repository.Bounded(ctx)
	defer cancel()

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Employer, error) {
		return Insert(ctx, tx, p, cmd)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("employer created", "id", e.ID, "registration_number", e.RegistrationNumber)
	return &e, nil
}

func (r *repo) Update(ctx context.Context, p auth.Principal, id uuid.UUID, cmd UpdateCommand) (*Employer, error) {
	if err := auth.Require(p, auth.ActionEmployerWrite); err != nil {
		return nil, err
	}
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	ctx, cancel := repository.Bounded(ctx)
	defer cancel()

	selectSQL, selectArgs := query.NewBuilder(projection).BuildSingle("ID", id)
	selectSQL += " FOR UPDATE"

	update := `
		UPDATE employers
		SET name = COALESCE($2, name),
			registration_number = COALESCE($3, registration_number),
			address = COALESCE($4, address),
			phone = COALESCE($5, phone),
			email = COALESCE($6, email),
			business_type = COALESCE($7, business_type),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + returning

	args := []any{id, cmd.Name, cmd.RegistrationNumber, cmd.Address, cmd.Phone, cmd.Email, cmd.BusinessType}

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Employer, error) {
		before, err := repository.QueryOne(ctx, tx, selectSQL, selectArgs, scanEmployer)
		if err != nil {
			return Employer{}, err
		}

		after, err := repository.QueryOne(ctx, tx, update, args, scanEmployer)
		if err != nil {
			return Employer{}, err
		}

		err = audit.Record(ctx, tx, audit.Entry{
			Table:    "employers",
			RecordID: id,
			Action:   audit.ActionUpdate,
			Old:      before,
			New:      after,
			UserID:   p.UserID,
		})
		return after, err
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("employer updated", "id", e.ID)
	return &e, nil
}
