package persons

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/pendakwaan/internal/audit"
	"github.com/JaimeStill/pendakwaan/internal/auth"
	"github.com/JaimeStill/pendakwaan/pkg/query"
	"github.com/JaimeStill/pendakwaan/pkg/repository"
	"github.com/JaimeStill/pendakwaan/pkg/validation"
)

// ListByCase returns the persons of a case oldest first. An unknown case
// yields an empty slice.
func ListByCase(ctx context.Context, q repository.Querier, caseID uuid.UUID) ([]Person, error) {
	stmt, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("CaseID", caseID).
		Build()

	return repository.QueryMany(ctx, q, stmt, args, scanPerson)
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a person repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "persons"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) ListByCase(ctx context.Context, caseID uuid.UUID) ([]Person, error) {
	ctx, cancel := repository.Bounded(ctx)
	defer cancel()

	persons, err := ListByCase(ctx, r.db, caseID)
	if err != nil {
		return nil, fmt.Errorf("query persons: %w", repository.Upstream(err))
	}
	return persons, nil
}

func (r *repo) Create(ctx context.Context, p auth.Principal, caseID uuid.UUID, cmd CreateCommand) (*Person, error) {
	if err := auth.Require(p, auth.ActionPersonCreate); err != nil {
		return nil, err
	}

	var v validation.Collector
	v.Required("name", cmd.Name)
	v.Check(cmd.Role.Valid(), "role", "must be one of witness, person-of-interest, employee")
	if err := v.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := repository.Bounded(ctx)
	defer cancel()

	insert := `
		INSERT INTO persons(id, case_id, name, identity_number, role, phone, address, position, employed_since)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + returning

	args := []any{
		uuid.New(),
		caseID,
		strings.TrimSpace(cmd.Name),
		cmd.IdentityNumber,
		cmd.Role,
		cmd.Phone,
		cmd.Address,
		cmd.Position,
		cmd.EmployedSince,
	}

	person, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Person, error) {
		var exists bool
		err := tx.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM cases WHERE id = $1)",
			caseID,
		).Scan(&exists)
		if err != nil {
			return Person{}, err
		}
		if !exists {
			return Person{}, ErrCaseNotFound
		}

		created, err := repository.QueryOne(ctx, tx, insert, args, scanPerson)
		if err != nil {
			return Person{}, err
		}

		err = audit.Record(ctx, tx, audit.Entry{
			Table:    "persons",
			RecordID: created.ID,
			Action:   audit.ActionCreate,
			New:      created,
			UserID:   p.UserID,
		})
		return created, err
	})

	if errors.Is(err, ErrCaseNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, repository.MapError(err, ErrCaseNotFound, ErrDuplicate)
	}

	r.logger.Info("person added", "id", person.ID, "case_id", caseID, "role", person.Role)
	return &person, nil
}
