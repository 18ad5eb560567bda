package cases

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/pendakwaan/internal/audit"
	"github.com/JaimeStill/pendakwaan/internal/auth"
	"github.com/JaimeStill/pendakwaan/internal/employers"
	"github.com/JaimeStill/pendakwaan/internal/laws"
	"github.com/JaimeStill/pendakwaan/internal/persons"
	"github.com/JaimeStill/pendakwaan/internal/workflow"
	"github.com/JaimeStill/pendakwaan/pkg/civil"
	"github.com/JaimeStill/pendakwaan/pkg/pagination"
	"github.com/JaimeStill/pendakwaan/pkg/query"
	"github.com/JaimeStill/pendakwaan/pkg/repository"
	"github.com/JaimeStill/pendakwaan/pkg/validation"
)

const (
	caseNumberConstraint   = "cases_case_number_key"
	registrationConstraint = "employers_registration_number_key"
)

const insertSQL = `
	INSERT INTO cases(
		id, case_number, employer_id, officer_id, status, act_type, offense_type,
		charge_section, penalty_section, compound_section, date_of_offense,
		inspection_date, inspection_location, issue_summary, notes, created_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

const updateSQL = `
	UPDATE cases
	SET employer_id = $2,
		officer_id = $3,
		act_type = $4,
		offense_type = $5,
		charge_section = $6,
		penalty_section = $7,
		compound_section = $8,
		date_of_offense = $9,
		inspection_date = $10,
		inspection_location = $11,
		issue_summary = $12,
		notes = $13,
		version = version + 1,
		updated_at = now()
	WHERE id = $1 AND version = $14`

const transitionSQL = `
	UPDATE cases
	SET status = $2, version = version + 1, updated_at = now()
	WHERE id = $1 AND status = $3 AND version = $4`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	metrics    *Metrics
	now        func() time.Time
	random     io.Reader
}

// New creates a case repository implementing the System interface. metrics
// may be nil.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
	metrics *Metrics,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "cases"),
		pagination: pagination,
		metrics:    metrics,
		now:        time.Now,
		random:     rand.Reader,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Case], error) {
	ctx, cancel := repository.Bounded(ctx)
	defer cancel()

	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "CaseNumber", "EmployerName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count cases: %w", repository.Upstream(err))
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	cases, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanCase)
	if err != nil {
		return nil, fmt.Errorf("query cases: %w", repository.Upstream(err))
	}

	result := pagination.NewPageResult(cases, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Case, error) {
	ctx, cancel := repository.Bounded(ctx)
	defer cancel()

	c, err := findCase(ctx, r.db, id, false)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Detail(ctx context.Context, p auth.Principal, id uuid.UUID) (*Detail, error) {
	ctx, cancel := repository.Bounded(ctx)
	defer cancel()

	var (
		c    Case
		list []persons.Person
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := findCase(gctx, r.db, id, false)
		c = found
		return err
	})
	g.Go(func() error {
		found, err := persons.ListByCase(gctx, r.db, id)
		list = found
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &Detail{
		Case:    c,
		Persons: list,
		Actions: workflow.Available(p.Role, c.Status),
	}, nil
}

func (r *repo) Actions(ctx context.Context, p auth.Principal, id uuid.UUID) ([]workflow.Transition, error) {
	c, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return workflow.Available(p.Role, c.Status), nil
}

func (r *repo) Create(ctx context.Context, p auth.Principal, cmd CreateCommand) (*Case, error) {
	if err := auth.Require(p, auth.ActionCaseCreate); err != nil {
		return nil, err
	}

	draft := Case{
		EmployerID:         cmd.EmployerID,
		OfficerID:          cmd.OfficerID,
		Status:             workflow.StatusDraft,
		ActType:            cmd.ActType,
		OffenseType:        strings.TrimSpace(cmd.OffenseType),
		ChargeSection:      cmd.ChargeSection,
		PenaltySection:     cmd.PenaltySection,
		CompoundSection:    cmd.CompoundSection,
		DateOfOffense:      cmd.DateOfOffense,
		InspectionDate:     cmd.InspectionDate,
		InspectionLocation: cmd.InspectionLocation,
		IssueSummary:       cmd.IssueSummary,
		Notes:              cmd.Notes,
	}
	fillSections(&draft, true, true, true)

	var v validation.Collector
	r.check(&v, draft)
	if cmd.Employer != nil {
		v.Check(cmd.EmployerID == nil, "employer_id", "cannot be combined with employer")
		cmd.Employer.Validate(&v, "employer.")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := repository.Bounded(ctx)
	defer cancel()

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Case, error) {
		if cmd.Employer != nil {
			e, err := employers.Insert(ctx, tx, p, *cmd.Employer)
			if err != nil {
				return Case{}, err
			}
			draft.EmployerID = &e.ID
		}

		id, err := r.insert(ctx, tx, p, draft)
		if err != nil {
			return Case{}, err
		}

		created, err := findCase(ctx, tx, id, false)
		if err != nil {
			return Case{}, err
		}

		err = audit.Record(ctx, tx, audit.Entry{
			Table:    "cases",
			RecordID: created.ID,
			Action:   audit.ActionCreate,
			New:      created,
			UserID:   p.UserID,
		})
		return created, err
	})

	if err != nil {
		return nil, mapWriteError(err)
	}

	r.metrics.caseCreated()
	r.logger.Info("case created",
		"id", c.ID,
		"case_number", c.CaseNumber,
		"act", c.ActType,
		"offense", c.OffenseType,
		"by", p.UserID,
	)
	return &c, nil
}

// insert writes draft under a fresh case number, regenerating the number
// when it collides with an existing one. A savepoint keeps the surrounding
// transaction usable after a collision.
func (r *repo) insert(ctx context.Context, tx *sql.Tx, p auth.Principal, draft Case) (uuid.UUID, error) {
	id := uuid.New()

	for attempt := 1; ; attempt++ {
		number, err := NewCaseNumber(r.now(), r.random)
		if err != nil {
			return uuid.Nil, err
		}

		if _, err := tx.ExecContext(ctx, "SAVEPOINT case_number"); err != nil {
			return uuid.Nil, err
		}

		_, err = tx.ExecContext(ctx, insertSQL,
			id,
			number,
			draft.EmployerID,
			draft.OfficerID,
			draft.Status,
			draft.ActType,
			draft.OffenseType,
			draft.ChargeSection,
			draft.PenaltySection,
			draft.CompoundSection,
			draft.DateOfOffense,
			draft.InspectionDate,
			draft.InspectionLocation,
			draft.IssueSummary,
			draft.Notes,
			nullableID(p.UserID),
		)
		if err == nil {
			return id, nil
		}
		if repository.Constraint(err) != caseNumberConstraint || attempt == caseNumberAttempts {
			return uuid.Nil, err
		}

		r.logger.Warn("case number collision", "case_number", number, "attempt", attempt)
		if _, err := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT case_number"); err != nil {
			return uuid.Nil, err
		}
	}
}

func (r *repo) Update(ctx context.Context, p auth.Principal, id uuid.UUID, cmd UpdateCommand) (*Case, error) {
	if err := auth.Require(p, auth.ActionCaseUpdate); err != nil {
		return nil, err
	}

	ctx, cancel := repository.Bounded(ctx)
	defer cancel()

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Case, error) {
		before, err := findCase(ctx, tx, id, true)
		if err != nil {
			return Case{}, err
		}
		if cmd.Version != nil && *cmd.Version != before.Version {
			return Case{}, ErrConflict
		}

		after := merge(before, cmd)

		var v validation.Collector
		r.check(&v, after)
		if err := v.Err(); err != nil {
			return Case{}, err
		}

		err = repository.ExecExpectOne(ctx, tx, updateSQL,
			id,
			after.EmployerID,
			after.OfficerID,
			after.ActType,
			after.OffenseType,
			after.ChargeSection,
			after.PenaltySection,
			after.CompoundSection,
			after.DateOfOffense,
			after.InspectionDate,
			after.InspectionLocation,
			after.IssueSummary,
			after.Notes,
			before.Version,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return Case{}, ErrConflict
		}
		if err != nil {
			return Case{}, err
		}

		updated, err := findCase(ctx, tx, id, false)
		if err != nil {
			return Case{}, err
		}

		err = audit.Record(ctx, tx, audit.Entry{
			Table:    "cases",
			RecordID: id,
			Action:   audit.ActionUpdate,
			Old:      before,
			New:      updated,
			UserID:   p.UserID,
		})
		return updated, err
	})

	if err != nil {
		return nil, mapWriteError(err)
	}

	r.logger.Info("case updated", "id", c.ID, "version", c.Version, "by", p.UserID)
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	if err := auth.Require(p, auth.ActionCaseDelete); err != nil {
		return err
	}

	ctx, cancel := repository.Bounded(ctx)
	defer cancel()

	before, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Case, error) {
		before, err := findCase(ctx, tx, id, true)
		if err != nil {
			return Case{}, err
		}

		if err := repository.ExecExpectOne(ctx, tx, "DELETE FROM cases WHERE id = $1", id); err != nil {
			return Case{}, err
		}

		err = audit.Record(ctx, tx, audit.Entry{
			Table:    "cases",
			RecordID: id,
			Action:   audit.ActionDelete,
			Old:      before,
			UserID:   p.UserID,
		})
		return before, err
	})

	if err != nil {
		return mapWriteError(err)
	}

	r.logger.Info("case deleted", "id", id, "case_number", before.CaseNumber, "by", p.UserID)
	return nil
}

type statusSnapshot struct {
	Status  workflow.Status `json:"status"`
	Version int             `json:"version"`
}

func (r *repo) Transition(ctx context.Context, p auth.Principal, id uuid.UUID, cmd TransitionCommand) (*Case, error) {
	if !cmd.To.Valid() {
		return nil, workflow.ErrInvalidStatus
	}

	ctx, cancel := repository.Bounded(ctx)
	defer cancel()

	current, err := findCase(ctx, r.db, id, false)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if err := workflow.Authorize(p.Role, current.Status, cmd.To); err != nil {
		return nil, err
	}

	if current.Status == workflow.StatusDraft {
		var v validation.Collector
		statutory(&v, current)
		if err := v.Err(); err != nil {
			return nil, err
		}
	}

	if cmd.Version != nil && *cmd.Version != current.Version {
		return nil, ErrConflict
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Case, error) {
		n, err := repository.ExecCount(ctx, tx, transitionSQL, id, cmd.To, current.Status, current.Version)
		if err != nil {
			return Case{}, err
		}
		if n == 0 {
			return Case{}, ErrConflict
		}

		moved, err := findCase(ctx, tx, id, false)
		if err != nil {
			return Case{}, err
		}

		err = audit.Record(ctx, tx, audit.Entry{
			Table:    "cases",
			RecordID: id,
			Action:   audit.ActionUpdate,
			Old:      statusSnapshot{Status: current.Status, Version: current.Version},
			New:      statusSnapshot{Status: moved.Status, Version: moved.Version},
			UserID:   p.UserID,
		})
		return moved, err
	})

	if err != nil {
		return nil, mapWriteError(err)
	}

	r.metrics.transitioned(current.Status, c.Status)
	r.logger.Info("case transitioned",
		"id", id,
		"from", current.Status,
		"to", c.Status,
		"role", p.Role,
		"by", p.UserID,
	)
	return &c, nil
}

func findCase(ctx context.Context, q repository.Querier, id uuid.UUID, lock bool) (Case, error) {
	stmt, args := query.NewBuilder(projection).BuildSingle("ID", id)
	if lock {
		stmt += " FOR UPDATE OF c"
	}
	return repository.QueryOne(ctx, q, stmt, args, scanCase)
}

// check records every invalid field of c.
func (r *repo) check(v *validation.Collector, c Case) {
	if c.ActType == "" {
		v.Add("act_type", "required")
	} else if _, err := laws.ParseAct(string(c.ActType)); err != nil {
		v.Add("act_type", "unknown act")
	}

	statutory(v, c)

	today := civil.Of(r.now())
	if !c.DateOfOffense.IsZero() {
		v.Check(!c.DateOfOffense.After(today), "date_of_offense", "cannot be in the future")
	}
	if !c.InspectionDate.IsZero() {
		v.Check(!c.InspectionDate.After(today), "inspection_date", "cannot be in the future")
	}
}

// statutory records the fields a case needs before it can leave draft.
func statutory(v *validation.Collector, c Case) {
	v.Required("offense_type", c.OffenseType)
	v.Required("charge_section", c.ChargeSection)
	v.Required("penalty_section", c.PenaltySection)
	v.Check(!c.DateOfOffense.IsZero(), "date_of_offense", "required")
}

// fillSections sets the selected section fields of c that are blank from the
// law table entry for c's act and offense.
func fillSections(c *Case, charge, penalty, compound bool) {
	ref, ok := laws.Lookup(c.ActType, c.OffenseType)
	if !ok {
		return
	}
	if charge && strings.TrimSpace(c.ChargeSection) == "" {
		c.ChargeSection = ref.Charge
	}
	if penalty && strings.TrimSpace(c.PenaltySection) == "" {
		c.PenaltySection = ref.Penalty
	}
	if compound && strings.TrimSpace(c.CompoundSection) == "" {
		c.CompoundSection = ref.Compound
	}
}

// merge applies cmd to c. When the act or offense changes, sections the
// command leaves unset are replaced from the law table.
func merge(c Case, cmd UpdateCommand) Case {
	lawChanged := (cmd.ActType != nil && *cmd.ActType != c.ActType) ||
		(cmd.OffenseType != nil && strings.TrimSpace(*cmd.OffenseType) != c.OffenseType)

	if cmd.EmployerID != nil {
		c.EmployerID = nonNil(*cmd.EmployerID)
	}
	if cmd.OfficerID != nil {
		c.OfficerID = nonNil(*cmd.OfficerID)
	}
	if cmd.ActType != nil {
		c.ActType = *cmd.ActType
	}
	if cmd.OffenseType != nil {
		c.OffenseType = strings.TrimSpace(*cmd.OffenseType)
	}
	if cmd.ChargeSection != nil {
		c.ChargeSection = *cmd.ChargeSection
	}
	if cmd.PenaltySection != nil {
		c.PenaltySection = *cmd.PenaltySection
	}
	if cmd.CompoundSection != nil {
		c.CompoundSection = *cmd.CompoundSection
	}
	if cmd.DateOfOffense != nil {
		c.DateOfOffense = *cmd.DateOfOffense
	}
	if cmd.InspectionDate != nil {
		c.InspectionDate = *cmd.InspectionDate
	}
	if cmd.InspectionLocation != nil {
		c.InspectionLocation = *cmd.InspectionLocation
	}
	if cmd.IssueSummary != nil {
		c.IssueSummary = *cmd.IssueSummary
	}
	if cmd.Notes != nil {
		c.Notes = *cmd.Notes
	}

	if lawChanged {
		if cmd.ChargeSection == nil {
			c.ChargeSection = ""
		}
		if cmd.PenaltySection == nil {
			c.PenaltySection = ""
		}
		if cmd.CompoundSection == nil {
			c.CompoundSection = ""
		}
		fillSections(&c, cmd.ChargeSection == nil, cmd.PenaltySection == nil, cmd.CompoundSection == nil)
	}

	return c
}

func nonNil(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func nullableID(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id
}

// mapWriteError translates failures from a write transaction. Domain
// errors raised inside the transaction pass through unchanged.
func mapWriteError(err error) error {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, validation.ErrInvalid),
		errors.Is(err, workflow.ErrTransitionIllegal),
		errors.Is(err, auth.ErrForbidden):
		return err
	}

	constraint := repository.Constraint(err)
	switch {
	case constraint == registrationConstraint:
		return employers.ErrDuplicate
	case repository.IsForeignKeyViolation(err) && strings.HasPrefix(constraint, "cases_"):
		field := strings.TrimSuffix(strings.TrimPrefix(constraint, "cases_"), "_fkey")
		return validation.Invalid(field, "does not exist")
	}

	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}
