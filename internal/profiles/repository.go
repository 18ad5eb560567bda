package profiles

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
	"github.com/JaimeStill/pendakwaan/pkg/pagination"
	"github.com/JaimeStill/pendakwaan/pkg/query"
	"github.com/JaimeStill/pendakwaan/pkg/repository"
	"github.com/JaimeStill/pendakwaan/pkg/validation"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	admins     map[string]struct{}
}

// New creates a profile repository implementing the System interface.
// Profiles created for an email in adminEmails start with the admin role.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
	adminEmails []string,
) System {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}

	return &repo{
		db:         db,
		logger:     logger.With("system", "profiles"),
		pagination: pagination,
		admins:     admins,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

// Resolve loads the profile for c.Subject, creating it on first sign-in and
// refreshing its email when the provider reports a new one. When the profile
// cannot be created the caller proceeds as an unsaved viewer.
func (r *repo) Resolve(ctx context.Context, c auth.Claims) (auth.Principal, error) {
	ctx, cancel := repository.Bounded(ctx)
	defer cancel()

	q, args := query.NewBuilder(projection).BuildSingle("Subject", c.Subject)
	existing, err := repository.QueryOne(ctx, r.db, q, args, scanProfile)
	if err == nil {
		if c.Email != "" && c.Email != existing.Email {
			return r.refreshEmail(ctx, existing, c.Email), nil
		}
		return existing.Principal(), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return auth.Principal{}, fmt.Errorf("load profile: %w", repository.Upstream(err))
	}

	role := auth.RoleViewer
	if _, ok := r.admins[strings.ToLower(c.Email)]; ok {
		role = auth.RoleAdmin
	}

	insert := `
		INSERT INTO profiles(id, subject, email, full_name, role, department)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (subject) DO UPDATE SET updated_at = profiles.updated_at
		RETURNING ` + returning

	created, err := repository.QueryOne(ctx, r.db, insert,
		[]any{uuid.New(), c.Subject, c.Email, c.Name, role, c.Department},
		scanProfile,
	)
	if err != nil {
		r.logger.Warn("profile creation failed, using fallback principal",
			"subject", c.Subject,
			"error", err,
		)
		return auth.Principal{
			UserID:     uuid.Nil,
			Subject:    c.Subject,
			Email:      c.Email,
			Name:       c.Name,
			Role:       auth.RoleViewer,
			Department: c.Department,
		}, nil
	}

	r.logger.Info("profile created", "id", created.ID, "role", created.Role)
	return created.Principal(), nil
}

// refreshEmail stores email on p. A failed write keeps the stored profile.
func (r *repo) refreshEmail(ctx context.Context, p Profile, email string) auth.Principal {
	q := `
		UPDATE profiles SET email = $2, updated_at = now()
		WHERE subject = $1
		RETURNING ` + returning

	updated, err := repository.QueryOne(ctx, r.db, q, []any{p.Subject, email}, scanProfile)
	if err != nil {
		r.logger.Warn("profile email refresh failed", "id", p.ID, "error", err)
		return p.Principal()
	}

	r.logger.Info("profile email refreshed", "id", updated.ID)
	return updated.Principal()
}

func (r *repo) Me(ctx context.Context, p auth.Principal) (*Profile, error) {
	if p.UserID == uuid.Nil {
		return &Profile{
			Subject:    p.Subject,
			Email:      p.Email,
			FullName:   p.Name,
			Role:       p.Role,
			Department: p.Department,
		}, nil
	}
	return r.find(ctx, p.UserID)
}

func (r *repo) List(
	ctx context.Context,
	p auth.Principal,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Profile], error) {
	if err := auth.Require(p, auth.ActionProfileManage); err != nil {
		return nil, err
	}

	ctx, cancel := repository.Bounded(ctx)
	defer cancel()

	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "FullName", "Email")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count profiles: %w", repository.Upstream(err))
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	profiles, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanProfile)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", repository.Upstream(err))
	}

	result := pagination.NewPageResult(profiles, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, p auth.Principal, id uuid.UUID) (*Profile, error) {
	if err := auth.Require(p, auth.ActionProfileManage); err != nil {
		return nil, err
	}
	return r.find(ctx, id)
}

func (r *repo) find(ctx context.Context, id uuid.UUID) (*Profile, error) {
	ctx, cancel := repository.Bounded(ctx)
	defer cancel()

	q, args := query.NewBuilder(projection).BuildSingle("ID", id)
	profile, err := repository.QueryOne(ctx, r.db, q, args, scanProfile)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &profile, nil
}

func (r *repo) Update(ctx context.Context, p auth.Principal, id uuid.UUID, cmd UpdateCommand) (*Profile, error) {
	if err := auth.Require(p, auth.ActionProfileManage); err != nil {
		return nil, err
	}

	var v validation.Collector
	if cmd.FullName != nil {
		v.Required("full_name", *cmd.FullName)
	}
	if cmd.Role != nil {
		v.Check(cmd.Role.Valid(), "role", "unknown role")
		v.Check(id != p.UserID || *cmd.Role == p.Role, "role", "cannot change own role")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := repository.Bounded(ctx)
	defer cancel()

	selectSQL, selectArgs := query.NewBuilder(projection).BuildSingle("ID", id)
	selectSQL += " FOR UPDATE"

	update := `
		UPDATE profiles
		SET full_name = COALESCE($2, full_name),
			role = COALESCE($3, role),
			department = COALESCE($4, department),
			phone = COALESCE($5, phone),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + returning

	updated, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Profile, error) {
		before, err := repository.QueryOne(ctx, tx, selectSQL, selectArgs, scanProfile)
		if err != nil {
			return Profile{}, err
		}

		after, err := repository.QueryOne(ctx, tx, update,
			[]any{id, cmd.FullName, cmd.Role, cmd.Department, cmd.Phone},
			scanProfile,
		)
		if err != nil {
			return Profile{}, err
		}

		err = audit.Record(ctx, tx, audit.Entry{
			Table:    "profiles",
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

	r.logger.Info("profile updated", "id", updated.ID, "role", updated.Role, "by", p.UserID)
	return &updated, nil
}
