package profiles_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/JaimeStill/pendakwaan/internal/auth"
	"github.com/JaimeStill/pendakwaan/internal/profiles"
	"github.com/JaimeStill/pendakwaan/pkg/pagination"
	"github.com/JaimeStill/pendakwaan/pkg/routes"
	"github.com/JaimeStill/pendakwaan/pkg/validation"
)

var (
	pageCfg = pagination.Config{DefaultPageSize: 25, MaxPageSize: 100}
	columns = []string{"id", "subject", "email", "full_name", "role", "department", "phone", "created_at", "updated_at"}
	claims  = auth.Claims{
		Subject:    "user-123",
		Email:      "Aminah@perkeso.gov.my",
		Name:       "Aminah binti Yusof",
		Department: "Penguatkuasaan",
	}
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSystem(t *testing.T) (profiles.System, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return profiles.New(db, discard(), pageCfg, []string{"aminah@perkeso.gov.my"}), mock
}

func profileRow(id uuid.UUID, role auth.Role) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(columns).
		AddRow(id.String(), claims.Subject, claims.Email, claims.Name, string(role), claims.Department, "", now, now)
}

func TestResolveExisting(t *testing.T) {
	sys, mock := newSystem(t)
	id := uuid.New()

	mock.ExpectQuery(`FROM public.profiles p WHERE p.subject = \$1`).
		WithArgs(claims.Subject).
		WillReturnRows(profileRow(id, auth.RoleIO))

	p, err := sys.Resolve(context.Background(), claims)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.UserID != id || p.Role != auth.RoleIO {
		t.Errorf("principal = %+v", p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestResolveRefreshesEmail(t *testing.T) {
	changed := claims
	changed.Email = "aminah.yusof@perkeso.gov.my"

	t.Run("updated", func(t *testing.T) {
		sys, mock := newSystem(t)
		id := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`FROM public.profiles p WHERE p.subject = \$1`).
			WithArgs(claims.Subject).
			WillReturnRows(profileRow(id, auth.RoleIO))
		mock.ExpectQuery(`UPDATE profiles SET email = \$2`).
			WithArgs(claims.Subject, changed.Email).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(id.String(), claims.Subject, changed.Email, claims.Name, string(auth.RoleIO), claims.Department, "", now, now))

		p, err := sys.Resolve(context.Background(), changed)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if p.Email != changed.Email || p.Role != auth.RoleIO || p.UserID != id {
			t.Errorf("principal = %+v", p)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("write fails", func(t *testing.T) {
		sys, mock := newSystem(t)
		id := uuid.New()

		mock.ExpectQuery(`FROM public.profiles p WHERE p.subject = \$1`).
			WithArgs(claims.Subject).
			WillReturnRows(profileRow(id, auth.RoleIO))
		mock.ExpectQuery(`UPDATE profiles SET email = \$2`).
			WithArgs(claims.Subject, changed.Email).
			WillReturnError(errors.New("connection reset"))

		p, err := sys.Resolve(context.Background(), changed)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if p.UserID != id || p.Role != auth.RoleIO || p.Email != claims.Email {
			t.Errorf("principal = %+v, want stored profile", p)
		}
	})
}

func TestResolveCreatesProfile(t *testing.T) {
	sys, mock := newSystem(t)
	id := uuid.New()

	mock.ExpectQuery(`FROM public.profiles p WHERE p.subject`).
		WithArgs(claims.Subject).
		WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectQuery("INSERT INTO profiles").
		WithArgs(sqlmock.AnyArg(), claims.Subject, claims.Email, claims.Name, "admin", claims.Department).
		WillReturnRows(profileRow(id, auth.RoleAdmin))

	p, err := sys.Resolve(context.Background(), claims)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.UserID != id || p.Role != auth.RoleAdmin {
		t.Errorf("principal = %+v", p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestResolveFallsBackWhenWriteFails(t *testing.T) {
	sys, mock := newSystem(t)
	other := claims
	other.Email = "pegawai@perkeso.gov.my"

	mock.ExpectQuery(`FROM public.profiles p WHERE p.subject`).
		WithArgs(other.Subject).
		WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectQuery("INSERT INTO profiles").
		WithArgs(sqlmock.AnyArg(), other.Subject, other.Email, other.Name, "viewer", other.Department).
		WillReturnError(errors.New("read-only transaction"))

	p, err := sys.Resolve(context.Background(), other)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.UserID != uuid.Nil || p.Role != auth.RoleViewer || p.Email != other.Email {
		t.Errorf("fallback principal = %+v", p)
	}

	me, err := sys.Me(context.Background(), p)
	if err != nil || me.Role != auth.RoleViewer || me.ID != uuid.Nil {
		t.Errorf("Me = %+v, %v", me, err)
	}
}

func TestResolveLoadFailure(t *testing.T) {
	sys, mock := newSystem(t)

	mock.ExpectQuery(`FROM public.profiles p WHERE p.subject`).
		WillReturnError(errors.New("connection refused"))

	if _, err := sys.Resolve(context.Background(), claims); err == nil {
		t.Fatal("expected error")
	}
}

func TestUpdate(t *testing.T) {
	admin := auth.Principal{UserID: uuid.New(), Role: auth.RoleAdmin}
	target := uuid.New()
	po := auth.RolePO
	self := auth.RoleIO

	t.Run("forbidden for non-admin", func(t *testing.T) {
		sys, _ := newSystem(t)
		_, err := sys.Update(context.Background(), auth.Principal{Role: auth.RoleIO}, target, profiles.UpdateCommand{Role: &po})
		if !errors.Is(err, auth.ErrForbidden) {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		sys, _ := newSystem(t)
		bogus := auth.Role("superuser")
		_, err := sys.Update(context.Background(), admin, target, profiles.UpdateCommand{Role: &bogus})
		if !errors.Is(err, validation.ErrInvalid) {
			t.Errorf("err = %v, want ErrInvalid", err)
		}
	})

	t.Run("own role", func(t *testing.T) {
		sys, _ := newSystem(t)
		_, err := sys.Update(context.Background(), admin, admin.UserID, profiles.UpdateCommand{Role: &self})
		if !errors.Is(err, validation.ErrInvalid) {
			t.Errorf("err = %v, want ErrInvalid", err)
		}
	})

	t.Run("promotes and audits", func(t *testing.T) {
		sys, mock := newSystem(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`WHERE p.id = \$1 FOR UPDATE`).
			WithArgs(target).
			WillReturnRows(profileRow(target, auth.RoleViewer))
		mock.ExpectQuery("UPDATE profiles").
			WithArgs(target, nil, "po", nil, nil).
			WillReturnRows(profileRow(target, auth.RolePO))
		mock.ExpectExec("INSERT INTO audit_trail").
			WithArgs(sqlmock.AnyArg(), "profiles", target, "update", sqlmock.AnyArg(), sqlmock.AnyArg(), admin.UserID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		got, err := sys.Update(context.Background(), admin, target, profiles.UpdateCommand{Role: &po})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if got.Role != auth.RolePO {
			t.Errorf("role = %s", got.Role)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		sys, mock := newSystem(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`FOR UPDATE`).WithArgs(target).WillReturnRows(sqlmock.NewRows(columns))
		mock.ExpectRollback()

		_, err := sys.Update(context.Background(), admin, target, profiles.UpdateCommand{Role: &po})
		if !errors.Is(err, profiles.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestListForbidden(t *testing.T) {
	sys, _ := newSystem(t)
	_, err := sys.List(context.Background(), auth.Principal{Role: auth.RoleUIP}, pagination.PageRequest{}, profiles.Filters{})
	if !errors.Is(err, auth.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

type mockSystem struct {
	profiles.System
	meFn     func(ctx context.Context, p auth.Principal) (*profiles.Profile, error)
	updateFn func(ctx context.Context, p auth.Principal, id uuid.UUID, cmd profiles.UpdateCommand) (*profiles.Profile, error)
}

func (m *mockSystem) Me(ctx context.Context, p auth.Principal) (*profiles.Profile, error) {
	return m.meFn(ctx, p)
}

func (m *mockSystem) Update(ctx context.Context, p auth.Principal, id uuid.UUID, cmd profiles.UpdateCommand) (*profiles.Profile, error) {
	return m.updateFn(ctx, p, id, cmd)
}

func TestHandler(t *testing.T) {
	sys := &mockSystem{
		meFn: func(_ context.Context, p auth.Principal) (*profiles.Profile, error) {
			return &profiles.Profile{ID: p.UserID, Role: p.Role}, nil
		},
		updateFn: func(_ context.Context, p auth.Principal, id uuid.UUID, cmd profiles.UpdateCommand) (*profiles.Profile, error) {
			if err := auth.Require(p, auth.ActionProfileManage); err != nil {
				return nil, err
			}
			return &profiles.Profile{ID: id, Role: *cmd.Role}, nil
		},
	}

	mux := http.NewServeMux()
	routes.Register(mux, profiles.NewHandler(sys, discard(), pageCfg).Routes())

	target := uuid.New().String()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		role   auth.Role
		status int
	}{
		{"me", "GET", "/profiles/me", "", auth.RoleViewer, http.StatusOK},
		{"find bad id", "GET", "/profiles/not-a-uuid", "", auth.RoleAdmin, http.StatusBadRequest},
		{"update", "PATCH", "/profiles/" + target, `{"role":"uip"}`, auth.RoleAdmin, http.StatusOK},
		{"update forbidden", "PATCH", "/profiles/" + target, `{"role":"uip"}`, auth.RolePO, http.StatusForbidden},
		{"update unknown field", "PATCH", "/profiles/" + target, `{"rank":"uip"}`, auth.RoleAdmin, http.StatusBadRequest},
		{"update empty body", "PATCH", "/profiles/" + target, "", auth.RoleAdmin, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req = req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{UserID: uuid.New(), Role: tt.role}))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
		})
	}
}
