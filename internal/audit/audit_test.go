package audit_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/JaimeStill/pendakwaan/internal/audit"
	"github.com/JaimeStill/pendakwaan/internal/auth"
	"github.com/JaimeStill/pendakwaan/pkg/pagination"
	"github.com/JaimeStill/pendakwaan/pkg/routes"
)

var pageCfg = pagination.Config{DefaultPageSize: 25, MaxPageSize: 100}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	record := uuid.New()
	user := uuid.New()

	mock.ExpectExec("INSERT INTO audit_trail").
		WithArgs(sqlmock.AnyArg(), "cases", record, "update", `{"status":"draft"}`, `{"status":"in-investigation"}`, user).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = audit.Record(context.Background(), db, audit.Entry{
		Table:    "cases",
		RecordID: record,
		Action:   audit.ActionUpdate,
		Old:      map[string]string{"status": "draft"},
		New:      map[string]string{"status": "in-investigation"},
		UserID:   user,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestRecordNilSnapshotAndUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	record := uuid.New()
	mock.ExpectExec("INSERT INTO audit_trail").
		WithArgs(sqlmock.AnyArg(), "employers", record, "create", nil, `{"name":"Syarikat Maju"}`, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = audit.Record(context.Background(), db, audit.Entry{
		Table:    "employers",
		RecordID: record,
		Action:   audit.ActionCreate,
		New:      map[string]string{"name": "Syarikat Maju"},
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestListRequiresPermission(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	sys := audit.New(db, discard(), pageCfg)
	_, err = sys.List(context.Background(), auth.Principal{Role: auth.RoleIO}, pagination.PageRequest{}, audit.Filters{})
	if !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no query should run: %v", err)
	}
}

func TestList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	record := uuid.New()
	table := "cases"

	mock.ExpectQuery("SELECT COUNT").WithArgs(table).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT a.id").WithArgs(table).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "table_name", "record_id", "action", "old_data", "new_data", "user_id", "created_at",
		}).AddRow("01J9Z8", "cases", record.String(), "delete", []byte(`{"case_number":"KES/2026/ABC123"}`), nil, nil, time.Now()))

	sys := audit.New(db, discard(), pageCfg)
	result, err := sys.List(
		context.Background(),
		auth.Principal{Role: auth.RoleUIP},
		pagination.PageRequest{},
		audit.Filters{TableName: &table},
	)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.Total != 1 || len(result.Data) != 1 {
		t.Fatalf("result = %+v", result)
	}
	row := result.Data[0]
	if row.Action != audit.ActionDelete || row.NewData != nil || row.UserID != nil {
		t.Errorf("row = %+v", row)
	}
	if string(row.OldData) != `{"case_number":"KES/2026/ABC123"}` {
		t.Errorf("old data = %s", row.OldData)
	}
}

type mockSystem struct {
	listFn func(ctx context.Context, p auth.Principal, page pagination.PageRequest, f audit.Filters) (*pagination.PageResult[audit.Trail], error)
}

func (m *mockSystem) Handler() *audit.Handler {
	return audit.NewHandler(m, discard(), pageCfg)
}

func (m *mockSystem) List(ctx context.Context, p auth.Principal, page pagination.PageRequest, f audit.Filters) (*pagination.PageResult[audit.Trail], error) {
	return m.listFn(ctx, p, page, f)
}

func TestHandlerList(t *testing.T) {
	var captured audit.Filters
	sys := &mockSystem{
		listFn: func(_ context.Context, p auth.Principal, _ pagination.PageRequest, f audit.Filters) (*pagination.PageResult[audit.Trail], error) {
			if err := auth.Require(p, auth.ActionAuditRead); err != nil {
				return nil, err
			}
			captured = f
			result := pagination.NewPageResult([]audit.Trail{}, 0, 1, 25)
			return &result, nil
		},
	}

	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())

	tests := []struct {
		name   string
		role   *auth.Role
		query  string
		status int
	}{
		{"unauthenticated", nil, "", http.StatusUnauthorized},
		{"forbidden role", roleRef(auth.RolePO), "", http.StatusForbidden},
		{"bad action filter", roleRef(auth.RoleAdmin), "?action=purge", http.StatusBadRequest},
		{"bad record id", roleRef(auth.RoleAdmin), "?record_id=nope", http.StatusBadRequest},
		{"admin", roleRef(auth.RoleAdmin), "?table=cases&action=delete", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/audit"+tt.query, nil)
			if tt.role != nil {
				req = req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{Role: *tt.role}))
			}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}

	if captured.TableName == nil || *captured.TableName != "cases" {
		t.Errorf("table filter = %v", captured.TableName)
	}
	if captured.Action == nil || *captured.Action != audit.ActionDelete {
		t.Errorf("action filter = %v", captured.Action)
	}
}

func roleRef(r auth.Role) *auth.Role { return &r }
