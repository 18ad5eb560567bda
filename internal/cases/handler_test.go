package cases_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/pendakwaan/internal/auth"
	"github.com/JaimeStill/pendakwaan/internal/cases"
	"github.com/JaimeStill/pendakwaan/internal/laws"
	"github.com/JaimeStill/pendakwaan/internal/workflow"
	"github.com/JaimeStill/pendakwaan/pkg/handlers"
	"github.com/JaimeStill/pendakwaan/pkg/pagination"
	"github.com/JaimeStill/pendakwaan/pkg/routes"
)

type mockSystem struct {
	cases.System
	listFn       func(ctx context.Context, page pagination.PageRequest, f cases.Filters) (*pagination.PageResult[cases.Case], error)
	updateFn     func(ctx context.Context, p auth.Principal, id uuid.UUID, cmd cases.UpdateCommand) (*cases.Case, error)
	deleteFn     func(ctx context.Context, p auth.Principal, id uuid.UUID) error
	transitionFn func(ctx context.Context, p auth.Principal, id uuid.UUID, cmd cases.TransitionCommand) (*cases.Case, error)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, f cases.Filters) (*pagination.PageResult[cases.Case], error) {
	return m.listFn(ctx, page, f)
}

func (m *mockSystem) Update(ctx context.Context, p auth.Principal, id uuid.UUID, cmd cases.UpdateCommand) (*cases.Case, error) {
	return m.updateFn(ctx, p, id, cmd)
}

func (m *mockSystem) Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	return m.deleteFn(ctx, p, id)
}

func (m *mockSystem) Transition(ctx context.Context, p auth.Principal, id uuid.UUID, cmd cases.TransitionCommand) (*cases.Case, error) {
	return m.transitionFn(ctx, p, id, cmd)
}

func serve(sys cases.System, req *http.Request, p *auth.Principal) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	routes.Register(mux, cases.NewHandler(sys, discard(), pageCfg).Routes())

	if p != nil {
		req = req.WithContext(auth.WithPrincipal(req.Context(), *p))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandlerUpdate(t *testing.T) {
	id := uuid.New()

	var got cases.UpdateCommand
	sys := &mockSystem{
		updateFn: func(_ context.Context, _ auth.Principal, _ uuid.UUID, cmd cases.UpdateCommand) (*cases.Case, error) {
			got = cmd
			if cmd.Version != nil && *cmd.Version != 3 {
				return nil, cases.ErrConflict
			}
			return &cases.Case{ID: id, Status: workflow.StatusDraft, Version: 4}, nil
		},
	}

	tests := []struct {
		name     string
		body     string
		ifMatch  string
		status   int
		version  int
		wantETag string
	}{
		{"version from if-match", `{"notes":"ok"}`, `"3"`, http.StatusOK, 3, `"4"`},
		{"weak if-match", `{"notes":"ok"}`, `W/"3"`, http.StatusOK, 3, `"4"`},
		{"body version wins", `{"notes":"ok","version":3}`, `"9"`, http.StatusOK, 3, `"4"`},
		{"stale if-match", `{"notes":"ok"}`, `"2"`, http.StatusConflict, 2, ""},
		{"malformed if-match", `{"notes":"ok"}`, `"abc"`, http.StatusBadRequest, 0, ""},
		{"status is not updatable", `{"status":"closed"}`, "", http.StatusBadRequest, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = cases.UpdateCommand{}
			req := httptest.NewRequest("PATCH", "/cases/"+id.String(), strings.NewReader(tt.body))
			if tt.ifMatch != "" {
				req.Header.Set("If-Match", tt.ifMatch)
			}

			rec := serve(sys, req, &io1)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
			if tt.version != 0 && (got.Version == nil || *got.Version != tt.version) {
				t.Errorf("version = %v, want %d", got.Version, tt.version)
			}
			if etag := rec.Header().Get("ETag"); etag != tt.wantETag {
				t.Errorf("ETag = %q, want %q", etag, tt.wantETag)
			}
		})
	}
}

func TestHandlerTransition(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"moved", nil, http.StatusOK},
		{"illegal edge", &workflow.TransitionError{From: workflow.StatusDraft, To: workflow.StatusClosed}, http.StatusUnprocessableEntity},
		{"role not allowed", auth.ErrForbidden, http.StatusForbidden},
		{"lost race", cases.ErrConflict, http.StatusConflict},
		{"missing case", cases.ErrNotFound, http.StatusNotFound},
		{"unknown status", workflow.ErrInvalidStatus, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{
				transitionFn: func(_ context.Context, _ auth.Principal, _ uuid.UUID, cmd cases.TransitionCommand) (*cases.Case, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &cases.Case{
						ID:             id,
						CaseNumber:     "KES/2026/AB12CD",
						Status:         cmd.To,
						ActType:        laws.Akta4,
						OffenseType:    "failure-to-register",
						ChargeSection:  "Seksyen 5",
						PenaltySection: "Seksyen 94",
						Version:        2,
					}, nil
				},
			}

			req := httptest.NewRequest("POST", "/cases/"+id.String()+"/transition",
				strings.NewReader(`{"to":"in-investigation"}`))
			rec := serve(sys, req, &io1)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
			if tt.err == nil {
				var c cases.Case
				if err := json.Unmarshal(rec.Body.Bytes(), &c); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if c.Status != workflow.StatusInInvestigation {
					t.Errorf("status = %s", c.Status)
				}
			}
		})
	}
}

func TestCaseJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		c    cases.Case
	}{
		{"zero value", cases.Case{}},
		{"populated", cases.Case{
			ID:         uuid.New(),
			CaseNumber: "KES/2026/ZZ0099",
			Status:     workflow.StatusCharged,
			ActType:    laws.Both,
			Version:    7,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.c)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			var got cases.Case
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("Unmarshal %s: %v", data, err)
			}
			if got.ID != tt.c.ID || got.Status != tt.c.Status || got.ActType != tt.c.ActType || got.Version != tt.c.Version {
				t.Errorf("round trip = %+v, want %+v", got, tt.c)
			}
		})
	}
}

func TestHandlerList(t *testing.T) {
	var got cases.Filters
	sys := &mockSystem{
		listFn: func(_ context.Context, page pagination.PageRequest, f cases.Filters) (*pagination.PageResult[cases.Case], error) {
			got = f
			result := pagination.NewPageResult([]cases.Case{}, 0, page.Page, page.PageSize)
			return &result, nil
		},
	}

	t.Run("filters", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/cases?status=charged&act=akta800&offense_from=2025-01-01", nil)
		rec := serve(sys, req, &po1)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body)
		}
		if got.Status == nil || *got.Status != workflow.StatusCharged {
			t.Errorf("status filter = %v", got.Status)
		}
		if got.OffenseFrom == nil || got.OffenseFrom.String() != "2025-01-01" {
			t.Errorf("offense_from = %v", got.OffenseFrom)
		}
	})

	t.Run("bad filters", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/cases?status=archived&officer_id=nope", nil)
		rec := serve(sys, req, &po1)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		var body handlers.ErrorBody
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Fields["status"] == "" || body.Fields["officer_id"] == "" {
			t.Errorf("fields = %v", body.Fields)
		}
	})
}

func TestHandlerDelete(t *testing.T) {
	id := uuid.New()
	sys := &mockSystem{
		deleteFn: func(_ context.Context, p auth.Principal, _ uuid.UUID) error {
			return auth.Require(p, auth.ActionCaseDelete)
		},
	}

	tests := []struct {
		name   string
		path   string
		p      *auth.Principal
		status int
	}{
		{"deleted", "/cases/" + id.String(), &io1, http.StatusNoContent},
		{"forbidden", "/cases/" + id.String(), &po1, http.StatusForbidden},
		{"unauthenticated", "/cases/" + id.String(), nil, http.StatusUnauthorized},
		{"bad id", "/cases/not-a-uuid", &io1, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(sys, httptest.NewRequest("DELETE", tt.path, nil), tt.p)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}
