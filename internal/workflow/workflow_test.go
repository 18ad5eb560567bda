package workflow_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/JaimeStill/pendakwaan/internal/auth"
	"github.com/JaimeStill/pendakwaan/internal/workflow"
	"github.com/JaimeStill/pendakwaan/pkg/routes"
)

func TestAuthorizeRejectsEveryPairOutsideTable(t *testing.T) {
	for _, from := range workflow.Statuses() {
		for _, to := range workflow.Statuses() {
			if _, ok := workflow.Find(from, to); ok {
				continue
			}
			for _, role := range auth.Roles() {
				err := workflow.Authorize(role, from, to)
				if !errors.Is(err, workflow.ErrTransitionIllegal) {
					t.Errorf("Authorize(%s, %s, %s) = %v, want ErrTransitionIllegal", role, from, to, err)
				}
			}
		}
	}
}

func TestAuthorizeRejectsRolesOutsideEdge(t *testing.T) {
	for _, tr := range workflow.Transitions() {
		for _, role := range auth.Roles() {
			err := workflow.Authorize(role, tr.From, tr.To)
			allowed := slices.Contains(tr.Roles, role)

			if allowed && err != nil {
				t.Errorf("Authorize(%s, %s, %s) = %v, want nil", role, tr.From, tr.To, err)
			}
			if !allowed && !errors.Is(err, auth.ErrForbidden) {
				t.Errorf("Authorize(%s, %s, %s) = %v, want ErrForbidden", role, tr.From, tr.To, err)
			}
		}
	}
}

func TestAuthorizeScenarios(t *testing.T) {
	tests := []struct {
		name string
		role auth.Role
		from workflow.Status
		to   workflow.Status
		want error
	}{
		{"skip to pending sanction", auth.RoleAdmin, workflow.StatusDraft, workflow.StatusPendingSanction, workflow.ErrTransitionIllegal},
		{"io starts investigation", auth.RoleIO, workflow.StatusDraft, workflow.StatusInInvestigation, nil},
		{"viewer cannot start", auth.RoleViewer, workflow.StatusDraft, workflow.StatusInInvestigation, auth.ErrForbidden},
		{"uip approves sanction", auth.RoleUIP, workflow.StatusPendingSanction, workflow.StatusSanctionApproved, nil},
		{"po cannot approve sanction", auth.RolePO, workflow.StatusPendingSanction, workflow.StatusSanctionApproved, auth.ErrForbidden},
		{"po compounds", auth.RolePO, workflow.StatusSanctionApproved, workflow.StatusCompounded, nil},
		{"admin closes charged", auth.RoleAdmin, workflow.StatusCharged, workflow.StatusClosed, nil},
		{"nfa from draft illegal", auth.RoleAdmin, workflow.StatusDraft, workflow.StatusNFA, workflow.ErrTransitionIllegal},
		{"reopen closed illegal", auth.RoleAdmin, workflow.StatusClosed, workflow.StatusInInvestigation, workflow.ErrTransitionIllegal},
		{"self loop illegal", auth.RoleIO, workflow.StatusDraft, workflow.StatusDraft, workflow.ErrTransitionIllegal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := workflow.Authorize(tt.role, tt.from, tt.to)
			if tt.want == nil {
				if err != nil {
					t.Errorf("err = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTransitionErrorNamesEdge(t *testing.T) {
	err := workflow.Authorize(auth.RoleIO, workflow.StatusDraft, workflow.StatusCharged)

	var te *workflow.TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("err = %T, want *TransitionError", err)
	}
	if te.From != workflow.StatusDraft || te.To != workflow.StatusCharged {
		t.Errorf("edge = %s -> %s", te.From, te.To)
	}
}

func TestForbiddenDoesNotLeakRoles(t *testing.T) {
	err := workflow.Authorize(auth.RoleViewer, workflow.StatusPendingSanction, workflow.StatusSanctionApproved)
	if err.Error() != auth.ErrForbidden.Error() {
		t.Errorf("forbidden message = %q", err.Error())
	}
}

func TestAvailable(t *testing.T) {
	tests := []struct {
		name string
		role auth.Role
		from workflow.Status
		want []workflow.Status
	}{
		{"io from draft", auth.RoleIO, workflow.StatusDraft, []workflow.Status{workflow.StatusInInvestigation}},
		{"po from draft", auth.RolePO, workflow.StatusDraft, nil},
		{"po from pending review", auth.RolePO, workflow.StatusPendingReview, []workflow.Status{
			workflow.StatusInInvestigation, workflow.StatusPendingSanction, workflow.StatusNFA,
		}},
		{"admin from compounded", auth.RoleAdmin, workflow.StatusCompounded, []workflow.Status{
			workflow.StatusCharged, workflow.StatusClosed,
		}},
		{"viewer anywhere", auth.RoleViewer, workflow.StatusPendingReview, nil},
		{"terminal", auth.RoleAdmin, workflow.StatusNFA, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := workflow.Available(tt.role, tt.from)
			targets := make([]workflow.Status, 0, len(got))
			for _, tr := range got {
				targets = append(targets, tr.To)
			}
			if len(targets) != len(tt.want) || (len(tt.want) > 0 && !slices.Equal(targets, tt.want)) {
				t.Errorf("Available() = %v, want %v", targets, tt.want)
			}
		})
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	for _, s := range workflow.Statuses() {
		exits := workflow.Available(auth.RoleAdmin, s)
		if s.Terminal() && len(exits) > 0 {
			t.Errorf("terminal %s has exits %v", s, exits)
		}
		if !s.Terminal() && len(exits) == 0 {
			t.Errorf("non-terminal %s has no exits", s)
		}
	}
}

func TestEveryEdgeAllowsAdmin(t *testing.T) {
	for _, tr := range workflow.Transitions() {
		if !tr.Allows(auth.RoleAdmin) || tr.Roles[0] != auth.RoleAdmin {
			t.Errorf("%s -> %s does not list admin", tr.From, tr.To)
		}
	}
}

func TestStatusUnmarshal(t *testing.T) {
	var v struct {
		Status workflow.Status `json:"status"`
	}
	if err := json.Unmarshal([]byte(`{"status":"pending-review"}`), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v.Status != workflow.StatusPendingReview {
		t.Errorf("status = %s", v.Status)
	}
	if err := json.Unmarshal([]byte(`{"status":"archived"}`), &v); !errors.Is(err, workflow.ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}
	if err := json.Unmarshal([]byte(`{"status":""}`), &v); err != nil || v.Status != "" {
		t.Errorf("empty status = %q, err = %v", v.Status, err)
	}
}

func TestHandler(t *testing.T) {
	h := workflow.NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())

	tests := []struct {
		name      string
		path      string
		status    int
		wantCount int
	}{
		{"statuses", "/workflow/statuses", http.StatusOK, 9},
		{"transitions", "/workflow/transitions", http.StatusOK, len(workflow.Transitions())},
		{"transitions from compounded", "/workflow/transitions?from=compounded", http.StatusOK, 2},
		{"transitions bad from", "/workflow/transitions?from=x", http.StatusBadRequest, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.wantCount < 0 {
				return
			}
			var items []json.RawMessage
			if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(items) != tt.wantCount {
				t.Errorf("count = %d, want %d", len(items), tt.wantCount)
			}
		})
	}
}
