package workflow

import (
	"slices"

	"github.com/JaimeStill/pendakwaan/internal/auth"
)

// Transition is one legal edge of the workflow. RoleAdmin is implicitly
// allowed on every edge and is not listed in Roles.
type Transition struct {
	From  Status      `json:"from"`
	To    Status      `json:"to"`
	Label string      `json:"label"`
	Roles []auth.Role `json:"roles"`
}

var (
	byIO  = []auth.Role{auth.RoleIO}
	byPO  = []auth.Role{auth.RolePO}
	byUIP = []auth.Role{auth.RoleUIP}
)

var table = []Transition{
	{StatusDraft, StatusInInvestigation, "Mula siasatan", byIO},
	{StatusInInvestigation, StatusPendingReview, "Hantar untuk semakan", byIO},
	{StatusPendingReview, StatusInInvestigation, "Kembalikan untuk siasatan lanjut", byPO},
	{StatusPendingReview, StatusPendingSanction, "Mohon sanksi", byPO},
	{StatusPendingSanction, StatusSanctionApproved, "Luluskan sanksi", byUIP},
	{StatusPendingSanction, StatusPendingReview, "Tolak sanksi", byUIP},
	{StatusSanctionApproved, StatusCompounded, "Tawar kompaun", byPO},
	{StatusSanctionApproved, StatusCharged, "Failkan pertuduhan", byPO},
	{StatusCompounded, StatusCharged, "Kompaun tidak dibayar, failkan pertuduhan", byPO},
	{StatusCompounded, StatusClosed, "Kompaun dibayar, tutup kes", byPO},
	{StatusCharged, StatusClosed, "Tutup kes", byPO},
	{StatusInInvestigation, StatusNFA, "Tiada tindakan lanjut", byPO},
	{StatusPendingReview, StatusNFA, "Tiada tindakan lanjut", byPO},
	{StatusPendingSanction, StatusNFA, "Tiada tindakan lanjut", byPO},
	{StatusSanctionApproved, StatusNFA, "Tiada tindakan lanjut", byPO},
}

// Transitions returns a copy of the transition table. Returned entries
// include RoleAdmin.
func Transitions() []Transition {
	out := make([]Transition, len(table))
	for i, t := range table {
		out[i] = t.withAdmin()
	}
	return out
}

// Find returns the edge from -> to, if it exists.
func Find(from, to Status) (Transition, bool) {
	for _, t := range table {
		if t.From == from && t.To == to {
			return t.withAdmin(), true
		}
	}
	return Transition{}, false
}

// Allows reports whether role may take this edge.
func (t Transition) Allows(role auth.Role) bool {
	return role == auth.RoleAdmin || slices.Contains(t.Roles, role)
}

// Authorize checks that from -> to is a legal edge and that role may take
// it. An absent edge yields a *TransitionError; a disallowed role yields
// auth.ErrForbidden without naming the permitted roles.
func Authorize(role auth.Role, from, to Status) error {
	t, ok := Find(from, to)
	if !ok {
		return &TransitionError{From: from, To: to}
	}
	if !t.Allows(role) {
		return auth.ErrForbidden
	}
	return nil
}

// Available lists the edges role may take out of from, in table order.
func Available(role auth.Role, from Status) []Transition {
	out := make([]Transition, 0)
	for _, t := range table {
		if t.From == from && t.Allows(role) {
			out = append(out, t.withAdmin())
		}
	}
	return out
}

func (t Transition) withAdmin() Transition {
	roles := make([]auth.Role, 0, len(t.Roles)+1)
	roles = append(roles, auth.RoleAdmin)
	roles = append(roles, t.Roles...)
	t.Roles = roles
	return t
}
