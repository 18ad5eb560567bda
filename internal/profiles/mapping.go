package profiles

import (
	"net/url"

	"github.com/JaimeStill/pendakwaan/internal/auth"
	"github.com/JaimeStill/pendakwaan/pkg/query"
	"github.com/JaimeStill/pendakwaan/pkg/repository"
	"github.com/JaimeStill/pendakwaan/pkg/validation"
)

var projection = query.
	NewProjectionMap("public", "profiles", "p").
	Project("id", "ID").
	Project("subject", "Subject").
	Project("email", "Email").
	Project("full_name", "FullName").
	Project("role", "Role").
	Project("department", "Department").
	Project("phone", "Phone").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "FullName"}

const returning = "id, subject, email, full_name, role, department, phone, created_at, updated_at"

// Filters narrows a profile listing. Nil fields are ignored.
type Filters struct {
	Role       *auth.Role `json:"role,omitempty"`
	Department *string    `json:"department,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Role", f.Role).
		WhereContains("Department", f.Department)
}

// FiltersFromQuery reads role and department from values. An unknown role
// is a validation error.
func FiltersFromQuery(values url.Values) (Filters, error) {
	var f Filters

	if raw := values.Get("role"); raw != "" {
		role, err := auth.ParseRole(raw)
		if err != nil {
			return Filters{}, validation.Invalid("role", "unknown role")
		}
		f.Role = &role
	}
	if d := values.Get("department"); d != "" {
		f.Department = &d
	}

	return f, nil
}

func scanProfile(s repository.Scanner) (Profile, error) {
	var p Profile
	err := s.Scan(
		&p.ID,
		&p.Subject,
		&p.Email,
		&p.FullName,
		&p.Role,
		&p.Department,
		&p.Phone,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
