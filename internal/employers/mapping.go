package employers

import (
	"net/url"

	"github.com/JaimeStill/pendakwaan/pkg/query"
	"github.com/JaimeStill/pendakwaan/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "employers", "e").
	Project("id", "ID").
	Project("name", "Name").
	Project("registration_number", "RegistrationNumber").
	Project("address", "Address").
	Project("phone", "Phone").
	Project("email", "Email").
	Project("business_type", "BusinessType").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Name"}

const returning = "id, name, registration_number, address, phone, email, business_type, created_at, updated_at"

// Filters narrows an employer listing. Nil fields are ignored.
type Filters struct {
	RegistrationNumber *string `json:"registration_number,omitempty"`
	BusinessType       *string `json:"business_type,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("RegistrationNumber", f.RegistrationNumber).
		WhereContains("BusinessType", f.BusinessType)
}

// FiltersFromQuery reads registration_number and business_type from values.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if r := values.Get("registration_number"); r != "" {
		f.RegistrationNumber = &r
	}
	if b := values.Get("business_type"); b != "" {
		f.BusinessType = &b
	}

	return f
}

func scanEmployer(s repository.Scanner) (Employer, error) {
	var e Employer
	err := s.Scan(
		&e.ID,
		&e.Name,
		&e.RegistrationNumber,
		&e.Address,
		&e.Phone,
		&e.Email,
		&e.BusinessType,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}
