// Package employers manages the employers named in prosecution cases.
package employers

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/pendakwaan/pkg/validation"
)

// Employer is a contributing employer under investigation. Employers are
// never deleted.
type Employer struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	RegistrationNumber string    `json:"registration_number"`
	Address            string    `json:"address"`
	Phone              string    `json:"phone"`
	Email              string    `json:"email"`
	BusinessType       string    `json:"business_type"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CreateCommand contains the fields for a new employer.
type CreateCommand struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number"`
	Address            string `json:"address,omitempty"`
	Phone              string `json:"phone,omitempty"`
	Email              string `json:"email,omitempty"`
	BusinessType       string `json:"business_type,omitempty"`
}

// Validate records missing fields on v. Field names are prefixed with
// prefix so callers embedding an employer can report "employer.name".
func (c CreateCommand) Validate(v *validation.Collector, prefix string) {
	v.Required(prefix+"name", c.Name)
	v.Required(prefix+"registration_number", c.RegistrationNumber)
	if c.Email != "" {
		v.Check(strings.Contains(c.Email, "@"), prefix+"email", "must be an email address")
	}
}

// UpdateCommand changes an employer. Nil fields keep their stored value.
type UpdateCommand struct {
	Name               *string `json:"name,omitempty"`
	RegistrationNumber *string `json:"registration_number,omitempty"`
	Address            *string `json:"address,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	Email              *string `json:"email,omitempty"`
	BusinessType       *string `json:"business_type,omitempty"`
}

func (c UpdateCommand) validate() error {
	var v validation.Collector
	if c.Name != nil {
		v.Required("name", *c.Name)
	}
	if c.RegistrationNumber != nil {
		v.Required("registration_number", *c.RegistrationNumber)
	}
	if c.Email != nil && *c.Email != "" {
		v.Check(strings.Contains(*c.Email, "@"), "email", "must be an email address")
	}
	return v.Err()
}
