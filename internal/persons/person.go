// Package persons records the witnesses, persons of interest, and employees
// attached to a case.
package persons

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/pendakwaan/pkg/civil"
)

// Role is how a person relates to a case.
type Role string

const (
	RoleWitness          Role = "witness"
	RolePersonOfInterest Role = "person-of-interest"
	RoleEmployee         Role = "employee"
)

// Roles returns the roles in display order.
func Roles() []Role {
	return []Role{RoleWitness, RolePersonOfInterest, RoleEmployee}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleWitness, RolePersonOfInterest, RoleEmployee:
		return true
	}
	return false
}

// Person belongs to exactly one case.
type Person struct {
	ID             uuid.UUID  `json:"id"`
	CaseID         uuid.UUID  `json:"case_id"`
	Name           string     `json:"name"`
	IdentityNumber string     `json:"identity_number"`
	Role           Role       `json:"role"`
	Phone          string     `json:"phone"`
	Address        string     `json:"address"`
	Position       string     `json:"position"`
	EmployedSince  civil.Date `json:"employed_since"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CreateCommand contains the fields for a new person.
type CreateCommand struct {
	Name           string     `json:"name"`
	IdentityNumber string     `json:"identity_number,omitempty"`
	Role           Role       `json:"role"`
	Phone          string     `json:"phone,omitempty"`
	Address        string     `json:"address,omitempty"`
	Position       string     `json:"position,omitempty"`
	EmployedSince  civil.Date `json:"employed_since,omitempty"`
}
