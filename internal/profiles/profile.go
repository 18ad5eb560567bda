// Package profiles stores user profiles keyed by identity provider subject
// and resolves authenticated claims into principals.
package profiles

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/pendakwaan/internal/auth"
)

// Profile is a user of the system. Role is the only authority for what the
// user may do.
type Profile struct {
	ID         uuid.UUID `json:"id"`
	Subject    string    `json:"subject"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Role       auth.Role `json:"role"`
	Department string    `json:"department"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Principal returns the caller identity for p.
func (p Profile) Principal() auth.Principal {
	return auth.Principal{
		UserID:     p.ID,
		Subject:    p.Subject,
		Email:      p.Email,
		Name:       p.FullName,
		Role:       p.Role,
		Department: p.Department,
	}
}

// UpdateCommand changes a profile. Nil fields keep their stored value.
type UpdateCommand struct {
	FullName   *string    `json:"full_name,omitempty"`
	Role       *auth.Role `json:"role,omitempty"`
	Department *string    `json:"department,omitempty"`
	Phone      *string    `json:"phone,omitempty"`
}
