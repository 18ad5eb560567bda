// Package auth verifies bearer tokens from the external identity provider and
// carries the resulting Principal through request contexts.
package auth

import "fmt"

// Role is the authorization role held by a profile.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleIO     Role = "io"
	RolePO     Role = "po"
	RoleUIP    Role = "uip"
	RoleViewer Role = "viewer"
)

// Roles lists every role in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleIO, RolePO, RoleUIP, RoleViewer}
}

// Label returns the Malay display label for the role.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Pentadbir"
	case RoleIO:
		return "Pegawai Penyiasat"
	case RolePO:
		return "Pegawai Pendakwa"
	case RoleUIP:
		return "Unit Integriti dan Pendakwaan"
	case RoleViewer:
		return "Pemerhati"
	}
	return string(r)
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleIO, RolePO, RoleUIP, RoleViewer:
		return true
	}
	return false
}

// ParseRole validates s as a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
