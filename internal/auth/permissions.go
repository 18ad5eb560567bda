package auth

// Action names an operation gated by role.
type Action string

const (
	ActionCaseCreate    Action = "case:create"
	ActionCaseUpdate    Action = "case:update"
	ActionCaseDelete    Action = "case:delete"
	ActionEmployerWrite Action = "employer:write"
	ActionPersonCreate  Action = "person:create"
	ActionProfileManage Action = "profile:manage"
	ActionAuditRead     Action = "audit:read"
)

var permissions = map[Action][]Role{
	ActionCaseCreate:    {RoleAdmin, RoleIO},
	ActionCaseUpdate:    {RoleAdmin, RoleIO},
	ActionCaseDelete:    {RoleAdmin, RoleIO},
	ActionEmployerWrite: {RoleAdmin, RoleIO},
	ActionPersonCreate:  {RoleAdmin, RoleIO},
	ActionProfileManage: {RoleAdmin},
	ActionAuditRead:     {RoleAdmin, RoleUIP},
}

// Can reports whether role may perform action. Unknown actions are denied.
func Can(role Role, action Action) bool {
	for _, r := range permissions[action] {
		if r == role {
			return true
		}
	}
	return false
}

// Require returns ErrForbidden unless p may perform action.
func Require(p Principal, action Action) error {
	if !Can(p.Role, action) {
		return ErrForbidden
	}
	return nil
}
