package adminaudit

// Role is the closed set of principal roles the audit core understands.
type Role string

const (
	// RoleRoot carries every admin capability plus root-only operations.
	RoleRoot Role = "root"
	// RoleAdmin is the regular administrative role.
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleRoot, RoleAdmin:
		return true
	default:
		return false
	}
}

// Satisfies reports whether the role passes a gate requiring one of the
// allowed roles. Root is an explicit superset of admin: a root principal
// passes an admin gate, but a gate that names only root admits root alone.
func (r Role) Satisfies(allowed ...Role) bool {
	if !r.IsValid() {
		return false
	}
	for _, a := range allowed {
		if r == a {
			return true
		}
		if a == RoleAdmin && r == RoleRoot {
			return true
		}
	}
	return false
}

// Auditable reports whether requests made under this role are subject to
// access auditing.
func (r Role) Auditable() bool {
	return r == RoleAdmin || r == RoleRoot
}

// ParseRole safely parses a string into a Role
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, role.IsValid()
}

// AllRoles returns the predefined roles in descending privilege order.
func AllRoles() []Role {
	return []Role{RoleRoot, RoleAdmin}
}
