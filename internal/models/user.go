package models

// Role is the normalized access level of a signed-in user. It is derived once
// from the backend user record at the API boundary; nothing downstream looks
// at the raw flags again.
type Role int

const (
	RoleCustomer Role = iota
	RoleAdmin
	RoleSuperAdmin
)

// String returns the wire-friendly name of the role.
func (r Role) String() string {
	switch r {
	case RoleSuperAdmin:
		return "super-admin"
	case RoleAdmin:
		return "admin"
	default:
		return "customer"
	}
}

// User mirrors the backend identity record. Earlier backend revisions exposed
// a single "role" string instead of the boolean flags; both shapes decode into
// this struct and are normalized by Classify.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	IsActive     bool   `json:"is_active"`
	IsAdmin      bool   `json:"is_admin"`
	IsSuperAdmin bool   `json:"is_super_admin"`
	LegacyRole   string `json:"role"`
}

// Classify derives the user's role. Super-admin wins over admin, admin over
// customer. A nil user or a record with no recognizable role information
// classifies as customer.
func (u *User) Classify() Role {
	if u == nil {
		return RoleCustomer
	}
	if u.IsSuperAdmin {
		return RoleSuperAdmin
	}
	if u.IsAdmin {
		return RoleAdmin
	}
	switch u.LegacyRole {
	case "admin", "staff":
		return RoleAdmin
	}
	return RoleCustomer
}

// DisplayName returns the user's name for rendering, falling back to email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}
