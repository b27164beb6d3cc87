// Package models defines the clinic domain records and their persisted
// shapes. JSON tags reproduce the field names the original web front end
// wrote to localStorage, so existing data remains readable.
package models

// Role classifies a principal.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is a registration record in the users collection. The password is
// stored in plain text; this is a local, single-user tool with no real
// authentication.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

// Principal is the authenticated identity kept in session state.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the principal has the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
