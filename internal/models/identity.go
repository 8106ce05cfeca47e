package models

const (
	RoleAdmin   = "admin"
	RoleCurator = "curator"
	RoleStudent = "student"
)

// Identity is the authenticated platform caller, extracted from the session
// token by the auth middleware.
type Identity struct {
	UserID string
	Role   string
}

// Elevated roles skip the enrollment check when requesting video tokens.
func (i Identity) Elevated() bool {
	return i.Role == RoleAdmin || i.Role == RoleCurator
}
