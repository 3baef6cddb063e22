package model

const (
	RoleUser   = "user"
	RolePolice = "police"
	RoleAdmin  = "admin"
)

// Scope is the verified identity of the caller.
type Scope struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	JTI    string `json:"jti"`
}

// IsAuthenticated reports whether the scope carries a caller identity.
func (s Scope) IsAuthenticated() bool {
	return s.UserID != ""
}

// IsResponder reports whether the caller may respond to SOS alerts.
func (s Scope) IsResponder() bool {
	return s.Role == RolePolice
}

func (s Scope) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// HasRole reports whether the caller has any of roles.
func (s Scope) HasRole(roles ...string) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}
