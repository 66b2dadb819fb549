package session

// Role identifies the access level granted to an authenticated user.
type Role string

const (
	// RoleSeller is a depot-level operator who manages day-to-day orders.
	RoleSeller Role = "seller"
	// RoleAdmin has full access to the administrative surface.
	RoleAdmin Role = "admin"
)

// DashboardRoles are the only roles the dashboard accepts at login; any other
// role is rejected client-side even when the backend authenticates it.
var DashboardRoles = []Role{RoleSeller, RoleAdmin}

// Allowed reports whether role appears in roles.
func (r Role) Allowed(roles []Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// User is the identity portion of the current login record.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// AuthState holds the single active login record for this client instance.
// The zero value means logged out; the presence of AccessToken is the sole
// signal of "authenticated".
type AuthState struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// IsAuthenticated reports whether the state carries an access token.
func (s AuthState) IsAuthenticated() bool {
	return s.AccessToken != ""
}
