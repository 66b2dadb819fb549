package session

// RejectAction is the side effect a gate applies when an authenticated user
// does not hold an allowed role.
type RejectAction string

const (
	// RejectLogout terminates the session outright so an
	// authenticated-but-unauthorized login cannot linger.
	RejectLogout RejectAction = "logout"
	// RejectRedirect sends the user away but keeps the session valid for
	// areas that do accept their role.
	RejectRedirect RejectAction = "redirect"
)

// Verdict is the outcome of evaluating a gate policy against the AuthState.
type Verdict int

const (
	// VerdictAllow grants access.
	VerdictAllow Verdict = iota
	// VerdictRedirect denies access but keeps the session.
	VerdictRedirect
	// VerdictLogout denies access and requires the session to be destroyed.
	VerdictLogout
)

// GatePolicy gates an area of the dashboard by role. The logout-vs-redirect
// asymmetry between the member and admin gates is intentional, so it lives in
// this table rather than in per-route branching.
type GatePolicy struct {
	Name         string
	AllowedRoles []Role
	OnReject     RejectAction
}

// MemberGate covers the general dashboard: sellers and admins.
var MemberGate = GatePolicy{
	Name:         "member",
	AllowedRoles: []Role{RoleSeller, RoleAdmin},
	OnReject:     RejectLogout,
}

// AdminGate covers admin-only areas. Sellers are redirected, not logged out.
var AdminGate = GatePolicy{
	Name:         "admin",
	AllowedRoles: []Role{RoleAdmin},
	OnReject:     RejectRedirect,
}

// Evaluate decides whether the current state may enter the gated area.
// Unauthenticated callers are always redirected to login.
func (p GatePolicy) Evaluate(state AuthState) Verdict {
	if !state.IsAuthenticated() {
		return VerdictRedirect
	}
	if state.User.Role.Allowed(p.AllowedRoles) {
		return VerdictAllow
	}
	if p.OnReject == RejectLogout {
		return VerdictLogout
	}
	return VerdictRedirect
}
