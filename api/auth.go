package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/cementops/go-admin-client/client"
	"github.com/cementops/go-admin-client/querycache"
	"github.com/cementops/go-admin-client/session"
)

// ErrRoleNotAllowed is returned when the backend authenticates a user whose
// role the dashboard does not serve. The session is not persisted.
var ErrRoleNotAllowed = errors.New("role not permitted on this dashboard")

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type loginData struct {
	User   session.User `json:"user"`
	Tokens tokenPair    `json:"tokens"`
}

// Login authenticates against the backend and persists the session on
// success. A successful backend login whose role falls outside the dashboard
// set is rejected client-side: AuthState stays empty and ErrRoleNotAllowed
// is returned.
func (c *Client) Login(ctx context.Context, creds Credentials) (session.AuthState, error) {
	env, err := c.pipe.Do(ctx, client.Post("/auth/login", creds))
	if err != nil {
		return session.AuthState{}, err
	}

	var data loginData
	if err := env.Decode(&data); err != nil {
		return session.AuthState{}, fmt.Errorf("failed to decode login response: %w", err)
	}
	if !data.User.Role.Allowed(session.DashboardRoles) {
		c.logger.Warn().Str("role", string(data.User.Role)).Msg("login rejected for role")
		return session.AuthState{}, fmt.Errorf("%w: %q", ErrRoleNotAllowed, data.User.Role)
	}

	state := session.AuthState{
		AccessToken:  data.Tokens.AccessToken,
		RefreshToken: data.Tokens.RefreshToken,
		User:         data.User,
	}
	if err := c.pipe.Session().Save(state); err != nil {
		return session.AuthState{}, fmt.Errorf("failed to persist session: %w", err)
	}
	return state, nil
}

// Logout revokes the session server-side on a best-effort basis, then forces
// the local logout: session cleared and every cached list dropped.
func (c *Client) Logout(ctx context.Context) {
	if _, err := c.pipe.Do(ctx, client.Post("/auth/logout", nil)); err != nil {
		c.logger.Debug().Err(err).Msg("server-side logout failed, proceeding locally")
	}
	c.pipe.Logout()
}

// Refresh proactively exchanges the stored refresh token for a new pair,
// for hosts that renew before expiry instead of waiting for a 401.
func (c *Client) Refresh(ctx context.Context) error {
	return c.pipe.Refresh(ctx)
}

// Profile fetches the authenticated user's record.
func (c *Client) Profile(ctx context.Context) (session.User, error) {
	return runQuery(ctx, c, "Profile", client.Get("/auth/me", nil),
		staticTags[session.User](querycache.EntityTag(querycache.EntityAuth, "me")))
}
