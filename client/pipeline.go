package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/cementops/go-admin-client/session"
)

// Doer executes a single HTTP exchange. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Navigator abstracts the host shell's location so a forced logout can
// redirect without this package knowing about the UI layer.
type Navigator interface {
	CurrentPath() string
	NavigateTo(path string)
}

// LogoutHook runs after the pipeline has cleared the session. The cache
// coordinator registers here to drop all cached lists once identity changes.
type LogoutHook func()

// Pipeline wraps every outbound call with bearer-token attachment and a
// single transparent refresh-and-retry cycle on 401. When recovery is
// impossible it forces a client-side logout instead of looping.
type Pipeline struct {
	cfg       Config
	transport Doer
	store     session.Store
	nav       Navigator
	logger    zerolog.Logger
	hooks     []LogoutHook

	// Concurrent 401s share one in-flight refresh instead of each issuing
	// their own; waiters re-read the store once the shared call lands.
	refreshGroup singleflight.Group
}

// Option customises pipeline construction.
type Option func(*Pipeline)

// WithTransport replaces the underlying HTTP transport.
func WithTransport(d Doer) Option {
	return func(p *Pipeline) { p.transport = d }
}

// WithNavigator wires the host navigation used on forced logout.
func WithNavigator(n Navigator) Option {
	return func(p *Pipeline) { p.nav = n }
}

// WithLogger attaches a structured logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithLogoutHook registers a hook invoked after every forced logout.
func WithLogoutHook(hook LogoutHook) Option {
	return func(p *Pipeline) { p.hooks = append(p.hooks, hook) }
}

// New builds a pipeline over the given session store.
func New(cfg Config, store session.Store, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}

	p := &Pipeline{
		cfg:    cfg,
		store:  store,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.transport == nil {
		p.transport = &http.Client{Timeout: cfg.Timeout}
	}
	return p, nil
}

// OnLogout registers an additional logout hook after construction.
func (p *Pipeline) OnLogout(hook LogoutHook) {
	p.hooks = append(p.hooks, hook)
}

// Do sends the request through the authenticated pipeline: attach, dispatch,
// and at most one refresh-and-retry when the server answers 401. Every other
// failure is surfaced to the caller untouched.
func (p *Pipeline) Do(ctx context.Context, req *Request) (*Envelope, error) {
	reqID := uuid.NewString()
	logger := p.logger.With().
		Str("request_id", reqID).
		Str("method", req.Method).
		Str("path", req.Path).
		Logger()

	env, err := p.dispatch(ctx, req, true)
	if err == nil || !IsUnauthorized(err) {
		return env, err
	}

	logger.Debug().Msg("request unauthorized, attempting token refresh")
	return p.handleUnauthorized(ctx, req, logger, err)
}

// handleUnauthorized performs the one-shot recovery sequence. The original
// 401 is returned whenever recovery is impossible; a second 401 on the
// retried request is surfaced as-is.
func (p *Pipeline) handleUnauthorized(ctx context.Context, req *Request, logger zerolog.Logger, origErr error) (*Envelope, error) {
	state, err := p.store.Load()
	if err != nil || state.RefreshToken == "" {
		logger.Debug().Msg("no refresh token, forcing logout")
		p.Logout()
		return nil, origErr
	}

	if _, err, _ := p.refreshGroup.Do("refresh", func() (any, error) {
		return nil, p.refreshTokens(ctx, state.RefreshToken)
	}); err != nil {
		logger.Warn().Err(err).Msg("token refresh failed, forcing logout")
		p.Logout()
		return nil, origErr
	}

	// The refreshed tokens were persisted before the shared refresh call
	// resolved, so this retry's attach step picks up the new access token.
	logger.Debug().Msg("token refreshed, retrying original request")
	return p.dispatch(ctx, req, true)
}

// Refresh exchanges the stored refresh token for a new pair outside the 401
// path, for hosts that renew proactively. It shares the in-flight
// de-duplication with automatic reauthentication and returns
// ErrNoRefreshToken when the session carries none.
func (p *Pipeline) Refresh(ctx context.Context) error {
	state, err := p.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if state.RefreshToken == "" {
		return ErrNoRefreshToken
	}
	_, err, _ = p.refreshGroup.Do("refresh", func() (any, error) {
		return nil, p.refreshTokens(ctx, state.RefreshToken)
	})
	return err
}

// refreshTokens exchanges the refresh token for a new token pair and writes
// it back to the session store before returning. It dispatches directly so a
// 401 on the refresh endpoint cannot recurse into another refresh.
func (p *Pipeline) refreshTokens(ctx context.Context, refreshToken string) error {
	req := Post(p.cfg.RefreshPath, map[string]string{"refreshToken": refreshToken})
	env, err := p.dispatch(ctx, req, false)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	var data struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		Tokens       struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		} `json:"tokens"`
	}
	if err := env.Decode(&data); err != nil {
		return fmt.Errorf("%w: failed to decode token pair: %w", ErrRefreshFailed, err)
	}
	access, refresh := data.Tokens.AccessToken, data.Tokens.RefreshToken
	if access == "" {
		access, refresh = data.AccessToken, data.RefreshToken
	}
	if access == "" {
		return fmt.Errorf("%w: response carried no access token", ErrRefreshFailed)
	}

	state, err := p.store.Load()
	if err != nil {
		return fmt.Errorf("%w: failed to load session: %w", ErrRefreshFailed, err)
	}
	state.AccessToken = access
	if refresh != "" {
		state.RefreshToken = refresh
	}
	if err := p.store.Save(state); err != nil {
		return fmt.Errorf("%w: failed to persist token pair: %w", ErrRefreshFailed, err)
	}
	return nil
}

// dispatch materializes the descriptor into an http.Request, optionally
// attaches the bearer token, and performs a single exchange. A transport
// failure with no response maps to StatusConnError and is never retried.
func (p *Pipeline) dispatch(ctx context.Context, req *Request, attachToken bool) (*Envelope, error) {
	httpReq, err := p.buildHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	if attachToken {
		p.attach(httpReq)
	}

	resp, err := p.transport.Do(httpReq)
	if err != nil {
		return nil, &APIError{StatusCode: StatusConnError, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{StatusCode: StatusConnError, Message: err.Error()}
	}

	env := &Envelope{}
	if len(raw) > 0 {
		// Tolerate non-envelope bodies on errors; the raw payload is kept
		// on the APIError either way.
		_ = json.Unmarshal(raw, env)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		message := env.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: message, Body: raw}
	}
	return env, nil
}

// attach sets the Authorization header when the session holds a token. A
// missing token is not an error; authorization failure is the server's call.
func (p *Pipeline) attach(httpReq *http.Request) {
	state, err := p.store.Load()
	if err != nil || state.AccessToken == "" {
		return
	}
	httpReq.Header.Set("Authorization", "Bearer "+state.AccessToken)
}

func (p *Pipeline) buildHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	target := strings.TrimSuffix(p.cfg.BaseURL, "/") + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	for name, values := range req.Headers {
		for _, value := range values {
			httpReq.Header.Add(name, value)
		}
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	return httpReq, nil
}

// Logout clears durable session storage, runs the registered hooks, and
// navigates to the login page unless the current location is public. Public
// locations are exempt to guard against redirect loops.
func (p *Pipeline) Logout() {
	if err := p.store.Clear(); err != nil {
		p.logger.Warn().Err(err).Msg("failed to clear session storage")
	}
	for _, hook := range p.hooks {
		hook()
	}
	if p.nav == nil {
		return
	}
	if p.cfg.isPublicPath(p.nav.CurrentPath()) {
		return
	}
	p.nav.NavigateTo(p.cfg.LoginPath)
}

// Session exposes the pipeline's session store to collaborators such as the
// typed API client, which persists the login record on success.
func (p *Pipeline) Session() session.Store {
	return p.store
}
