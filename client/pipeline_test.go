package client_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cementops/go-admin-client/client"
	"github.com/cementops/go-admin-client/pkg/testsupport"
	"github.com/cementops/go-admin-client/session"
)

func newTestPipeline(t *testing.T, transport client.Doer, state session.AuthState, opts ...client.Option) (*client.Pipeline, *session.MemoryStore) {
	t.Helper()

	store := session.NewMemoryStore()
	require.NoError(t, store.Save(state))

	opts = append([]client.Option{client.WithTransport(transport)}, opts...)
	pipe, err := client.New(client.DefaultConfig("https://api.example.com"), store, opts...)
	require.NoError(t, err)
	return pipe, store
}

func loggedIn() session.AuthState {
	return session.AuthState{
		AccessToken:  "access-old",
		RefreshToken: "refresh-1",
		User:         session.User{ID: "u1", Role: session.RoleAdmin},
	}
}

func TestPipeline_AttachesBearerToken(t *testing.T) {
	transport := testsupport.NewScriptedTransport().
		EnqueueJSON(http.StatusOK, `{"success":true,"data":{"id":"p1"}}`)
	pipe, _ := newTestPipeline(t, transport, loggedIn())

	env, err := pipe.Do(context.Background(), client.Get("/products/p1", nil))
	require.NoError(t, err)
	assert.True(t, env.Success)

	reqs := transport.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer access-old", reqs[0].Authorization)
}

func TestPipeline_NoTokenPassesThroughUnmodified(t *testing.T) {
	transport := testsupport.NewScriptedTransport().
		EnqueueJSON(http.StatusOK, `{"success":true}`)
	pipe, _ := newTestPipeline(t, transport, session.AuthState{})

	_, err := pipe.Do(context.Background(), client.Get("/products", nil))
	require.NoError(t, err)

	reqs := transport.Requests()
	require.Len(t, reqs, 1)
	assert.Empty(t, reqs[0].Authorization)
}

func TestPipeline_RefreshAndRetryOnce(t *testing.T) {
	transport := testsupport.NewScriptedTransport().
		EnqueueJSON(http.StatusUnauthorized, `{"success":false,"message":"token expired"}`).
		EnqueueJSON(http.StatusOK, `{"success":true,"data":{"tokens":{"accessToken":"access-new","refreshToken":"refresh-2"}}}`).
		EnqueueJSON(http.StatusOK, `{"success":true,"data":{"id":"p1"}}`)
	pipe, store := newTestPipeline(t, transport, loggedIn())

	env, err := pipe.Do(context.Background(), client.Get("/products/p1", nil))
	require.NoError(t, err)
	assert.True(t, env.Success)

	reqs := transport.Requests()
	require.Len(t, reqs, 3)
	assert.Equal(t, "/products/p1", reqs[0].Path)
	assert.Equal(t, "/auth/refresh", reqs[1].Path)
	assert.JSONEq(t, `{"refreshToken":"refresh-1"}`, string(reqs[1].Body))
	// The retry must carry the refreshed token, not the stale one.
	assert.Equal(t, "/products/p1", reqs[2].Path)
	assert.Equal(t, "Bearer access-new", reqs[2].Authorization)

	state, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "access-new", state.AccessToken)
	assert.Equal(t, "refresh-2", state.RefreshToken)
	// The user identity survives a token refresh.
	assert.Equal(t, "u1", state.User.ID)
}

func TestPipeline_SecondUnauthorizedSurfacedAsIs(t *testing.T) {
	transport := testsupport.NewScriptedTransport().
		EnqueueJSON(http.StatusUnauthorized, `{"success":false,"message":"token expired"}`).
		EnqueueJSON(http.StatusOK, `{"success":true,"data":{"accessToken":"access-new"}}`).
		EnqueueJSON(http.StatusUnauthorized, `{"success":false,"message":"still unauthorized"}`)
	pipe, _ := newTestPipeline(t, transport, loggedIn())

	_, err := pipe.Do(context.Background(), client.Get("/orders", nil))
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))

	// Exactly one refresh and one retry; no loop.
	assert.Len(t, transport.Requests(), 3)
}

func TestPipeline_RefreshFailureForcesLogout(t *testing.T) {
	transport := testsupport.NewScriptedTransport().
		EnqueueJSON(http.StatusUnauthorized, `{"success":false,"message":"token expired"}`).
		EnqueueJSON(http.StatusForbidden, `{"success":false,"message":"refresh token revoked"}`)
	nav := testsupport.NewFakeNavigator("/depots")

	var hookCalls atomic.Int32
	pipe, store := newTestPipeline(t, transport, loggedIn(),
		client.WithNavigator(nav),
		client.WithLogoutHook(func() { hookCalls.Add(1) }))

	_, err := pipe.Do(context.Background(), client.Get("/orders", nil))
	require.Error(t, err)
	// The caller observes the original 401, not the refresh failure.
	assert.True(t, client.IsUnauthorized(err))

	state, lerr := store.Load()
	require.NoError(t, lerr)
	assert.False(t, state.IsAuthenticated())
	assert.Equal(t, int32(1), hookCalls.Load())
	assert.Equal(t, []string{"/login"}, nav.Navigations)

	// No retry of the original request after a failed refresh.
	reqs := transport.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "/auth/refresh", reqs[1].Path)
}

func TestPipeline_NoRefreshTokenShortCircuits(t *testing.T) {
	transport := testsupport.NewScriptedTransport().
		EnqueueJSON(http.StatusUnauthorized, `{"success":false}`)
	nav := testsupport.NewFakeNavigator("/depots")

	state := loggedIn()
	state.RefreshToken = ""
	pipe, store := newTestPipeline(t, transport, state, client.WithNavigator(nav))

	_, err := pipe.Do(context.Background(), client.Get("/orders", nil))
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))

	// Logout happened with no refresh call attempted.
	assert.Len(t, transport.Requests(), 1)
	got, lerr := store.Load()
	require.NoError(t, lerr)
	assert.False(t, got.IsAuthenticated())
	assert.Equal(t, []string{"/login"}, nav.Navigations)
}

func TestPipeline_ConnectionErrorNeverTriggersRefresh(t *testing.T) {
	transport := testsupport.NewScriptedTransport().
		EnqueueError(errors.New("dial tcp: connection refused"))
	pipe, store := newTestPipeline(t, transport, loggedIn())

	_, err := pipe.Do(context.Background(), client.Get("/orders", nil))
	require.Error(t, err)
	assert.True(t, client.IsConnError(err))
	assert.Equal(t, client.StatusConnError, client.StatusOf(err))

	// Session intact, no refresh call.
	assert.Len(t, transport.Requests(), 1)
	state, lerr := store.Load()
	require.NoError(t, lerr)
	assert.True(t, state.IsAuthenticated())
}

func TestPipeline_OtherErrorsPassThrough(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"validation error", http.StatusUnprocessableEntity},
		{"not found", http.StatusNotFound},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := testsupport.NewScriptedTransport().
				EnqueueJSON(tt.status, `{"success":false,"message":"nope"}`)
			pipe, _ := newTestPipeline(t, transport, loggedIn())

			_, err := pipe.Do(context.Background(), client.Get("/orders", nil))
			require.Error(t, err)
			assert.Equal(t, tt.status, client.StatusOf(err))

			var apiErr *client.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "nope", apiErr.Message)
			assert.Len(t, transport.Requests(), 1)
		})
	}
}

func TestPipeline_LogoutSkipsRedirectOnPublicPaths(t *testing.T) {
	for _, path := range []string{"/login", "/register", "/"} {
		nav := testsupport.NewFakeNavigator(path)
		pipe, _ := newTestPipeline(t, testsupport.NewScriptedTransport(), loggedIn(),
			client.WithNavigator(nav))

		pipe.Logout()
		assert.Empty(t, nav.Navigations, "no redirect expected from %s", path)
	}
}

func TestPipeline_ConcurrentUnauthorizedSharesOneRefresh(t *testing.T) {
	const callers = 4

	var (
		refreshCalls atomic.Int32
		releaseOnce  sync.Once
		released     = make(chan struct{})
		arrived      atomic.Int32
	)

	store := session.NewMemoryStore()
	require.NoError(t, store.Save(loggedIn()))

	transport := testsupport.TransportFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path == "/auth/refresh" {
			refreshCalls.Add(1)
			// Hold the shared refresh open long enough for every waiter
			// that saw a 401 to join it.
			time.Sleep(200 * time.Millisecond)
			return testsupport.JSONResponse(http.StatusOK,
				`{"success":true,"data":{"accessToken":"access-new","refreshToken":"refresh-2"}}`), nil
		}
		if req.Header.Get("Authorization") == "Bearer access-old" {
			// Release all initial requests together so their 401s race.
			if arrived.Add(1) == callers {
				releaseOnce.Do(func() { close(released) })
			}
			<-released
			return testsupport.JSONResponse(http.StatusUnauthorized, `{"success":false}`), nil
		}
		return testsupport.JSONResponse(http.StatusOK, `{"success":true}`), nil
	})

	pipe, err := client.New(client.DefaultConfig("https://api.example.com"), store,
		client.WithTransport(transport))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = pipe.Do(context.Background(), client.Get("/orders", nil))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "caller %d", i)
	}
	assert.Equal(t, int32(1), refreshCalls.Load())
}

func TestPipeline_ExplicitRefresh(t *testing.T) {
	transport := testsupport.NewScriptedTransport().
		EnqueueJSON(http.StatusOK, `{"success":true,"data":{"tokens":{"accessToken":"access-new","refreshToken":"refresh-2"}}}`)
	pipe, store := newTestPipeline(t, transport, loggedIn())

	require.NoError(t, pipe.Refresh(context.Background()))

	reqs := transport.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/auth/refresh", reqs[0].Path)
	assert.Empty(t, reqs[0].Authorization)

	state, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "access-new", state.AccessToken)
	assert.Equal(t, "refresh-2", state.RefreshToken)
}

func TestPipeline_ExplicitRefreshWithoutToken(t *testing.T) {
	transport := testsupport.NewScriptedTransport()
	pipe, _ := newTestPipeline(t, transport, session.AuthState{AccessToken: "access-only"})

	err := pipe.Refresh(context.Background())
	require.ErrorIs(t, err, client.ErrNoRefreshToken)
	assert.Empty(t, transport.Requests())
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, client.DefaultConfig("https://api.example.com").Validate())

	missing := client.DefaultConfig("")
	assert.Error(t, missing.Validate())

	noRefresh := client.DefaultConfig("https://api.example.com")
	noRefresh.RefreshPath = ""
	assert.Error(t, noRefresh.Validate())
}
