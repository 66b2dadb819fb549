package testsupport

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"sync"
)

// TransportFunc adapts a plain function to the pipeline's transport
// interface, for tests that need full control over each exchange.
type TransportFunc func(*http.Request) (*http.Response, error)

// Do implements the transport interface.
func (f TransportFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

// JSONResponse builds an *http.Response with a JSON body, for use from fake
// transports.
func JSONResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

// RecordedRequest captures what a fake transport observed for one exchange.
type RecordedRequest struct {
	Method        string
	Path          string
	Query         url.Values
	Authorization string
	Body          []byte
}

// ScriptedTransport replays a queue of canned responses in order and records
// every request it saw. Safe for concurrent use.
type ScriptedTransport struct {
	mu       sync.Mutex
	queue    []scriptedStep
	requests []RecordedRequest
}

type scriptedStep struct {
	status int
	body   string
	err    error
}

// NewScriptedTransport creates an empty scripted transport.
func NewScriptedTransport() *ScriptedTransport {
	return &ScriptedTransport{}
}

// EnqueueJSON appends a canned JSON response to the script.
func (s *ScriptedTransport) EnqueueJSON(status int, body string) *ScriptedTransport {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, scriptedStep{status: status, body: body})
	return s
}

// EnqueueError appends a transport-level failure to the script.
func (s *ScriptedTransport) EnqueueError(err error) *ScriptedTransport {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, scriptedStep{err: err})
	return s
}

// Do implements the transport interface by replaying the next scripted step.
// Running past the script yields an empty 200 envelope.
func (s *ScriptedTransport) Do(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method:        req.Method,
		Path:          req.URL.Path,
		Query:         req.URL.Query(),
		Authorization: req.Header.Get("Authorization"),
		Body:          body,
	})
	var step scriptedStep
	if len(s.queue) > 0 {
		step = s.queue[0]
		s.queue = s.queue[1:]
	} else {
		step = scriptedStep{status: http.StatusOK, body: `{"success":true}`}
	}
	s.mu.Unlock()

	if step.err != nil {
		return nil, step.err
	}
	return JSONResponse(step.status, step.body), nil
}

// Requests returns a copy of everything recorded so far.
func (s *ScriptedTransport) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// FakeNavigator records navigation requests from the pipeline's logout path.
type FakeNavigator struct {
	mu          sync.Mutex
	current     string
	Navigations []string
}

// NewFakeNavigator creates a navigator positioned at the given path.
func NewFakeNavigator(current string) *FakeNavigator {
	return &FakeNavigator{current: current}
}

// CurrentPath implements the navigator interface.
func (n *FakeNavigator) CurrentPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// NavigateTo implements the navigator interface.
func (n *FakeNavigator) NavigateTo(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = path
	n.Navigations = append(n.Navigations, path)
}
