package testutil

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/restkit/component"
)

// BackendCall is a request received by Backend.
type BackendCall struct {
	Method  string
	Path    string
	Header  http.Header
	Body    []byte
	Cookies []*http.Cookie
}

type stubResponse struct {
	status  int
	body    string
	cookies []*http.Cookie
}

type backendState struct {
	routes map[string]stubResponse
	calls  []BackendCall
}

// Backend is a stub REST server. Unscripted routes answer 404.
type Backend struct {
	mu     sync.Mutex
	state  backendState
	server *httptest.Server
}

var _ TestComponent = (*Backend)(nil)

// NewBackend creates a stopped backend.
func NewBackend() *Backend {
	return &Backend{state: backendState{routes: make(map[string]stubResponse)}}
}

// Respond scripts the answer for method and path.
func (b *Backend) Respond(method, path string, status int, body string, cookies ...*http.Cookie) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.routes[routeKey(method, path)] = stubResponse{status: status, body: body, cookies: cookies}
}

// URL returns the base URL of the running server.
func (b *Backend) URL() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.server == nil {
		return ""
	}
	return b.server.URL
}

// Calls returns the requests received so far.
func (b *Backend) Calls() []BackendCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]BackendCall(nil), b.state.calls...)
}

// Name implements component.Component.
func (b *Backend) Name() string { return "stub-backend" }

// Start implements component.Component.
func (b *Backend) Start(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.server != nil {
		return fmt.Errorf("testutil: backend already started")
	}
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.NoRoute(b.serve)
	b.server = httptest.NewServer(engine)
	return nil
}

// Stop implements component.Component.
func (b *Backend) Stop(_ context.Context) error {
	b.mu.Lock()
	server := b.server
	b.server = nil
	b.mu.Unlock()
	if server != nil {
		server.Close()
	}
	return nil
}

// Health implements component.Component.
func (b *Backend) Health(_ context.Context) component.Health {
	status := component.StatusHealthy
	if b.URL() == "" {
		status = component.StatusUnhealthy
	}
	return component.Health{Name: b.Name(), Status: status}
}

// Reset clears scripted routes and recorded calls.
func (b *Backend) Reset(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = backendState{routes: make(map[string]stubResponse)}
	return nil
}

// Snapshot implements TestComponent.
func (b *Backend) Snapshot(_ context.Context) (interface{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return backendState{
		routes: maps.Clone(b.state.routes),
		calls:  append([]BackendCall(nil), b.state.calls...),
	}, nil
}

// Restore implements TestComponent.
func (b *Backend) Restore(_ context.Context, snapshot interface{}) error {
	s, ok := snapshot.(backendState)
	if !ok {
		return fmt.Errorf("testutil: unexpected backend snapshot %T", snapshot)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = backendState{
		routes: maps.Clone(s.routes),
		calls:  append([]BackendCall(nil), s.calls...),
	}
	return nil
}

func (b *Backend) serve(c *gin.Context) {
	body, _ := c.GetRawData()

	b.mu.Lock()
	b.state.calls = append(b.state.calls, BackendCall{
		Method:  c.Request.Method,
		Path:    c.Request.URL.Path,
		Header:  c.Request.Header.Clone(),
		Body:    body,
		Cookies: c.Request.Cookies(),
	})
	resp, ok := b.state.routes[routeKey(c.Request.Method, c.Request.URL.Path)]
	b.mu.Unlock()

	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	for _, ck := range resp.cookies {
		http.SetCookie(c.Writer, ck)
	}
	c.Data(resp.status, "application/json", []byte(resp.body))
}

func routeKey(method, path string) string {
	return method + " " + path
}
