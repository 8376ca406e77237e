package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Route keys a canned response by method and exact path (query included).
type Route struct {
	Method string
	Path   string
}

// RecipeServer is a canned-response fake of the recipe service. Tests
// register JSON responses per route and can inspect the requests received.
type RecipeServer struct {
	t      testing.TB
	server *httptest.Server

	mu        sync.Mutex
	responses map[Route]cannedResponse
	requests  []*http.Request
	bodies    [][]byte
}

type cannedResponse struct {
	status int
	body   []byte
}

// NewRecipeServer starts a fake recipe service. Unregistered routes answer
// 404 with a JSON detail body, matching the real server's shape.
func NewRecipeServer(t testing.TB) *RecipeServer {
	t.Helper()
	rs := &RecipeServer{
		t:         t,
		responses: make(map[Route]cannedResponse),
	}
	rs.server = httptest.NewServer(http.HandlerFunc(rs.handle))
	t.Cleanup(rs.server.Close)
	return rs
}

// URL returns the fake service's base URL.
func (rs *RecipeServer) URL() string {
	return rs.server.URL
}

// Client returns an HTTP client wired to the fake service.
func (rs *RecipeServer) Client() *http.Client {
	return rs.server.Client()
}

// Respond registers a canned JSON response for method and path. The payload
// is marshalled once at registration.
func (rs *RecipeServer) Respond(method, path string, status int, payload any) {
	rs.t.Helper()
	var body []byte
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			rs.t.Fatalf("marshal canned response for %s %s: %v", method, path, err)
		}
		body = data
	}
	rs.mu.Lock()
	rs.responses[Route{Method: method, Path: path}] = cannedResponse{status: status, body: body}
	rs.mu.Unlock()
}

// RespondRaw registers a canned response with a pre-encoded body.
func (rs *RecipeServer) RespondRaw(method, path string, status int, body string) {
	rs.mu.Lock()
	rs.responses[Route{Method: method, Path: path}] = cannedResponse{status: status, body: []byte(body)}
	rs.mu.Unlock()
}

// Requests returns the requests received so far, in order.
func (rs *RecipeServer) Requests() []*http.Request {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]*http.Request{}, rs.requests...)
}

// LastRequest returns the most recent request and its body, or nil when the
// server has seen no traffic.
func (rs *RecipeServer) LastRequest() (*http.Request, []byte) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if len(rs.requests) == 0 {
		return nil, nil
	}
	return rs.requests[len(rs.requests)-1], rs.bodies[len(rs.bodies)-1]
}

func (rs *RecipeServer) handle(w http.ResponseWriter, r *http.Request) {
	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
	}

	path := r.URL.Path
	if r.URL.RawQuery != "" {
		path += "?" + r.URL.RawQuery
	}

	rs.mu.Lock()
	rs.requests = append(rs.requests, r.Clone(r.Context()))
	rs.bodies = append(rs.bodies, body)
	resp, ok := rs.responses[Route{Method: r.Method, Path: path}]
	rs.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not found."}`))
		return
	}
	w.WriteHeader(resp.status)
	if len(resp.body) > 0 {
		_, _ = w.Write(resp.body)
	}
}
