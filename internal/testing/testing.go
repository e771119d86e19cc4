// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"
)

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
	calls    int
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	m.calls++
	return m.response, m.err
}

// Calls reports how many requests went through the transport.
func (m *MockRoundTripper) Calls() int { return m.calls }

// JSONResponse builds a canned *http.Response with a JSON body.
func JSONResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// RouteRoundTripper dispatches canned responses by URL path suffix, picking
// the longest match. Safe for concurrent use, so fan-out requests can share
// one transport.
type RouteRoundTripper struct {
	mu     sync.Mutex
	routes map[string]string // path suffix -> JSON body
	status int
}

func NewRouteRoundTripper(routes map[string]string) *RouteRoundTripper {
	return &RouteRoundTripper{routes: routes, status: http.StatusOK}
}

func (r *RouteRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	best := ""
	for suffix := range r.routes {
		if strings.HasSuffix(req.URL.Path, suffix) && len(suffix) > len(best) {
			best = suffix
		}
	}
	if best == "" {
		return nil, errors.New("no route for " + req.URL.Path)
	}
	return JSONResponse(r.status, r.routes[best]), nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
