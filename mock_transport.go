package utapi

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
)

// MockTransport is a Transport for tests. It replays queued outcomes in order
// and records every request it sees, bodies included, so suites can assert the
// exact headers and payloads that went out, or that nothing went out at all.
// Safe for concurrent use.
type MockTransport struct {
	mu       sync.Mutex
	outcomes []mockOutcome
	requests []*http.Request
	bodies   []string
}

type mockOutcome struct {
	resp *http.Response
	err  error
}

// QueueResponse appends a canned response with the given status and body.
// Chainable.
func (m *MockTransport) QueueResponse(status int, body string) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, mockOutcome{resp: &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}})
	return m
}

// QueueError appends a round trip failure. Chainable.
func (m *MockTransport) QueueError(err error) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, mockOutcome{err: err})
	return m
}

// Do records req and replays the next queued outcome. Running past the queue
// is an error so tests fail loudly instead of hanging on an empty response.
func (m *MockTransport) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
	}
	m.requests = append(m.requests, req)
	m.bodies = append(m.bodies, string(body))

	i := len(m.requests) - 1
	if i >= len(m.outcomes) {
		return nil, errors.New("mock transport: no response queued for request " + req.URL.Path)
	}
	out := m.outcomes[i]
	if out.err != nil {
		return nil, out.err
	}
	return out.resp, nil
}

// CallCount returns how many requests the mock has seen.
func (m *MockTransport) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Request returns the i'th recorded request, or nil when out of range. Its
// body has already been consumed; use Body for the recorded bytes.
func (m *MockTransport) Request(i int) *http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.requests) {
		return nil
	}
	return m.requests[i]
}

// Body returns the i'th recorded request body, or "" when out of range.
func (m *MockTransport) Body(i int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.bodies) {
		return ""
	}
	return m.bodies[i]
}
