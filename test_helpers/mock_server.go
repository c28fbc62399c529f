// Package test_helpers provides a configurable mock of the classic Reddit
// site for package tests.
package test_helpers

import (
	"net/http"
	"net/http/httptest"
	"sync"
)

// MockResponse defines a canned response for one path.
type MockResponse struct {
	Status  int
	Body    string
	Headers map[string]string
}

// MockServer serves canned responses per path and records every request it
// receives so tests can assert on call counts and submitted forms.
type MockServer struct {
	server *httptest.Server

	mu         sync.Mutex
	responses  map[string]*MockResponse
	defaultRes *MockResponse
	requestLog []RequestEntry
	callCount  map[string]int
}

// RequestEntry records one incoming request.
type RequestEntry struct {
	Method string
	Path   string
	Cookie string // raw Cookie header
	Form   map[string]string
}

// NewMockServer creates a running mock server. Callers must Close it.
func NewMockServer() *MockServer {
	ms := &MockServer{
		responses: make(map[string]*MockResponse),
		callCount: make(map[string]int),
		defaultRes: &MockResponse{
			Status: http.StatusOK,
			Body:   `{}`,
		},
	}
	ms.server = httptest.NewServer(http.HandlerFunc(ms.handle))
	return ms
}

// URL returns the base URL of the mock server.
func (ms *MockServer) URL() string {
	return ms.server.URL
}

// Close shuts down the mock server.
func (ms *MockServer) Close() {
	ms.server.Close()
}

// SetResponse configures the response for a specific path.
func (ms *MockServer) SetResponse(path string, response *MockResponse) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.responses[path] = response
}

// SetDefaultResponse configures the response for unconfigured paths.
func (ms *MockServer) SetDefaultResponse(response *MockResponse) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.defaultRes = response
}

// CallCount returns how many requests hit the given path.
func (ms *MockServer) CallCount(path string) int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.callCount[path]
}

// TotalCalls returns the number of requests received on any path.
func (ms *MockServer) TotalCalls() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.requestLog)
}

// LastRequest returns the most recent request to the given path, or nil.
func (ms *MockServer) LastRequest(path string) *RequestEntry {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for i := len(ms.requestLog) - 1; i >= 0; i-- {
		if ms.requestLog[i].Path == path {
			entry := ms.requestLog[i]
			return &entry
		}
	}
	return nil
}

func (ms *MockServer) handle(w http.ResponseWriter, r *http.Request) {
	entry := RequestEntry{
		Method: r.Method,
		Path:   r.URL.Path,
		Cookie: r.Header.Get("Cookie"),
	}
	if err := r.ParseForm(); err == nil && len(r.PostForm) > 0 {
		entry.Form = make(map[string]string, len(r.PostForm))
		for key := range r.PostForm {
			entry.Form[key] = r.PostForm.Get(key)
		}
	}

	ms.mu.Lock()
	ms.requestLog = append(ms.requestLog, entry)
	ms.callCount[r.URL.Path]++
	response, ok := ms.responses[r.URL.Path]
	if !ok {
		response = ms.defaultRes
	}
	ms.mu.Unlock()

	for key, value := range response.Headers {
		w.Header().Add(key, value)
	}
	w.WriteHeader(response.Status)
	w.Write([]byte(response.Body))
}

// ClassicMockServer is a MockServer pre-configured with the classic Reddit
// endpoints: a login handler issuing a session cookie and listing payloads
// carrying a modhash.
type ClassicMockServer struct {
	*MockServer
}

// Default fixtures served by NewClassicMockServer.
const (
	TestSessionCookie = "ABC123"
	TestModhash       = "modhash-1"
)

// NewClassicMockServer creates a mock server pre-configured for the classic
// cookie/modhash API.
func NewClassicMockServer() *ClassicMockServer {
	server := &ClassicMockServer{MockServer: NewMockServer()}

	server.SetResponse("/api/login", &MockResponse{
		Status: http.StatusOK,
		Body:   `{}`,
		Headers: map[string]string{
			"Set-Cookie": "reddit_session=" + TestSessionCookie + "; Path=/",
		},
	})

	server.SetResponse("/r/golang.json", &MockResponse{
		Status: http.StatusOK,
		Body: `{"kind":"Listing","data":{"modhash":"` + TestModhash + `","children":[` +
			`{"kind":"t3","data":{"id":"aaa111","name":"t3_aaa111","title":"first","author":"alice","score":10}},` +
			`{"kind":"t3","data":{"id":"bbb222","name":"t3_bbb222","title":"second","author":"bob","score":5}}]}}`,
	})

	server.SetResponse("/comments/aaa111.json", &MockResponse{
		Status: http.StatusOK,
		Body: `[{"kind":"Listing","data":{"modhash":"` + TestModhash + `","children":[` +
			`{"kind":"t3","data":{"id":"aaa111","name":"t3_aaa111","title":"first","author":"alice","num_comments":2}}]}},` +
			`{"kind":"Listing","data":{"children":[` +
			`{"kind":"t1","data":{"id":"ccc333","name":"t1_ccc333","author":"carol","body":"nice"}},` +
			`{"kind":"t1","data":{"id":"ddd444","name":"t1_ddd444","author":"dave","body":"agreed"}}]}}]`,
	})

	return server
}

// FailLogin reconfigures the login endpoint to answer without a session
// cookie, as the site does for wrong credentials.
func (cms *ClassicMockServer) FailLogin() {
	cms.SetResponse("/api/login", &MockResponse{
		Status: http.StatusOK,
		Body:   `{"json":{"errors":[["WRONG_PASSWORD","invalid password","passwd"]]}}`,
	})
}
