// Package test_helpers provides an in-process Reddit stand-in for tests.
package test_helpers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"
)

// TokenPath is the token endpoint path served by RedditMockServer.
const TokenPath = "/api/v1/access_token"

// MockServer provides a configurable mock Reddit API server for testing
type MockServer struct {
	server *httptest.Server

	mu          sync.Mutex
	responses   map[string]*MockResponse
	defaultResp *MockResponse
	requestLog  []RequestEntry
	callCount   map[string]int
}

// RequestEntry logs incoming requests for debugging
type RequestEntry struct {
	Method       string
	Path         string
	Query        url.Values
	Form         url.Values
	Headers      http.Header
	Timestamp    time.Time
	ResponseCode int
}

// MockResponse defines a mock API response
type MockResponse struct {
	Status  int
	Body    string
	Headers map[string]string
	Delay   time.Duration
}

// NewMockServer creates a new mock server instance
func NewMockServer() *MockServer {
	ms := &MockServer{
		responses: make(map[string]*MockResponse),
		callCount: make(map[string]int),
		defaultResp: &MockResponse{
			Status: http.StatusNotFound,
			Body:   `{"message": "Not Found", "error": 404}`,
		},
	}
	ms.server = httptest.NewServer(ms)
	return ms
}

// URL returns the base URL of the mock server
func (ms *MockServer) URL() string {
	return ms.server.URL
}

// Client returns an http.Client wired to the server.
func (ms *MockServer) Client() *http.Client {
	return ms.server.Client()
}

// Close shuts down the mock server
func (ms *MockServer) Close() {
	ms.server.Close()
}

// SetResponse configures a response for a specific path
func (ms *MockServer) SetResponse(path string, response *MockResponse) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.responses[path] = response
}

// SetDefaultResponse configures the response for unregistered paths
func (ms *MockServer) SetDefaultResponse(response *MockResponse) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.defaultResp = response
}

// GetRequestLog returns the request log
func (ms *MockServer) GetRequestLog() []RequestEntry {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]RequestEntry{}, ms.requestLog...)
}

// LastRequest returns the most recent request to path.
func (ms *MockServer) LastRequest(path string) (RequestEntry, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for i := len(ms.requestLog) - 1; i >= 0; i-- {
		if ms.requestLog[i].Path == path {
			return ms.requestLog[i], true
		}
	}
	return RequestEntry{}, false
}

// GetCallCount returns the call count for a path
func (ms *MockServer) GetCallCount(path string) int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.callCount[path]
}

// ServeHTTP implements http.Handler
func (ms *MockServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	entry := RequestEntry{
		Method:    r.Method,
		Path:      r.URL.Path,
		Query:     r.URL.Query(),
		Headers:   r.Header.Clone(),
		Timestamp: time.Now(),
	}
	if r.Method == http.MethodPost {
		body, _ := io.ReadAll(r.Body)
		entry.Form, _ = url.ParseQuery(string(body))
	}

	ms.mu.Lock()
	response, exists := ms.responses[r.URL.Path]
	if !exists {
		response = ms.defaultResp
	}
	ms.callCount[r.URL.Path]++
	ms.mu.Unlock()

	if response.Delay > 0 {
		select {
		case <-time.After(response.Delay):
		case <-r.Context().Done():
		}
	}

	w.Header().Set("Content-Type", "application/json")
	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(response.Status)
	fmt.Fprint(w, response.Body)

	entry.ResponseCode = response.Status
	ms.mu.Lock()
	ms.requestLog = append(ms.requestLog, entry)
	ms.mu.Unlock()
}

// RedditMockServer provides Reddit-specific mock responses
type RedditMockServer struct {
	*MockServer
}

// NewRedditMockServer creates a mock server whose token endpoint grants
// access tokens to any refresh token.
func NewRedditMockServer() *RedditMockServer {
	server := &RedditMockServer{MockServer: NewMockServer()}
	server.SetTokenResponse(http.StatusOK, TokenJSON("mock-access-token", ""))
	return server
}

// TokenURL returns the absolute token endpoint URL.
func (rs *RedditMockServer) TokenURL() string {
	return rs.URL() + TokenPath
}

// BaseURL returns the API base URL, with a trailing slash.
func (rs *RedditMockServer) BaseURL() string {
	return rs.URL() + "/"
}

// SetTokenResponse configures the token endpoint reply.
func (rs *RedditMockServer) SetTokenResponse(status int, body string) {
	rs.SetResponse(TokenPath, &MockResponse{Status: status, Body: body})
}

// SetListing serves body for the listing at "/r/<subreddit>/<sort>".
func (rs *RedditMockServer) SetListing(subreddit, sort string, status int, body string) {
	rs.SetResponse("/r/"+subreddit+"/"+sort, &MockResponse{Status: status, Body: body})
}

// TokenJSON renders a token endpoint response. An empty refreshToken is omitted.
func TokenJSON(accessToken, refreshToken string) string {
	if refreshToken == "" {
		return fmt.Sprintf(`{"access_token":%q,"token_type":"bearer","expires_in":3600,"scope":"read"}`, accessToken)
	}
	return fmt.Sprintf(`{"access_token":%q,"token_type":"bearer","expires_in":3600,"refresh_token":%q,"scope":"read"}`, accessToken, refreshToken)
}
