package main

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesprial/go-reddit-oauth/pkg/types"
	"github.com/jamesprial/go-reddit-oauth/test_generators"
	"github.com/jamesprial/go-reddit-oauth/test_helpers"
)

// syncBuffer is a bytes.Buffer safe to read while a command writes to it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func executeCommand(ctx context.Context, stdout, stderr *syncBuffer, args ...string) error {
	root := newRootCommand("test")
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// setEnv points the command at server and clears anything inherited.
func setEnv(t *testing.T, server *test_helpers.RedditMockServer, redirectURL, refreshToken string) {
	t.Helper()
	t.Chdir(t.TempDir())

	values := map[string]string{
		"REDDIT_CLIENT_ID":     "cli-client",
		"REDDIT_REDIRECT_URL":  redirectURL,
		"REDDIT_REFRESH_TOKEN": refreshToken,
		"REDDIT_USER_AGENT":    "test:graw-cli:1.0",
		"REDDIT_HTTP_TIMEOUT":  "5s",
		"REDDIT_BASE_URL":      server.BaseURL(),
		"REDDIT_AUTHORIZE_URL": server.URL() + "/api/v1/authorize",
		"REDDIT_TOKEN_URL":     server.TokenURL(),
		"ENVIRONMENT":          "production",
	}
	for k, v := range values {
		t.Setenv(k, v)
		if v == "" {
			os.Unsetenv(k)
		}
	}
}

func TestScopesCommand(t *testing.T) {
	var stdout, stderr syncBuffer
	require.NoError(t, executeCommand(context.Background(), &stdout, &stderr, "scopes"))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, len(types.AllScopes()))
	assert.Contains(t, lines, "identity")
	assert.Contains(t, lines, "wikiread")
}

func TestListingCommand(t *testing.T) {
	server := test_helpers.NewRedditMockServer()
	defer server.Close()

	posts := []types.Post{
		{Subreddit: "golang", Title: "Go 1.25 is released", Score: 812},
		{Subreddit: "golang", Title: strings.Repeat("long title ", 20), Score: 3},
	}
	server.SetListing("golang", "top", http.StatusOK, test_generators.ListingJSON(posts, "t3_next", ""))
	setEnv(t, server, "http://localhost:5555", "cli-refresh")

	var stdout, stderr syncBuffer
	err := executeCommand(context.Background(), &stdout, &stderr, "listing", "golang", "--type", "top", "--time", "week", "--limit", "2")
	require.NoError(t, err, "stderr: %s", stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "SCORE")
	assert.Contains(t, out, "Go 1.25 is released")
	assert.Contains(t, out, "...")
	assert.Contains(t, out, "after:  t3_next")
	assert.NotContains(t, out, "before:")

	entry, ok := server.LastRequest("/r/golang/top")
	require.True(t, ok)
	assert.Equal(t, "limit=2&t=week", entry.Query.Encode())
	assert.Equal(t, "test:graw-cli:1.0", entry.Headers.Get("User-Agent"))

	tokenReq, ok := server.LastRequest(test_helpers.TokenPath)
	require.True(t, ok)
	assert.Equal(t, "cli-refresh", tokenReq.Form.Get("refresh_token"))
}

func TestListingCommand_Errors(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		refreshToken string
		wantErr      string
	}{
		{name: "top without time", args: []string{"listing", "golang", "--type", "top"}, refreshToken: "r", wantErr: "t parameter"},
		{name: "unknown type", args: []string{"listing", "golang", "--type", "sideways"}, refreshToken: "r", wantErr: "invalid --type"},
		{name: "unknown time", args: []string{"listing", "golang", "--type", "top", "--time", "decade"}, refreshToken: "r", wantErr: "invalid --time"},
		{name: "random with limit", args: []string{"listing", "golang", "--type", "random", "--limit", "5"}, refreshToken: "r", wantErr: "random"},
		{name: "bad subreddit", args: []string{"listing", "r/golang"}, refreshToken: "r", wantErr: "subreddit"},
		{name: "no refresh token", args: []string{"listing", "golang"}, wantErr: "REDDIT_REFRESH_TOKEN"},
		{name: "missing subreddit", args: []string{"listing"}, refreshToken: "r", wantErr: "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := test_helpers.NewRedditMockServer()
			defer server.Close()
			setEnv(t, server, "http://localhost:5555", tt.refreshToken)

			var stdout, stderr syncBuffer
			err := executeCommand(context.Background(), &stdout, &stderr, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, server.GetRequestLog(), "validation failures must not reach the network")
		})
	}
}

func TestListingCommand_RevokedRefreshToken(t *testing.T) {
	server := test_helpers.NewRedditMockServer()
	defer server.Close()
	server.SetTokenResponse(http.StatusBadRequest, `{"error":"invalid_grant"}`)
	setEnv(t, server, "http://localhost:5555", "revoked")

	var stdout, stderr syncBuffer
	err := executeCommand(context.Background(), &stdout, &stderr, "listing", "golang")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token refresh")
	assert.Equal(t, 0, server.GetCallCount("/r/golang/hot"))
}

var authURLPattern = regexp.MustCompile(`https?://\S+/api/v1/authorize\?\S+`)

func TestAuthorizeCommand(t *testing.T) {
	server := test_helpers.NewRedditMockServer()
	defer server.Close()
	server.SetTokenResponse(http.StatusOK, test_helpers.TokenJSON("cli-access", "cli-new-refresh"))

	addr := test_helpers.FreeAddr(t)
	setEnv(t, server, "http://"+addr, "")

	var stdout, stderr syncBuffer
	errCh := make(chan error, 1)
	go func() {
		errCh <- executeCommand(context.Background(), &stdout, &stderr, "authorize", "--scope", "read", "--scope", "history", "--timeout", "10s")
	}()

	var authURL string
	require.Eventually(t, func() bool {
		authURL = authURLPattern.FindString(stdout.String())
		return authURL != ""
	}, 5*time.Second, 10*time.Millisecond, "authorize URL was never printed")

	u, err := url.Parse(authURL)
	require.NoError(t, err)
	assert.Equal(t, "read history", u.Query().Get("scope"))
	assert.Equal(t, "cli-client", u.Query().Get("client_id"))

	reply := test_helpers.Redirect(t, addr, "/?state="+url.QueryEscape(u.Query().Get("state"))+"&code=cli-code")
	assert.Contains(t, reply, "graw is authorized")

	require.NoError(t, <-errCh, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "REDDIT_REFRESH_TOKEN=cli-new-refresh")
}

func TestAuthorizeCommand_InvalidScope(t *testing.T) {
	var stdout, stderr syncBuffer
	err := executeCommand(context.Background(), &stdout, &stderr, "authorize", "--scope", "everything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --scope")
}

func TestAuthorizeCommand_Timeout(t *testing.T) {
	server := test_helpers.NewRedditMockServer()
	defer server.Close()
	setEnv(t, server, "http://"+test_helpers.FreeAddr(t), "")

	var stdout, stderr syncBuffer
	err := executeCommand(context.Background(), &stdout, &stderr, "authorize", "--timeout", "100ms")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authorization failed")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, server.GetCallCount(test_helpers.TokenPath))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a b", truncate("a \n  b", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééééééé...", truncate(strings.Repeat("é", 20), 10))
}
