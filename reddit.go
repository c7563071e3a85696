package graw

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jamesprial/go-reddit-oauth/internal"
	pkgerrs "github.com/jamesprial/go-reddit-oauth/pkg/errors"
	"github.com/jamesprial/go-reddit-oauth/pkg/types"
)

const (
	// DefaultBaseURL is the default Reddit API base URL
	DefaultBaseURL = "https://oauth.reddit.com/"
	// DefaultAuthorizeURL is the page users visit to grant scopes
	DefaultAuthorizeURL = "https://www.reddit.com/api/v1/authorize"
	// DefaultTokenURL is the endpoint authorization codes and refresh tokens are exchanged at
	DefaultTokenURL = "https://www.reddit.com/api/v1/access_token"
	// DefaultUserAgent is the default user agent string
	DefaultUserAgent = "go-reddit-oauth/0.1"
	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second
)

// Config holds the configuration for the Reddit client.
//
// Reddit "installed app" credentials have no client secret, so only ClientID
// and RedirectURL are required. RedirectURL must match the value registered
// with the app and carry an explicit port, since the authorization flow
// listens on it for the callback.
//
//	config := &Config{
//		ClientID:    "your-client-id",
//		RedirectURL: "http://localhost:5555",
//		UserAgent:   "desktop:myapp:1.0 (by /u/yourusername)",
//	}
type Config struct {
	// ClientID identifies the application. Required.
	ClientID string

	// RedirectURL is the callback URL registered with the application. Required.
	RedirectURL string

	// RefreshToken from an earlier authorization. Optional; when set,
	// RefreshToken can obtain an access token without running the flow again.
	RefreshToken string

	// UserAgent string to identify your application to Reddit.
	// Defaults to DefaultUserAgent. It is sent on API calls and token grants alike.
	UserAgent string

	// BaseURL for the Reddit API. Defaults to DefaultBaseURL.
	BaseURL string

	// AuthorizeURL and TokenURL for the OAuth endpoints.
	// Default to DefaultAuthorizeURL and DefaultTokenURL.
	AuthorizeURL string
	TokenURL     string

	// HTTPClient to use for requests.
	// Defaults to a client with DefaultTimeout if not specified.
	HTTPClient *http.Client

	// Logger for structured diagnostics. Optional; nothing is logged when nil.
	Logger *slog.Logger
}

// Client is the Reddit API client. It owns the OAuth state for one session
// and executes requests with the current access token.
//
// A Client is safe for concurrent use. Requests only read the access token,
// while RefreshToken and OAuthFlow replace it one at a time.
type Client struct {
	oauth  *internal.OAuthClient
	api    *internal.Client
	logger *slog.Logger
}

// NewClient creates a new Reddit client with the provided configuration.
// Missing optional fields are filled with defaults; config itself is not modified.
//
// Returns a *errors.ConfigError if:
//   - config is nil
//   - ClientID or RedirectURL are missing
//   - UserAgent contains newlines or is too long
//   - any of the URLs is not an absolute http or https URL
//
// No network calls are made. Call RefreshToken or run OAuthFlow before
// executing requests.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, &pkgerrs.ConfigError{Message: "config cannot be nil"}
	}
	cfg := *config

	if cfg.ClientID == "" {
		return nil, &pkgerrs.ConfigError{Field: "ClientID", Message: "client ID is required"}
	}
	if cfg.RedirectURL == "" {
		return nil, &pkgerrs.ConfigError{Field: "RedirectURL", Message: "redirect URL is required"}
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.AuthorizeURL == "" {
		cfg.AuthorizeURL = DefaultAuthorizeURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	if err := internal.NewValidator().ValidateUserAgent(cfg.UserAgent); err != nil {
		return nil, err
	}

	httpClient := internal.WithUserAgent(cfg.HTTPClient, cfg.UserAgent)

	oauth, err := internal.NewOAuthClient(cfg.ClientID, cfg.RedirectURL, internal.Endpoints{
		AuthorizeURL: cfg.AuthorizeURL,
		TokenURL:     cfg.TokenURL,
	}, httpClient, cfg.Logger)
	if err != nil {
		return nil, err
	}
	if cfg.RefreshToken != "" {
		oauth.SetRefreshToken(cfg.RefreshToken)
	}

	api, err := internal.NewClient(httpClient, cfg.BaseURL, cfg.UserAgent, cfg.Logger)
	if err != nil {
		return nil, err
	}

	return &Client{
		oauth:  oauth,
		api:    api,
		logger: cfg.Logger,
	}, nil
}

// RefreshToken exchanges the stored refresh token for a fresh access token.
// The refresh token itself is kept. Failures are returned as *errors.OAuthError
// wrapping the flow error; errors.Is(err, errors.ErrNoRefreshToken) reports a
// client that has never been authorized.
func (c *Client) RefreshToken(ctx context.Context) error {
	if err := c.oauth.RefreshAccessToken(ctx); err != nil {
		return &pkgerrs.OAuthError{Operation: "token refresh", Err: err}
	}
	return nil
}

// OAuthURL returns the URL the user must open to authorize scopes, and the
// CSRF token to pass to OAuthFlow. Each call produces a new token.
func (c *Client) OAuthURL(scopes ...types.Scope) (string, types.CsrfToken) {
	return c.oauth.AuthorizationURL(scopes)
}

// OAuthFlow waits for the browser to be redirected back to RedirectURL,
// answers it with successMessage, verifies csrf, and exchanges the code for
// an access and refresh token. It blocks until one callback has been handled
// or ctx is done. On failure no tokens are changed.
func (c *Client) OAuthFlow(ctx context.Context, csrf types.CsrfToken, successMessage string) error {
	if err := c.oauth.RunAuthorizationFlow(ctx, csrf, successMessage); err != nil {
		return &pkgerrs.OAuthError{Operation: "authorization flow", Err: err}
	}
	return nil
}

// HTTPClient returns the transport used for API calls and token grants.
func (c *Client) HTTPClient() *http.Client {
	return c.api.HTTPClient()
}

// AccessToken returns the current access token and whether one is set.
func (c *Client) AccessToken() (string, bool) {
	return c.oauth.AccessToken()
}

// CurrentRefreshToken returns the refresh token held by the client, so it can
// be persisted and passed back through Config.RefreshToken later.
func (c *Client) CurrentRefreshToken() (string, bool) {
	return c.oauth.RefreshToken()
}

// NewRequest builds an authenticated request for path, resolved against the
// API base URL, with params encoded in order. It fails with a
// *errors.StateError wrapping errors.ErrNoAccessToken when no access token has
// been obtained yet; it never refreshes implicitly.
func (c *Client) NewRequest(ctx context.Context, method, path string, params []types.QueryParam) (*http.Request, error) {
	token, ok := c.oauth.AccessToken()
	if !ok {
		return nil, &pkgerrs.StateError{Operation: method + " " + path, Err: pkgerrs.ErrNoAccessToken}
	}
	return c.api.NewRequest(ctx, method, path, params, token)
}

// DoRaw sends req and returns the response body. Transport failures are
// *errors.RequestError and non-2xx responses are *errors.APIError.
func (c *Client) DoRaw(req *http.Request) ([]byte, error) {
	return c.api.DoRaw(req)
}

// GetListing fetches one page of a subreddit listing.
func (c *Client) GetListing(ctx context.Context, request *ListingRequest) (*types.Listing, error) {
	if request == nil {
		return nil, &pkgerrs.UserError{Message: "listing request cannot be nil"}
	}
	listing, err := request.Execute(ctx, c)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}
