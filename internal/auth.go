package internal

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	pkgerrs "github.com/jamesprial/go-reddit-oauth/pkg/errors"
	"github.com/jamesprial/go-reddit-oauth/pkg/types"
)

// durationParam asks Reddit for a permanent grant, which is what makes it
// issue a refresh token.
const (
	durationParam = "duration"
	durationValue = "permanent"
)

// Endpoints holds the provider authorization and token URLs.
type Endpoints struct {
	AuthorizeURL string
	TokenURL     string
}

// OAuthClient runs Reddit's authorization code flow and keeps the resulting
// access and refresh tokens. It is safe for concurrent use; token exchanges
// are serialized.
type OAuthClient struct {
	config      *oauth2.Config
	redirectURL *url.URL
	httpClient  *http.Client
	logger      *slog.Logger

	// exchangeMu serializes network operations that replace tokens.
	exchangeMu sync.Mutex

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

// NewOAuthClient creates an OAuth client for clientID that redirects to
// redirectURL. Malformed redirect or endpoint URLs are reported as ConfigErrors.
// Token requests are sent through httpClient.
func NewOAuthClient(clientID, redirectURL string, endpoints Endpoints, httpClient *http.Client, logger *slog.Logger) (*OAuthClient, error) {
	v := NewValidator()
	if clientID == "" {
		return nil, &pkgerrs.ConfigError{Field: "ClientID", Message: "client ID cannot be empty"}
	}
	redirect, err := v.ValidateEndpointURL("RedirectURL", redirectURL)
	if err != nil {
		return nil, err
	}
	if _, err := v.ValidateEndpointURL("AuthorizeURL", endpoints.AuthorizeURL); err != nil {
		return nil, err
	}
	if _, err := v.ValidateEndpointURL("TokenURL", endpoints.TokenURL); err != nil {
		return nil, err
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &OAuthClient{
		config: &oauth2.Config{
			ClientID: clientID,
			Endpoint: oauth2.Endpoint{
				AuthURL:   endpoints.AuthorizeURL,
				TokenURL:  endpoints.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
			RedirectURL: redirectURL,
		},
		redirectURL: redirect,
		httpClient:  httpClient,
		logger:      logger,
	}, nil
}

// RedirectURL returns the configured redirect URL.
func (c *OAuthClient) RedirectURL() string {
	return c.config.RedirectURL
}

// AccessToken returns the current access token and whether one is set.
func (c *OAuthClient) AccessToken() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken, c.accessToken != ""
}

// RefreshToken returns the current refresh token and whether one is set.
func (c *OAuthClient) RefreshToken() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshToken, c.refreshToken != ""
}

// SetRefreshToken seeds a refresh token obtained from an earlier flow.
func (c *OAuthClient) SetRefreshToken(token string) {
	c.mu.Lock()
	c.refreshToken = token
	c.mu.Unlock()
}

// AuthorizationURL builds the URL the user must visit to grant scopes, and
// the CSRF token that the callback must echo back as its state.
func (c *OAuthClient) AuthorizationURL(scopes []types.Scope) (string, types.CsrfToken) {
	cfg := *c.config
	cfg.Scopes = scopeValues(scopes)

	csrf := types.CsrfToken(uuid.NewString())
	authURL := cfg.AuthCodeURL(csrf.Secret(), oauth2.SetAuthURLParam(durationParam, durationValue))

	c.logger.Debug("built authorization URL", "scopes", cfg.Scopes)
	return authURL, csrf
}

// scopeValues maps scopes to their provider strings, dropping duplicates and
// undeclared values while keeping the caller's order.
func scopeValues(scopes []types.Scope) []string {
	seen := make(map[types.Scope]bool, len(scopes))
	values := make([]string, 0, len(scopes))
	for _, s := range scopes {
		if seen[s] || !s.Valid() {
			continue
		}
		seen[s] = true
		values = append(values, s.Value())
	}
	return values
}

// RunAuthorizationFlow listens on the redirect URL's host and port for a
// single callback, answers it with successBody, checks its state against
// expected, and exchanges the code for tokens.
//
// The call blocks until one connection has been handled or ctx is done. The
// success page is written before the state is compared, so a browser sees it
// even when the flow then fails with ErrStateMismatch. No tokens are changed
// unless the whole flow succeeds.
func (c *OAuthClient) RunAuthorizationFlow(ctx context.Context, expected types.CsrfToken, successBody string) error {
	addr, err := c.listenAddr()
	if err != nil {
		return err
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return &pkgerrs.AuthFlowError{Kind: pkgerrs.ErrListener, Err: err}
	}
	defer ln.Close()

	// Accept does not take a context; closing the listener unblocks it.
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	c.logger.Info("waiting for oauth callback", "addr", ln.Addr().String())

	cb, err := captureCallback(ln, successBody)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &pkgerrs.AuthFlowError{Kind: pkgerrs.ErrListener, Message: "flow cancelled", Err: ctxErr}
		}
		return err
	}

	if cb.state != expected.Secret() {
		return &pkgerrs.AuthFlowError{
			Kind:    pkgerrs.ErrStateMismatch,
			Message: fmt.Sprintf("%s, %s", cb.state, expected.Secret()),
		}
	}

	c.exchangeMu.Lock()
	defer c.exchangeMu.Unlock()

	token, err := c.config.Exchange(c.tokenContext(ctx), cb.code)
	if err != nil {
		return &pkgerrs.AuthFlowError{Kind: pkgerrs.ErrTokenExchange, Err: err}
	}
	if token.RefreshToken == "" {
		return &pkgerrs.AuthFlowError{Kind: pkgerrs.ErrNoRefreshTokenReceived}
	}

	c.mu.Lock()
	c.accessToken = token.AccessToken
	c.refreshToken = token.RefreshToken
	c.mu.Unlock()

	c.logger.Info("oauth flow complete", "token_type", token.TokenType, "expiry", token.Expiry)
	return nil
}

// RefreshAccessToken exchanges the stored refresh token for a new access
// token. The refresh token itself is kept as is.
func (c *OAuthClient) RefreshAccessToken(ctx context.Context) error {
	c.exchangeMu.Lock()
	defer c.exchangeMu.Unlock()

	refreshToken, ok := c.RefreshToken()
	if !ok {
		return &pkgerrs.AuthFlowError{Kind: pkgerrs.ErrNoRefreshToken}
	}

	src := c.config.TokenSource(c.tokenContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	token, err := src.Token()
	if err != nil {
		return &pkgerrs.AuthFlowError{Kind: pkgerrs.ErrTokenExchange, Err: err}
	}

	c.mu.Lock()
	c.accessToken = token.AccessToken
	c.mu.Unlock()

	c.logger.Debug("refreshed access token", "expiry", token.Expiry)
	return nil
}

// tokenContext makes the oauth2 package use our transport for token requests.
func (c *OAuthClient) tokenContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// listenAddr derives the listener address from the redirect URL. The port
// must be explicit.
func (c *OAuthClient) listenAddr() (string, error) {
	host := c.redirectURL.Hostname()
	if host == "" {
		return "", &pkgerrs.AuthFlowError{Kind: pkgerrs.ErrListener, Message: "cannot get host"}
	}
	port := c.redirectURL.Port()
	if port == "" {
		return "", &pkgerrs.AuthFlowError{Kind: pkgerrs.ErrListener, Message: "cannot get port"}
	}
	return net.JoinHostPort(host, port), nil
}
