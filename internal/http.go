package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	pkgerrs "github.com/jamesprial/go-reddit-oauth/pkg/errors"
	"github.com/jamesprial/go-reddit-oauth/pkg/types"
)

// maxErrorBodyBytes bounds how much of a failed response is kept on an APIError.
const maxErrorBodyBytes = 1024

// userAgentTransport sets the User-Agent header on every outbound request,
// including the token grants performed by the oauth2 package.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}

// WithUserAgent returns a shallow copy of httpClient whose transport stamps
// every request with userAgent. A nil httpClient is treated as http.DefaultClient.
func WithUserAgent(httpClient *http.Client, userAgent string) *http.Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	c := *httpClient
	c.Transport = &userAgentTransport{base: base, userAgent: userAgent}
	return &c
}

// Client manages communication with the Reddit API.
type Client struct {
	client    *http.Client
	BaseURL   *url.URL
	UserAgent string
	logger    *slog.Logger
}

// NewClient returns a new Reddit API client.
// If a nil httpClient is provided, http.DefaultClient will be used.
func NewClient(httpClient *http.Client, baseURL string, userAgent string, logger *slog.Logger) (*Client, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	parsedURL, err := NewValidator().ValidateEndpointURL("BaseURL", baseURL)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(parsedURL.Path, "/") {
		parsedURL.Path += "/"
	}

	return &Client{
		client:    httpClient,
		BaseURL:   parsedURL,
		UserAgent: userAgent,
		logger:    logger,
	}, nil
}

// HTTPClient returns the underlying transport.
func (c *Client) HTTPClient() *http.Client {
	return c.client
}

// ResolveURL resolves path against BaseURL.
func (c *Client) ResolveURL(path string) (*url.URL, error) {
	u, err := c.BaseURL.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, &pkgerrs.RequestError{URL: path, Message: "failed to resolve request URL", Err: err}
	}
	return u, nil
}

// NewRequest creates an authenticated API request. The path is resolved
// relative to BaseURL and params are encoded in the order given.
func (c *Client) NewRequest(ctx context.Context, method, path string, params []types.QueryParam, token string) (*http.Request, error) {
	u, err := c.ResolveURL(path)
	if err != nil {
		return nil, err
	}
	u.RawQuery = EncodeQuery(params)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, &pkgerrs.RequestError{URL: u.String(), Message: "failed to create request", Err: err}
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.UserAgent)

	return req, nil
}

// DoRaw executes an HTTP request and returns the raw response bytes.
// Transport and read failures are RequestErrors; non-2xx responses are APIErrors.
func (c *Client) DoRaw(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &pkgerrs.RequestError{
			URL:     req.URL.String(),
			Message: fmt.Sprintf("error occurred while sending request: %v", err),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &pkgerrs.RequestError{
			URL:     req.URL.String(),
			Message: fmt.Sprintf("error occurred while reading response: %v", err),
			Err:     err,
		}
	}

	c.logger.Debug("reddit API response",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(body) > maxErrorBodyBytes {
			body = body[:maxErrorBodyBytes]
		}
		return nil, &pkgerrs.APIError{
			StatusCode: resp.StatusCode,
			Message:    "request failed",
			Body:       string(body),
		}
	}

	return body, nil
}

// EncodeQuery encodes params in order. url.Values.Encode sorts by key, which
// would lose the declared parameter order.
func EncodeQuery(params []types.QueryParam) string {
	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}
