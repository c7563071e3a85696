package graw

import (
	"context"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/jamesprial/go-reddit-oauth/internal"
	"github.com/jamesprial/go-reddit-oauth/pkg/types"
)

// Endpoint describes one Reddit API GET endpoint that decodes into S.
type Endpoint[S any] interface {
	// QueryParams returns the query string pairs in the order they are sent.
	QueryParams() []types.QueryParam
	// URL returns the request path relative to the API base URL, such as "r/golang/top".
	URL() string
	// Decode converts the parsed JSON response into S. Shape violations are
	// reported as *errors.InternalError.
	Decode(doc gjson.Result) (S, error)
}

// Request is an Endpoint that can execute itself against a Client.
type Request[S any] interface {
	Endpoint[S]
	Execute(ctx context.Context, c *Client) (S, error)
}

// Send executes e with the client's current access token and decodes the response.
//
// Errors, by stage:
//   - no access token: *errors.StateError wrapping errors.ErrNoAccessToken
//   - transport or body read: *errors.RequestError
//   - non-2xx status: *errors.APIError
//   - body is not JSON: *errors.ParseError
//   - unexpected JSON shape: *errors.InternalError
func Send[S any](ctx context.Context, c *Client, e Endpoint[S]) (S, error) {
	var zero S

	path := e.URL()
	req, err := c.NewRequest(ctx, http.MethodGet, path, e.QueryParams())
	if err != nil {
		return zero, err
	}

	c.logger.Debug("sending request", "path", path, "query", req.URL.RawQuery)

	body, err := c.DoRaw(req)
	if err != nil {
		return zero, err
	}

	doc, err := internal.ParseBody(path, body)
	if err != nil {
		return zero, err
	}

	out, err := e.Decode(doc)
	if err != nil {
		return zero, err
	}
	return out, nil
}
