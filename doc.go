// Package graw is a Reddit API client for installed applications that
// authenticate with the OAuth2 authorization code flow.
//
// # Overview
//
// The client covers two concerns. The first is authorization: building the
// consent URL, capturing the browser redirect on a local single-shot
// listener, and exchanging and refreshing tokens. The second is typed
// requests: every API call is an Endpoint that knows its path, its query
// parameters, and how to decode the response. Subreddit listings are the
// provided Endpoint.
//
// # Quick Start
//
//	client, err := graw.NewClient(&graw.Config{
//		ClientID:    "your-client-id",
//		RedirectURL: "http://localhost:5555",
//		UserAgent:   "desktop:myapp:1.0 (by /u/yourusername)",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Authorization
//
// OAuthURL returns the URL to show the user and the CSRF token that the
// redirect must echo. OAuthFlow then blocks until the browser is redirected
// to RedirectURL:
//
//	authURL, csrf := client.OAuthURL(types.ScopeRead, types.ScopeIdentity)
//	fmt.Println("Open:", authURL)
//
//	if err := client.OAuthFlow(ctx, csrf, "You can close this tab."); err != nil {
//		log.Fatal(err)
//	}
//
// The flow always requests a permanent grant. Persist the refresh token from
// CurrentRefreshToken and pass it back through Config.RefreshToken on the next
// run; RefreshToken then obtains an access token without user interaction:
//
//	if err := client.RefreshToken(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// Tokens are never refreshed implicitly. A request made without an access
// token fails with errors.ErrNoAccessToken.
//
// # Listings
//
// Listing requests are assembled with a builder, which enforces the rules of
// each listing type before anything is sent:
//
//	req, err := graw.NewListingRequestBuilder("golang", types.ListingTop).
//		Time(types.SortWeek).
//		Limit(25).
//		Build()
//	if err != nil {
//		log.Fatal(err) // *errors.UserError
//	}
//
//	listing, err := client.GetListing(ctx, req)
//
// Listing.After and Listing.Before are the cursors for the neighbouring pages.
//
// # Custom endpoints
//
// Any type implementing Endpoint can be sent with Send. The decode step
// receives the parsed JSON document; shape errors should be reported as
// *errors.InternalError so callers can tell them apart from transport,
// status and syntax failures.
//
// # Error Handling
//
// All errors are typed values from the pkg/errors package:
//
//	var apiErr *errors.APIError
//	if errors.As(err, &apiErr) {
//		log.Printf("reddit returned %d", apiErr.StatusCode)
//	}
//
// Authorization failures are *errors.OAuthError values that also match one
// of the flow sentinels, such as errors.ErrStateMismatch, through errors.Is.
//
// # Thread Safety
//
// A Client is safe for concurrent use. Requests read the current access
// token; RefreshToken and OAuthFlow replace it one at a time.
package graw
