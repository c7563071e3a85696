package graw

import (
	"context"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/jamesprial/go-reddit-oauth/internal"
	"github.com/jamesprial/go-reddit-oauth/pkg/types"
)

var _ Request[types.Listing] = (*ListingRequest)(nil)

// ListingRequest fetches one page of a subreddit listing. It is created by
// ListingRequestBuilder.Build and cannot be changed afterwards.
type ListingRequest struct {
	subreddit   string
	listingType types.ListingType

	after  string
	before string
	limit  int
	geo    string
	time   types.SortTime

	set internal.ListingFields
}

// Subreddit returns the subreddit, or "+"-joined multireddit, being listed.
func (r *ListingRequest) Subreddit() string { return r.subreddit }

// ListingType returns the ordering of the listing.
func (r *ListingRequest) ListingType() types.ListingType { return r.listingType }

// URL returns the listing path, for example "r/golang/top".
func (r *ListingRequest) URL() string {
	return "r/" + r.subreddit + "/" + r.listingType.Path()
}

// QueryParams returns the parameters that were set, always in the order
// after, before, limit, g, t.
func (r *ListingRequest) QueryParams() []types.QueryParam {
	params := make([]types.QueryParam, 0, 5)
	if r.set.After {
		params = append(params, types.QueryParam{Key: "after", Value: r.after})
	}
	if r.set.Before {
		params = append(params, types.QueryParam{Key: "before", Value: r.before})
	}
	if r.set.Limit {
		params = append(params, types.QueryParam{Key: "limit", Value: strconv.Itoa(r.limit)})
	}
	if r.set.Geo {
		params = append(params, types.QueryParam{Key: "g", Value: r.geo})
	}
	if r.set.Time {
		params = append(params, types.QueryParam{Key: "t", Value: r.time.String()})
	}
	return params
}

// Decode reads a Listing thing. The pagination cursors are optional; every
// child must carry subreddit, title, selftext and a non-negative integer score.
func (r *ListingRequest) Decode(doc gjson.Result) (types.Listing, error) {
	children, err := internal.StrictArray(doc, "data.children")
	if err != nil {
		return types.Listing{}, err
	}

	posts := make([]types.Post, 0, len(children))
	for _, child := range children {
		post, err := decodePost(child)
		if err != nil {
			return types.Listing{}, err
		}
		posts = append(posts, post)
	}

	return types.Listing{
		After:  internal.LenientString(doc, "data.after"),
		Before: internal.LenientString(doc, "data.before"),
		Posts:  posts,
	}, nil
}

func decodePost(child gjson.Result) (types.Post, error) {
	var (
		post types.Post
		err  error
	)
	if post.Subreddit, err = internal.StrictString(child, "data.subreddit"); err != nil {
		return types.Post{}, err
	}
	if post.Title, err = internal.StrictString(child, "data.title"); err != nil {
		return types.Post{}, err
	}
	if post.Selftext, err = internal.StrictString(child, "data.selftext"); err != nil {
		return types.Post{}, err
	}
	if post.Score, err = internal.StrictUint64(child, "data.score"); err != nil {
		return types.Post{}, err
	}
	return post, nil
}

// Execute sends the request with c's current access token.
func (r *ListingRequest) Execute(ctx context.Context, c *Client) (types.Listing, error) {
	return Send[types.Listing](ctx, c, r)
}

// ListingRequestBuilder assembles a ListingRequest. Setters record a value and
// return the builder; all rules are checked by Build.
//
//	req, err := graw.NewListingRequestBuilder("golang", types.ListingTop).
//		Time(types.SortDay).
//		Limit(5).
//		Build()
type ListingRequestBuilder struct {
	req ListingRequest
}

// NewListingRequestBuilder starts a request for subreddit ordered by listingType.
func NewListingRequestBuilder(subreddit string, listingType types.ListingType) *ListingRequestBuilder {
	return &ListingRequestBuilder{req: ListingRequest{subreddit: subreddit, listingType: listingType}}
}

// After sets the fullname of the item to continue after.
func (b *ListingRequestBuilder) After(fullname string) *ListingRequestBuilder {
	b.req.after, b.req.set.After = fullname, true
	return b
}

// Before sets the fullname of the item to page back from.
func (b *ListingRequestBuilder) Before(fullname string) *ListingRequestBuilder {
	b.req.before, b.req.set.Before = fullname, true
	return b
}

// Limit sets the maximum number of items to return (1 to 100).
func (b *ListingRequestBuilder) Limit(limit int) *ListingRequestBuilder {
	b.req.limit, b.req.set.Limit = limit, true
	return b
}

// Geo sets the g parameter, a geographic filter. Required by best listings
// and rejected by every other type.
func (b *ListingRequestBuilder) Geo(g string) *ListingRequestBuilder {
	b.req.geo, b.req.set.Geo = g, true
	return b
}

// Time sets the t parameter. Required by top and controversial listings and
// rejected by every other type.
func (b *ListingRequestBuilder) Time(t types.SortTime) *ListingRequestBuilder {
	b.req.time, b.req.set.Time = t, true
	return b
}

// Build validates the collected parameters and returns the request. Any
// violation is a *errors.UserError naming the offending field. The builder
// may be reused; the returned request does not change with it.
func (b *ListingRequestBuilder) Build() (*ListingRequest, error) {
	v := internal.NewValidator()

	if err := v.ValidateSubredditName(b.req.subreddit); err != nil {
		return nil, err
	}
	if err := v.ValidateListing(b.req.listingType, b.req.set); err != nil {
		return nil, err
	}
	if b.req.set.Limit {
		if err := v.ValidateLimit(b.req.limit); err != nil {
			return nil, err
		}
	}
	if b.req.set.Time {
		if err := v.ValidateSortTime(b.req.time); err != nil {
			return nil, err
		}
	}

	req := b.req
	return &req, nil
}
