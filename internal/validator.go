package internal

import (
	"fmt"
	"net/url"
	"strings"

	pkgerrs "github.com/jamesprial/go-reddit-oauth/pkg/errors"
	"github.com/jamesprial/go-reddit-oauth/pkg/types"
)

const (
	// Subreddit name constraints
	minSubredditLength = 2
	maxSubredditLength = 21

	// Pagination constraints
	minListingLimit = 1
	maxListingLimit = 100

	// User agent constraints
	maxUserAgentLength = 256
)

// ListingFields records which optional listing parameters a builder has set.
type ListingFields struct {
	After  bool
	Before bool
	Limit  bool
	Geo    bool
	Time   bool
}

// Validator provides validation operations for Reddit API parameters.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateListing checks the optional parameters set on a listing request
// against the rules of its listing type. It performs no I/O.
//
// The g parameter is required for best listings and rejected elsewhere, t is
// required for top and controversial listings and rejected elsewhere, and
// random listings accept no refinement at all.
func (v *Validator) ValidateListing(listing types.ListingType, fields ListingFields) error {
	if !listing.Valid() {
		return &pkgerrs.UserError{Field: "listing_type", Message: fmt.Sprintf("unknown listing type %d", int(listing))}
	}

	if listing == types.ListingRandom {
		switch {
		case fields.After:
			return randomRefinementError("after")
		case fields.Before:
			return randomRefinementError("before")
		case fields.Limit:
			return randomRefinementError("limit")
		case fields.Geo:
			return randomRefinementError("g")
		case fields.Time:
			return randomRefinementError("t")
		}
		return nil
	}

	if listing == types.ListingBest {
		if !fields.Geo {
			return &pkgerrs.UserError{Field: "g", Message: "best listings must have g parameter"}
		}
	} else if fields.Geo {
		return &pkgerrs.UserError{Field: "g", Message: fmt.Sprintf("g parameter is not supported by %s listings", listing)}
	}

	requiresTime := listing == types.ListingTop || listing == types.ListingControversial
	if requiresTime && !fields.Time {
		return &pkgerrs.UserError{Field: "t", Message: fmt.Sprintf("%s listings must have t parameter", listing)}
	}
	if !requiresTime && fields.Time {
		return &pkgerrs.UserError{Field: "t", Message: fmt.Sprintf("t parameter is not supported by %s listings", listing)}
	}

	return nil
}

func randomRefinementError(field string) error {
	return &pkgerrs.UserError{Field: field, Message: fmt.Sprintf("random listings do not accept the %s parameter", field)}
}

// ValidateLimit checks that a listing limit is within Reddit's page size bounds.
func (v *Validator) ValidateLimit(limit int) error {
	if limit < minListingLimit || limit > maxListingLimit {
		return &pkgerrs.UserError{Field: "limit", Message: fmt.Sprintf("limit must be between %d and %d (got %d)", minListingLimit, maxListingLimit, limit)}
	}
	return nil
}

// ValidateSortTime rejects values outside the SortTime enumeration.
func (v *Validator) ValidateSortTime(t types.SortTime) error {
	if !t.Valid() {
		return &pkgerrs.UserError{Field: "t", Message: fmt.Sprintf("unknown sort time %d", int(t))}
	}
	return nil
}

// ValidateSubredditName checks if a subreddit name is valid according to Reddit's naming rules.
// Several names may be joined with "+" to address a multireddit.
func (v *Validator) ValidateSubredditName(name string) error {
	if name == "" {
		return &pkgerrs.UserError{Field: "subreddit", Message: "subreddit name cannot be empty"}
	}
	for _, part := range strings.Split(name, "+") {
		if err := validateSubredditPart(part); err != nil {
			return err
		}
	}
	return nil
}

func validateSubredditPart(name string) error {
	if len(name) < minSubredditLength {
		return &pkgerrs.UserError{Field: "subreddit", Message: fmt.Sprintf("subreddit name must be at least %d characters", minSubredditLength)}
	}
	if len(name) > maxSubredditLength {
		return &pkgerrs.UserError{Field: "subreddit", Message: fmt.Sprintf("subreddit name cannot exceed %d characters", maxSubredditLength)}
	}
	// Check for valid characters: letters, numbers, underscores only
	for i, ch := range name {
		if !(ch >= 'a' && ch <= 'z') && !(ch >= 'A' && ch <= 'Z') && !(ch >= '0' && ch <= '9') && ch != '_' {
			return &pkgerrs.UserError{Field: "subreddit", Message: fmt.Sprintf("subreddit name contains invalid character '%c' at position %d", ch, i)}
		}
	}
	return nil
}

// ValidateUserAgent validates the User-Agent string to prevent header injection attacks.
func (v *Validator) ValidateUserAgent(ua string) error {
	// User-Agent cannot be empty (should have been set to default before this check)
	if len(ua) == 0 {
		return &pkgerrs.ConfigError{Field: "UserAgent", Message: "user agent cannot be empty"}
	}

	// Check for newline characters that could be used for header injection
	if strings.ContainsAny(ua, "\r\n") {
		return &pkgerrs.ConfigError{Field: "UserAgent", Message: "user agent cannot contain newline characters"}
	}

	if len(ua) > maxUserAgentLength {
		return &pkgerrs.ConfigError{Field: "UserAgent", Message: fmt.Sprintf("user agent too long (max %d characters)", maxUserAgentLength)}
	}

	return nil
}

// ValidateEndpointURL parses raw and checks that it is an absolute http or https URL.
func (v *Validator) ValidateEndpointURL(field, raw string) (*url.URL, error) {
	if raw == "" {
		return nil, &pkgerrs.ConfigError{Field: field, Message: "URL cannot be empty"}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &pkgerrs.ConfigError{Field: field, Message: fmt.Sprintf("invalid URL: %v", err)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &pkgerrs.ConfigError{Field: field, Message: fmt.Sprintf("unsupported URL scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return nil, &pkgerrs.ConfigError{Field: field, Message: "URL must include a host"}
	}
	return u, nil
}
