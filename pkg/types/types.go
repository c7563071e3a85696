package types

import "fmt"

// CsrfToken is the random value round-tripped through the authorization
// redirect as the "state" parameter. It is valid for a single flow.
type CsrfToken string

// Secret returns the raw token value.
func (c CsrfToken) Secret() string {
	return string(c)
}

// QueryParam is a single query string pair. Requests emit these in a fixed
// order so the resulting URL is reproducible.
type QueryParam struct {
	Key   string
	Value string
}

// ListingType selects the ordering of a subreddit listing.
type ListingType int

const (
	ListingHot ListingType = iota
	ListingNew
	ListingBest
	ListingRandom
	ListingRising
	ListingTop
	ListingControversial
)

var listingPaths = map[ListingType]string{
	ListingHot:           "hot",
	ListingNew:           "new",
	ListingBest:          "best",
	ListingRandom:        "random",
	ListingRising:        "rising",
	ListingTop:           "top",
	ListingControversial: "controversial",
}

// Path returns the URL path segment for the listing type, or an empty string
// for values outside the enumeration.
func (l ListingType) Path() string {
	return listingPaths[l]
}

// Valid reports whether l is one of the declared listing types.
func (l ListingType) Valid() bool {
	_, ok := listingPaths[l]
	return ok
}

func (l ListingType) String() string {
	if p, ok := listingPaths[l]; ok {
		return p
	}
	return fmt.Sprintf("ListingType(%d)", int(l))
}

// ParseListingType maps a path segment such as "top" back to its ListingType.
func ParseListingType(s string) (ListingType, error) {
	for l, p := range listingPaths {
		if p == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown listing type %q", s)
}

// SortTime is the time window for top and controversial listings (the "t" parameter).
type SortTime int

const (
	SortHour SortTime = iota
	SortDay
	SortWeek
	SortMonth
	SortYear
	SortAll
)

var sortTimeValues = map[SortTime]string{
	SortHour:  "hour",
	SortDay:   "day",
	SortWeek:  "week",
	SortMonth: "month",
	SortYear:  "year",
	SortAll:   "all",
}

// Valid reports whether t is one of the declared sort windows.
func (t SortTime) Valid() bool {
	_, ok := sortTimeValues[t]
	return ok
}

func (t SortTime) String() string {
	if v, ok := sortTimeValues[t]; ok {
		return v
	}
	return fmt.Sprintf("SortTime(%d)", int(t))
}

// ParseSortTime maps a wire value such as "day" back to its SortTime.
func ParseSortTime(s string) (SortTime, error) {
	for t, v := range sortTimeValues {
		if v == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown sort time %q", s)
}

// Post is a single link from a listing.
type Post struct {
	Subreddit string
	Title     string
	Selftext  string
	Score     uint64
}

// Listing is one page of posts together with its pagination cursors.
// After and Before are empty when Reddit returns no cursor.
type Listing struct {
	After  string
	Before string
	Posts  []Post
}
