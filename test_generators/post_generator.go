// Package test_generators builds deterministic listing fixtures for tests and benchmarks.
package test_generators

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/jamesprial/go-reddit-oauth/pkg/types"
)

// PostGenerator generates realistic Reddit posts for testing
type PostGenerator struct {
	rand           *rand.Rand
	titleTemplates []string
	bodyTemplates  []string
	subreddits     []string
	topics         []string
}

// NewPostGenerator creates a post generator. The same seed always yields the
// same sequence of posts.
func NewPostGenerator(seed int64) *PostGenerator {
	return &PostGenerator{
		rand: rand.New(rand.NewSource(seed)),
		titleTemplates: []string{
			"Ask %s: what changed?",
			"[Discussion] %s",
			"PSA: %s",
			"TIL about %s",
			"Analysis: %s",
		},
		bodyTemplates: []string{
			"",
			"What are your thoughts on %s?",
			"Here's my take on %s. Details inside.",
			"Beginner's guide to %s.\n\nEverything you need to know.",
			"Unicode 🚀 notes on %s: \"quoted\" and \\escaped\\",
		},
		subreddits: []string{"golang", "programming", "rust", "technology", "science"},
		topics:     []string{"generics", "context cancellation", "oauth", "listings", "garbage collection"},
	}
}

// GeneratePost creates a single post
func (pg *PostGenerator) GeneratePost() types.Post {
	topic := pg.topics[pg.rand.Intn(len(pg.topics))]
	body := pg.bodyTemplates[pg.rand.Intn(len(pg.bodyTemplates))]
	if body != "" {
		body = fmt.Sprintf(body, topic)
	}
	return types.Post{
		Subreddit: pg.subreddits[pg.rand.Intn(len(pg.subreddits))],
		Title:     fmt.Sprintf(pg.titleTemplates[pg.rand.Intn(len(pg.titleTemplates))], topic),
		Selftext:  body,
		Score:     uint64(pg.rand.Int63n(100000)),
	}
}

// GeneratePosts creates n posts
func (pg *PostGenerator) GeneratePosts(n int) []types.Post {
	posts := make([]types.Post, n)
	for i := range posts {
		posts[i] = pg.GeneratePost()
	}
	return posts
}

type listingJSON struct {
	Kind string          `json:"kind"`
	Data listingDataJSON `json:"data"`
}

type listingDataJSON struct {
	After    *string     `json:"after"`
	Before   *string     `json:"before"`
	Dist     int         `json:"dist"`
	Children []childJSON `json:"children"`
}

type childJSON struct {
	Kind string   `json:"kind"`
	Data postJSON `json:"data"`
}

type postJSON struct {
	Subreddit string `json:"subreddit"`
	Title     string `json:"title"`
	Selftext  string `json:"selftext"`
	Score     uint64 `json:"score"`
	Name      string `json:"name"`
	Author    string `json:"author"`
}

// ListingJSON renders posts in the shape of Reddit's listing response.
// An empty cursor is rendered as null, as Reddit does.
func ListingJSON(posts []types.Post, after, before string) string {
	listing := listingJSON{
		Kind: "Listing",
		Data: listingDataJSON{
			After:    nullable(after),
			Before:   nullable(before),
			Dist:     len(posts),
			Children: make([]childJSON, 0, len(posts)),
		},
	}
	for i, p := range posts {
		listing.Data.Children = append(listing.Data.Children, childJSON{
			Kind: "t3",
			Data: postJSON{
				Subreddit: p.Subreddit,
				Title:     p.Title,
				Selftext:  p.Selftext,
				Score:     p.Score,
				Name:      fmt.Sprintf("t3_%06x", i),
				Author:    "test_user",
			},
		})
	}

	out, err := json.Marshal(listing)
	if err != nil {
		panic(fmt.Sprintf("marshal listing fixture: %v", err))
	}
	return string(out)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
