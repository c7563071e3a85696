package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	graw "github.com/jamesprial/go-reddit-oauth"
	"github.com/jamesprial/go-reddit-oauth/pkg/types"
)

func main() {
	// Get credentials from environment variables
	clientID := os.Getenv("REDDIT_CLIENT_ID")
	refreshToken := os.Getenv("REDDIT_REFRESH_TOKEN")

	if clientID == "" {
		log.Fatal("REDDIT_CLIENT_ID environment variable is required")
	}

	// Route structured logs to stderr; adjust the level as needed.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	client, err := graw.NewClient(&graw.Config{
		ClientID:     clientID,
		RedirectURL:  "http://localhost:5555",
		RefreshToken: refreshToken,
		UserAgent:    "example-bot/1.0 by YourUsername",
		Logger:       logger,
	})
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	ctx := context.Background()

	if refreshToken == "" {
		// First run: send the user through the consent page.
		authURL, csrf := client.OAuthURL(types.ScopeRead, types.ScopeIdentity)
		fmt.Printf("Open this URL to authorize the example:\n%s\n", authURL)

		flowCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		err := client.OAuthFlow(flowCtx, csrf, "Authorized! You can close this tab.")
		cancel()
		if err != nil {
			log.Fatalf("Authorization failed: %v", err)
		}

		token, _ := client.CurrentRefreshToken()
		fmt.Printf("Set REDDIT_REFRESH_TOKEN=%s to skip this step next time.\n", token)
	} else if err := client.RefreshToken(ctx); err != nil {
		log.Fatalf("Failed to refresh access token: %v", err)
	}

	// Get hot posts from r/golang
	hot, err := graw.NewListingRequestBuilder("golang", types.ListingHot).Limit(5).Build()
	if err != nil {
		log.Fatalf("Invalid request: %v", err)
	}

	listing, err := client.GetListing(ctx, hot)
	if err != nil {
		log.Fatalf("Failed to get hot posts: %v", err)
	}

	fmt.Println("\nHot posts from r/golang:")
	for i, post := range listing.Posts {
		fmt.Printf("%d. %s (score: %d)\n", i+1, post.Title, post.Score)
	}

	// Follow the cursor to the second page
	if listing.After != "" {
		next, err := graw.NewListingRequestBuilder("golang", types.ListingHot).
			After(listing.After).
			Limit(5).
			Build()
		if err != nil {
			log.Fatalf("Invalid request: %v", err)
		}

		page, err := next.Execute(ctx, client)
		if err != nil {
			log.Printf("Failed to get the next page: %v", err)
			return
		}
		fmt.Println("\nPage 2:")
		for i, post := range page.Posts {
			fmt.Printf("%d. [r/%s] %s (score: %d)\n", i+1, post.Subreddit, post.Title, post.Score)
		}
	}
}
