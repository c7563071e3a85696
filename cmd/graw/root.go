package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	graw "github.com/jamesprial/go-reddit-oauth"
	"github.com/jamesprial/go-reddit-oauth/internal/config"
	"github.com/jamesprial/go-reddit-oauth/internal/logging"
)

func newRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "graw",
		Short: "graw - Reddit OAuth client",
		Long: `graw authorizes a Reddit installed app through the browser and reads
subreddit listings with the resulting tokens.

Configuration is read from the environment (or a .env file):
  REDDIT_CLIENT_ID       installed app client ID (required)
  REDDIT_REDIRECT_URL    registered redirect URL (default http://localhost:5555)
  REDDIT_REFRESH_TOKEN   refresh token printed by "graw authorize"
  REDDIT_USER_AGENT      user agent sent to Reddit
  REDDIT_HTTP_TIMEOUT    per-request timeout (default 30s)
  ENVIRONMENT            "production" switches logs to JSON`,
		Version:      version,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.AddCommand(newAuthorizeCommand())
	rootCmd.AddCommand(newListingCommand())
	rootCmd.AddCommand(newScopesCommand())

	return rootCmd
}

// newClient builds a Reddit client from the environment. Logs go to the
// command's stderr.
func newClient(cmd *cobra.Command) (*graw.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.Environment, cmd.ErrOrStderr())

	client, err := graw.NewClient(&graw.Config{
		ClientID:     cfg.ClientID,
		RedirectURL:  cfg.RedirectURL,
		RefreshToken: cfg.RefreshToken,
		UserAgent:    cfg.UserAgent,
		BaseURL:      cfg.BaseURL,
		AuthorizeURL: cfg.AuthorizeURL,
		TokenURL:     cfg.TokenURL,
		HTTPClient:   &http.Client{Timeout: cfg.HTTPTimeout},
		Logger:       logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, cfg, nil
}
