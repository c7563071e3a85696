package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jamesprial/go-reddit-oauth/pkg/types"
)

const defaultSuccessMessage = "<html><body><h1>graw is authorized</h1><p>You can close this tab.</p></body></html>"

func newAuthorizeCommand() *cobra.Command {
	var (
		scopes         []string
		timeout        time.Duration
		successMessage string
	)

	cmd := &cobra.Command{
		Use:   "authorize",
		Short: "Authorize the app in a browser and print a refresh token",
		Long: `Authorize prints the Reddit consent URL, then waits on the redirect URL
for the browser to come back. On success it prints a refresh token to store
as REDDIT_REFRESH_TOKEN.

Example:
  graw authorize --scope read --scope identity`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseScopes(scopes)
			if err != nil {
				return err
			}

			client, _, err := newClient(cmd)
			if err != nil {
				return err
			}

			authURL, csrf := client.OAuthURL(parsed...)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Open this URL in your browser to authorize graw:\n\n  %s\n\n", authURL)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := client.OAuthFlow(ctx, csrf, successMessage); err != nil {
				return fmt.Errorf("authorization failed: %w", err)
			}

			refresh, _ := client.CurrentRefreshToken()
			fmt.Fprintf(out, "Authorized. Store the refresh token:\n\n  REDDIT_REFRESH_TOKEN=%s\n", refresh)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&scopes, "scope", "s", []string{"identity", "read"}, "scope to request (repeatable)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "how long to wait for the browser redirect")
	cmd.Flags().StringVar(&successMessage, "success-message", defaultSuccessMessage, "page shown in the browser after the redirect")

	return cmd
}

func parseScopes(values []string) ([]types.Scope, error) {
	scopes := make([]types.Scope, 0, len(values))
	for _, v := range values {
		s, err := types.ParseScope(v)
		if err != nil {
			return nil, fmt.Errorf("invalid --scope: %w", err)
		}
		scopes = append(scopes, s)
	}
	return scopes, nil
}
