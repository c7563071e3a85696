package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamesprial/go-reddit-oauth/pkg/types"
)

func newScopesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scopes",
		Short: "List the OAuth scopes accepted by --scope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range types.AllScopes() {
				fmt.Fprintln(cmd.OutOrStdout(), s.Value())
			}
			return nil
		},
	}
}
