package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	graw "github.com/jamesprial/go-reddit-oauth"
	"github.com/jamesprial/go-reddit-oauth/pkg/types"
)

const maxTitleWidth = 80

type listingOptions struct {
	listingType string
	sortTime    string
	limit       int
	after       string
	before      string
	geo         string
}

func newListingCommand() *cobra.Command {
	var opts listingOptions

	cmd := &cobra.Command{
		Use:   "listing <subreddit>",
		Short: "Print one page of a subreddit listing",
		Long: `Listing refreshes the access token with REDDIT_REFRESH_TOKEN and prints
one page of posts with its pagination cursors. Join subreddits with "+"
for a multireddit.

Example:
  graw listing golang --type top --time week --limit 10
  graw listing golang+rust --after t3_abc123`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.build(cmd.Flags(), args[0])
			if err != nil {
				return err
			}

			client, cfg, err := newClient(cmd)
			if err != nil {
				return err
			}
			if err := cfg.RequireRefreshToken(); err != nil {
				return err
			}

			if err := client.RefreshToken(cmd.Context()); err != nil {
				return err
			}

			listing, err := client.GetListing(cmd.Context(), req)
			if err != nil {
				return err
			}

			return printListing(cmd.OutOrStdout(), listing)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.listingType, "type", "T", "hot", "listing type: hot, new, best, random, rising, top, controversial")
	flags.StringVarP(&opts.sortTime, "time", "t", "", "time window for top and controversial: hour, day, week, month, year, all")
	flags.IntVarP(&opts.limit, "limit", "n", 25, "number of posts (1-100)")
	flags.StringVar(&opts.after, "after", "", "fullname to continue after")
	flags.StringVar(&opts.before, "before", "", "fullname to page back from")
	flags.StringVarP(&opts.geo, "geo", "g", "", "geo filter, required for best listings")

	return cmd
}

// build turns the flags into a listing request. Only flags given on the
// command line are set on the builder, so the variant rules see exactly
// what the user asked for.
func (o *listingOptions) build(flags *pflag.FlagSet, subreddit string) (*graw.ListingRequest, error) {
	listingType, err := types.ParseListingType(o.listingType)
	if err != nil {
		return nil, fmt.Errorf("invalid --type: %w", err)
	}

	b := graw.NewListingRequestBuilder(subreddit, listingType)
	if flags.Changed("time") {
		sortTime, err := types.ParseSortTime(o.sortTime)
		if err != nil {
			return nil, fmt.Errorf("invalid --time: %w", err)
		}
		b.Time(sortTime)
	}
	if flags.Changed("limit") {
		b.Limit(o.limit)
	}
	if flags.Changed("after") {
		b.After(o.after)
	}
	if flags.Changed("before") {
		b.Before(o.before)
	}
	if flags.Changed("geo") {
		b.Geo(o.geo)
	}

	return b.Build()
}

func printListing(w io.Writer, listing *types.Listing) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tSUBREDDIT\tTITLE")
	for _, p := range listing.Posts {
		fmt.Fprintf(tw, "%d\tr/%s\t%s\n", p.Score, p.Subreddit, truncate(p.Title, maxTitleWidth))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(listing.Posts) == 0 {
		fmt.Fprintln(w, "(no posts)")
	}
	if listing.After != "" {
		fmt.Fprintf(w, "after:  %s\n", listing.After)
	}
	if listing.Before != "" {
		fmt.Fprintf(w, "before: %s\n", listing.Before)
	}
	return nil
}

func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
