package commands

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/openclaw/xpost/internal/api"
)

func installDiscoverCmds(app *App) {
	var searchAllN int
	searchAllCmd := &cobra.Command{
		Use:   "search-all QUERY",
		Short: "Search the full tweet archive (Pro)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.bearerClient(cmd)
			if err != nil {
				return err
			}

			params := url.Values{}
			params.Set("query", args[0])
			params.Set("max_results", strconv.Itoa(clamp(searchAllN, 10, 500)))
			params.Set("tweet.fields", api.TweetFieldsConversation)
			params.Set("expansions", api.ExpandAuthor)
			params.Set("user.fields", api.UserFieldsBasic)

			doc, err := c.Get(cmd.Context(), "/tweets/search/all", params)
			if err != nil {
				return proAccessHint(cmd, err, "Full-archive search")
			}
			api.MergeAuthors(doc)
			return c.PrintItems(doc, "No results found.")
		},
	}
	searchAllCmd.Flags().IntVarP(&searchAllN, "max-results", "n", 10, "maximum number of results")
	app.cmd.AddCommand(searchAllCmd)

	var woeid int
	trendsCmd := &cobra.Command{
		Use:   "trends",
		Short: "Get trends for a location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.bearerClient(cmd)
			if err != nil {
				return err
			}

			doc, err := c.Get(cmd.Context(), "/trends/by/woeid/"+strconv.Itoa(woeid), nil)
			if err != nil {
				return err
			}
			return c.PrintItems(doc, "No trends found.")
		},
	}
	trendsCmd.Flags().IntVar(&woeid, "woeid", 1, "where-on-earth ID (1 is worldwide)")
	app.cmd.AddCommand(trendsCmd)

	spacesCmd := &cobra.Command{
		Use:   "spaces QUERY",
		Short: "Search for Spaces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.bearerClient(cmd)
			if err != nil {
				return err
			}

			params := url.Values{}
			params.Set("query", args[0])
			params.Set("space.fields", api.SpaceFields)

			doc, err := c.Get(cmd.Context(), "/spaces/search", params)
			if err != nil {
				return err
			}
			return c.PrintItems(doc, "No spaces found.")
		},
	}
	app.cmd.AddCommand(spacesCmd)

	spaceCmd := &cobra.Command{
		Use:   "space SPACE_ID",
		Short: "Look up a Space by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.bearerClient(cmd)
			if err != nil {
				return err
			}

			params := url.Values{}
			params.Set("space.fields", api.SpaceFieldsScheduled)

			doc, err := c.Get(cmd.Context(), "/spaces/"+args[0], params)
			if err != nil {
				return err
			}
			return c.PrintData(doc)
		},
	}
	app.cmd.AddCommand(spaceCmd)
}
