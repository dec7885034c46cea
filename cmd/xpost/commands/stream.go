package commands

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/openclaw/xpost/internal/api"
)

func installStreamCmds(app *App) {
	var tag string
	rulesAddCmd := &cobra.Command{
		Use:   "stream-rules-add RULE",
		Short: "Add a filtered stream rule (Pro)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.bearerClient(cmd)
			if err != nil {
				return err
			}

			rule := api.Document{"value": args[0]}
			if tag != "" {
				rule["tag"] = tag
			}

			doc, err := c.Post(cmd.Context(), "/tweets/search/stream/rules", api.Document{"add": []api.Document{rule}})
			if err != nil {
				return err
			}
			return c.PrintJSON(doc)
		},
	}
	rulesAddCmd.Flags().StringVar(&tag, "tag", "", "optional label for the rule")
	app.cmd.AddCommand(rulesAddCmd)

	rulesListCmd := &cobra.Command{
		Use:   "stream-rules-list",
		Short: "List filtered stream rules (Pro)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.bearerClient(cmd)
			if err != nil {
				return err
			}

			doc, err := c.Get(cmd.Context(), "/tweets/search/stream/rules", nil)
			if err != nil {
				return err
			}
			return c.PrintItems(doc, "No stream rules configured.")
		},
	}
	app.cmd.AddCommand(rulesListCmd)

	rulesDeleteCmd := &cobra.Command{
		Use:   "stream-rules-delete RULE_ID",
		Short: "Delete a filtered stream rule (Pro)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.bearerClient(cmd)
			if err != nil {
				return err
			}

			doc, err := c.Post(cmd.Context(), "/tweets/search/stream/rules",
				api.Document{"delete": api.Document{"ids": []string{args[0]}}})
			if err != nil {
				return err
			}
			return c.PrintJSON(doc)
		},
	}
	app.cmd.AddCommand(rulesDeleteCmd)

	var filterN int
	filterCmd := &cobra.Command{
		Use:   "stream-filter",
		Short: "Connect to the filtered stream (Pro)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.streamTweets(cmd, "/tweets/search/stream", filterN, "Filtered stream")
		},
	}
	filterCmd.Flags().IntVarP(&filterN, "max-results", "n", 10, "number of tweets to collect")
	app.cmd.AddCommand(filterCmd)

	var sampleN int
	sampleCmd := &cobra.Command{
		Use:   "stream-sample",
		Short: "Connect to the 1% volume stream (Pro)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.streamTweets(cmd, "/tweets/sample/stream", sampleN, "Volume stream")
		},
	}
	sampleCmd.Flags().IntVarP(&sampleN, "max-results", "n", 10, "number of tweets to collect")
	app.cmd.AddCommand(sampleCmd)
}

// streamTweets connects to a streaming endpoint and collects n tweets.
func (a *App) streamTweets(cmd *cobra.Command, path string, n int, feature string) error {
	c, err := a.bearerClient(cmd)
	if err != nil {
		return err
	}

	params := url.Values{}
	params.Set("tweet.fields", api.TweetFieldsBasic)
	params.Set("expansions", api.ExpandAuthor)
	params.Set("user.fields", api.UserFieldsBasic)

	if err := c.Stream(cmd.Context(), path, params, n); err != nil {
		return proAccessHint(cmd, err, feature)
	}
	return nil
}
