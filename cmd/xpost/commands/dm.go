package commands

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/openclaw/xpost/internal/api"
)

func installDMCmds(app *App) {
	dmCmd := &cobra.Command{
		Use:   "dm USERNAME TEXT",
		Short: "Send a direct message to a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}
			targetID, err := c.ResolveUsername(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			doc, err := c.Post(cmd.Context(), "/dm_conversations/with/"+targetID+"/messages",
				api.Document{"text": args[1]})
			if err != nil {
				return err
			}
			return c.PrintJSON(doc)
		},
	}
	app.cmd.AddCommand(dmCmd)

	var listN int
	dmListCmd := &cobra.Command{
		Use:   "dm-list",
		Short: "List recent direct message events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.dmEvents(cmd, "/dm_events", listN, "No DM events found.")
		},
	}
	dmListCmd.Flags().IntVarP(&listN, "max-results", "n", 20, "maximum number of results")
	app.cmd.AddCommand(dmListCmd)

	var convoN int
	dmConvoCmd := &cobra.Command{
		Use:   "dm-conversation CONVERSATION_ID",
		Short: "List direct messages in a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.dmEvents(cmd, "/dm_conversations/"+args[0]+"/dm_events", convoN,
				"No DM events found in this conversation.")
		},
	}
	dmConvoCmd.Flags().IntVarP(&convoN, "max-results", "n", 20, "maximum number of results")
	app.cmd.AddCommand(dmConvoCmd)
}

func (a *App) dmEvents(cmd *cobra.Command, path string, n int, emptyMsg string) error {
	c, err := a.oauth1Client(cmd)
	if err != nil {
		return err
	}

	params := url.Values{}
	params.Set("max_results", strconv.Itoa(clamp(n, 1, 100)))
	params.Set("dm_event.fields", api.DMEventFields)

	doc, err := c.Get(cmd.Context(), path, params)
	if err != nil {
		return err
	}
	return c.PrintItems(doc, emptyMsg)
}
