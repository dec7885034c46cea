package commands

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/openclaw/xpost/internal/api"
	"github.com/openclaw/xpost/internal/constants"
)

func installPostCmds(app *App) {
	tweetCmd := &cobra.Command{
		Use:   "tweet TEXT",
		Short: "Post a tweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			text := args[0]
			// The limit is in characters, not bytes.
			if n := utf8.RuneCountInString(text); n > constants.MaxTweetLength {
				return fmt.Errorf("tweet is %d chars (max %d)", n, constants.MaxTweetLength)
			}

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}
			doc, err := c.Post(cmd.Context(), "/tweets", api.Document{"text": text})
			if err != nil {
				return err
			}
			return c.PrintJSON(doc)
		},
	}
	app.cmd.AddCommand(tweetCmd)

	replyCmd := &cobra.Command{
		Use:   "reply TWEET_ID TEXT",
		Short: "Reply to a tweet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			tweetID, text := args[0], args[1]
			if n := utf8.RuneCountInString(text); n > constants.MaxTweetLength {
				return fmt.Errorf("reply is %d chars (max %d)", n, constants.MaxTweetLength)
			}

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}
			doc, err := c.Post(cmd.Context(), "/tweets", api.Document{
				"text":  text,
				"reply": api.Document{"in_reply_to_tweet_id": tweetID},
			})
			if err != nil {
				return err
			}
			return c.PrintJSON(doc)
		},
	}
	app.cmd.AddCommand(replyCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete TWEET_ID",
		Short: "Delete a tweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}
			doc, err := c.Delete(cmd.Context(), "/tweets/"+args[0])
			if err != nil {
				return err
			}
			return c.PrintJSON(doc)
		},
	}
	app.cmd.AddCommand(deleteCmd)
}
