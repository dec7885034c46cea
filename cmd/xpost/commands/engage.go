package commands

import (
	"github.com/spf13/cobra"

	"github.com/openclaw/xpost/internal/api"
)

func installEngageCmds(app *App) {
	likeCmd := &cobra.Command{
		Use:   "like TWEET_ID",
		Short: "Like a tweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.tweetAction(cmd, "/likes", args[0])
		},
	}
	app.cmd.AddCommand(likeCmd)

	unlikeCmd := &cobra.Command{
		Use:   "unlike TWEET_ID",
		Short: "Unlike a tweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.tweetActionUndo(cmd, "/likes", args[0])
		},
	}
	app.cmd.AddCommand(unlikeCmd)

	retweetCmd := &cobra.Command{
		Use:   "retweet TWEET_ID",
		Short: "Retweet a tweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.tweetAction(cmd, "/retweets", args[0])
		},
	}
	app.cmd.AddCommand(retweetCmd)

	unretweetCmd := &cobra.Command{
		Use:   "unretweet TWEET_ID",
		Short: "Undo a retweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.tweetActionUndo(cmd, "/retweets", args[0])
		},
	}
	app.cmd.AddCommand(unretweetCmd)

	followCmd := &cobra.Command{
		Use:   "follow USERNAME",
		Short: "Follow a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.userAction(cmd, "/following", args[0])
		},
	}
	app.cmd.AddCommand(followCmd)

	unfollowCmd := &cobra.Command{
		Use:   "unfollow USERNAME",
		Short: "Unfollow a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.userActionUndo(cmd, "/following", args[0])
		},
	}
	app.cmd.AddCommand(unfollowCmd)

	hideCmd := &cobra.Command{
		Use:   "hide TWEET_ID",
		Short: "Hide a reply to your tweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.setHidden(cmd, args[0], true)
		},
	}
	app.cmd.AddCommand(hideCmd)

	unhideCmd := &cobra.Command{
		Use:   "unhide TWEET_ID",
		Short: "Unhide a reply to your tweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.setHidden(cmd, args[0], false)
		},
	}
	app.cmd.AddCommand(unhideCmd)
}

// tweetAction posts a tweet-targeted action under the authenticated user.
func (a *App) tweetAction(cmd *cobra.Command, suffix, tweetID string) error {
	c, err := a.oauth1Client(cmd)
	if err != nil {
		return err
	}
	userID, err := c.MyUserID(cmd.Context())
	if err != nil {
		return err
	}

	doc, err := c.Post(cmd.Context(), "/users/"+userID+suffix, api.Document{"tweet_id": tweetID})
	if err != nil {
		return err
	}
	return c.PrintJSON(doc)
}

// tweetActionUndo deletes a tweet-targeted action under the authenticated user.
func (a *App) tweetActionUndo(cmd *cobra.Command, suffix, tweetID string) error {
	c, err := a.oauth1Client(cmd)
	if err != nil {
		return err
	}
	userID, err := c.MyUserID(cmd.Context())
	if err != nil {
		return err
	}

	doc, err := c.Delete(cmd.Context(), "/users/"+userID+suffix+"/"+tweetID)
	if err != nil {
		return err
	}
	return c.PrintJSON(doc)
}

// userAction posts a user-targeted action, resolving the target username first.
func (a *App) userAction(cmd *cobra.Command, suffix, username string) error {
	c, err := a.oauth1Client(cmd)
	if err != nil {
		return err
	}
	userID, err := c.MyUserID(cmd.Context())
	if err != nil {
		return err
	}
	targetID, err := c.ResolveUsername(cmd.Context(), username)
	if err != nil {
		return err
	}

	doc, err := c.Post(cmd.Context(), "/users/"+userID+suffix, api.Document{"target_user_id": targetID})
	if err != nil {
		return err
	}
	return c.PrintJSON(doc)
}

// userActionUndo deletes a user-targeted action, resolving the target username first.
func (a *App) userActionUndo(cmd *cobra.Command, suffix, username string) error {
	c, err := a.oauth1Client(cmd)
	if err != nil {
		return err
	}
	userID, err := c.MyUserID(cmd.Context())
	if err != nil {
		return err
	}
	targetID, err := c.ResolveUsername(cmd.Context(), username)
	if err != nil {
		return err
	}

	doc, err := c.Delete(cmd.Context(), "/users/"+userID+suffix+"/"+targetID)
	if err != nil {
		return err
	}
	return c.PrintJSON(doc)
}

func (a *App) setHidden(cmd *cobra.Command, tweetID string, hidden bool) error {
	c, err := a.oauth1Client(cmd)
	if err != nil {
		return err
	}

	doc, err := c.Put(cmd.Context(), "/tweets/"+tweetID+"/hidden", api.Document{"hidden": hidden})
	if err != nil {
		return err
	}
	return c.PrintJSON(doc)
}
