package commands

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/openclaw/xpost/internal/api"
)

func installUserCmds(app *App) {
	userCmd := &cobra.Command{
		Use:   "user USERNAME",
		Short: "Look up a user's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}

			params := url.Values{}
			params.Set("user.fields", api.UserFieldsProfile)

			doc, err := c.Get(cmd.Context(), "/users/by/username/"+api.Username(args[0]), params)
			if err != nil {
				return err
			}
			return c.PrintData(doc)
		},
	}
	app.cmd.AddCommand(userCmd)

	var timelineN int
	var includeRTs bool
	userTimelineCmd := &cobra.Command{
		Use:   "user-timeline USERNAME",
		Short: "Get a user's recent tweets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}
			target := api.Username(args[0])
			userID, err := c.ResolveUsername(cmd.Context(), target)
			if err != nil {
				return err
			}

			params := url.Values{}
			params.Set("max_results", strconv.Itoa(max(timelineN, 5)))
			params.Set("tweet.fields", api.TweetFieldsFull)
			if !includeRTs {
				params.Set("exclude", "retweets")
			}

			doc, err := c.Get(cmd.Context(), "/users/"+userID+"/tweets", params)
			if err != nil {
				return err
			}
			for _, tweet := range api.Items(doc) {
				tweet["author"] = api.Document{"username": target}
			}
			return c.PrintItems(doc, fmt.Sprintf("No tweets found for @%s.", target))
		},
	}
	userTimelineCmd.Flags().IntVarP(&timelineN, "max-results", "n", 10, "maximum number of results")
	userTimelineCmd.Flags().BoolVar(&includeRTs, "include-rts", false, "include retweets")
	app.cmd.AddCommand(userTimelineCmd)

	var followersN int
	followersCmd := &cobra.Command{
		Use:   "followers USERNAME",
		Short: "List a user's followers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			target := api.Username(args[0])
			return app.socialGraph(cmd, target, "/followers", followersN,
				fmt.Sprintf("No followers found for @%s.", target))
		},
	}
	followersCmd.Flags().IntVarP(&followersN, "max-results", "n", 100, "maximum number of results (up to 1000)")
	app.cmd.AddCommand(followersCmd)

	var followingN int
	followingCmd := &cobra.Command{
		Use:   "following USERNAME",
		Short: "List who a user follows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			target := api.Username(args[0])
			return app.socialGraph(cmd, target, "/following", followingN,
				fmt.Sprintf("@%s is not following anyone.", target))
		},
	}
	followingCmd.Flags().IntVarP(&followingN, "max-results", "n", 100, "maximum number of results (up to 1000)")
	app.cmd.AddCommand(followingCmd)

	var likedN int
	likedCmd := &cobra.Command{
		Use:   "liked USERNAME",
		Short: "List tweets liked by a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}
			target := api.Username(args[0])
			userID, err := c.ResolveUsername(cmd.Context(), target)
			if err != nil {
				return err
			}

			params := url.Values{}
			params.Set("max_results", strconv.Itoa(clamp(likedN, 5, 100)))
			params.Set("tweet.fields", api.TweetFieldsBasic)
			params.Set("expansions", api.ExpandAuthor)
			params.Set("user.fields", api.UserFieldsBasic)

			doc, err := c.Get(cmd.Context(), "/users/"+userID+"/liked_tweets", params)
			if err != nil {
				return err
			}
			api.MergeAuthors(doc)
			return c.PrintItems(doc, fmt.Sprintf("No liked tweets found for @%s.", target))
		},
	}
	likedCmd.Flags().IntVarP(&likedN, "max-results", "n", 20, "maximum number of results")
	app.cmd.AddCommand(likedCmd)

	likingCmd := &cobra.Command{
		Use:   "liking-users TWEET_ID",
		Short: "List users who liked a tweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.tweetAudience(cmd, args[0], "/liking_users", "No liking users found.")
		},
	}
	app.cmd.AddCommand(likingCmd)

	retweetersCmd := &cobra.Command{
		Use:   "retweeters TWEET_ID",
		Short: "List users who retweeted a tweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.tweetAudience(cmd, args[0], "/retweeted_by", "No retweeters found.")
		},
	}
	app.cmd.AddCommand(retweetersCmd)
}

// socialGraph lists the followers or following of a user.
func (a *App) socialGraph(cmd *cobra.Command, target, suffix string, n int, emptyMsg string) error {
	c, err := a.oauth1Client(cmd)
	if err != nil {
		return err
	}
	userID, err := c.ResolveUsername(cmd.Context(), target)
	if err != nil {
		return err
	}

	params := url.Values{}
	params.Set("max_results", strconv.Itoa(clamp(n, 1, 1000)))
	params.Set("user.fields", api.UserFieldsDetailed)

	doc, err := c.Get(cmd.Context(), "/users/"+userID+suffix, params)
	if err != nil {
		return err
	}
	return c.PrintItems(doc, emptyMsg)
}

// tweetAudience lists the users who engaged with a tweet.
func (a *App) tweetAudience(cmd *cobra.Command, tweetID, suffix, emptyMsg string) error {
	c, err := a.oauth1Client(cmd)
	if err != nil {
		return err
	}

	params := url.Values{}
	params.Set("user.fields", api.UserFieldsPublic)

	doc, err := c.Get(cmd.Context(), "/tweets/"+tweetID+suffix, params)
	if err != nil {
		return err
	}
	return c.PrintItems(doc, emptyMsg)
}
