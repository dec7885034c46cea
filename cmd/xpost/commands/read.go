package commands

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/openclaw/xpost/internal/api"
)

func installReadCmds(app *App) {
	getCmd := &cobra.Command{
		Use:   "get TWEET_ID",
		Short: "Fetch a tweet by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}

			params := url.Values{}
			params.Set("tweet.fields", api.TweetFieldsFull)
			params.Set("expansions", api.ExpandAuthor)
			params.Set("user.fields", api.UserFieldsBasic)

			doc, err := c.Get(cmd.Context(), "/tweets/"+args[0], params)
			if err != nil {
				return err
			}
			api.MergeAuthor(doc)
			return c.PrintData(doc)
		},
	}
	app.cmd.AddCommand(getCmd)

	var threadN int
	threadCmd := &cobra.Command{
		Use:   "thread TWEET_ID",
		Short: "Fetch a conversation thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}

			// The conversation id of any tweet in the thread identifies it.
			params := url.Values{}
			params.Set("tweet.fields", "conversation_id")
			doc, err := c.Get(cmd.Context(), "/tweets/"+args[0], params)
			if err != nil {
				return fmt.Errorf("could not fetch tweet: %w", err)
			}
			convoID := args[0]
			if data, ok := doc["data"].(map[string]any); ok {
				if id, ok := data["conversation_id"].(string); ok {
					convoID = id
				}
			}

			params = url.Values{}
			params.Set("query", "conversation_id:"+convoID)
			params.Set("tweet.fields", api.TweetFieldsThread)
			params.Set("expansions", api.ExpandAuthor)
			params.Set("user.fields", api.UserFieldsBasic)
			params.Set("max_results", strconv.Itoa(max(threadN, 10)))

			doc, err = c.Get(cmd.Context(), "/tweets/search/recent", params)
			if err != nil {
				return fmt.Errorf("could not search thread: %w", err)
			}
			api.MergeAuthors(doc)
			for _, tweet := range api.Items(doc) {
				if err := c.PrintJSON(tweet); err != nil {
					return err
				}
			}
			return nil
		},
	}
	threadCmd.Flags().IntVarP(&threadN, "max-results", "n", 20, "maximum number of results")
	app.cmd.AddCommand(threadCmd)

	installThreadChainCmd(app)

	var quotesN int
	quotesCmd := &cobra.Command{
		Use:   "quotes TWEET_ID",
		Short: "Get quote tweets of a tweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}

			params := url.Values{}
			params.Set("max_results", strconv.Itoa(max(quotesN, 10)))
			params.Set("tweet.fields", api.TweetFieldsBasic)
			params.Set("expansions", api.ExpandAuthor)
			params.Set("user.fields", api.UserFieldsBasic)

			doc, err := c.Get(cmd.Context(), "/tweets/"+args[0]+"/quote_tweets", params)
			if err != nil {
				return err
			}
			api.MergeAuthors(doc)
			return c.PrintItems(doc, "No quote tweets found.")
		},
	}
	quotesCmd.Flags().IntVarP(&quotesN, "max-results", "n", 10, "maximum number of results")
	app.cmd.AddCommand(quotesCmd)

	var searchN int
	searchCmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search recent tweets (last 7 days)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}

			params := url.Values{}
			params.Set("query", args[0])
			params.Set("max_results", strconv.Itoa(clamp(searchN, 10, 100)))
			params.Set("tweet.fields", api.TweetFieldsConversation)
			params.Set("expansions", api.ExpandAuthor)
			params.Set("user.fields", api.UserFieldsBasic)

			doc, err := c.Get(cmd.Context(), "/tweets/search/recent", params)
			if err != nil {
				return err
			}
			api.MergeAuthors(doc)
			return c.PrintItems(doc, "No results found.")
		},
	}
	searchCmd.Flags().IntVarP(&searchN, "max-results", "n", 10, "maximum number of results")
	app.cmd.AddCommand(searchCmd)

	var mentionsN int
	mentionsCmd := &cobra.Command{
		Use:   "mentions",
		Short: "Get your mentions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.ownTimeline(cmd, "/mentions", mentionsN, "No mentions found.")
		},
	}
	mentionsCmd.Flags().IntVarP(&mentionsN, "max-results", "n", 10, "maximum number of results")
	app.cmd.AddCommand(mentionsCmd)

	var timelineN int
	timelineCmd := &cobra.Command{
		Use:   "timeline",
		Short: "Get your home timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.ownTimeline(cmd, "/timelines/reverse_chronological", timelineN, "No timeline tweets found.")
		},
	}
	timelineCmd.Flags().IntVarP(&timelineN, "max-results", "n", 10, "maximum number of results")
	app.cmd.AddCommand(timelineCmd)
}

// ownTimeline fetches a tweet listing rooted at the authenticated user.
func (a *App) ownTimeline(cmd *cobra.Command, suffix string, n int, emptyMsg string) error {
	c, err := a.oauth1Client(cmd)
	if err != nil {
		return err
	}
	userID, err := c.MyUserID(cmd.Context())
	if err != nil {
		return err
	}

	params := url.Values{}
	params.Set("max_results", strconv.Itoa(clamp(n, 5, 100)))
	params.Set("tweet.fields", api.TweetFieldsConversation)
	params.Set("expansions", api.ExpandAuthor)
	params.Set("user.fields", api.UserFieldsBasic)

	doc, err := c.Get(cmd.Context(), "/users/"+userID+suffix, params)
	if err != nil {
		return err
	}
	api.MergeAuthors(doc)
	return c.PrintItems(doc, emptyMsg)
}

func installThreadChainCmd(app *App) {
	var n int
	cmd := &cobra.Command{
		Use:   "thread-chain TWEET_ID",
		Short: "Walk an author's full thread in chronological order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}

			params := url.Values{}
			params.Set("tweet.fields", "conversation_id,author_id,created_at,text,public_metrics")
			params.Set("expansions", api.ExpandAuthor)
			params.Set("user.fields", api.UserFieldsBasic)
			doc, err := c.Get(cmd.Context(), "/tweets/"+args[0], params)
			if err != nil {
				return fmt.Errorf("could not fetch tweet: %w", err)
			}

			root, _ := doc["data"].(map[string]any)
			convoID := args[0]
			if id, ok := root["conversation_id"].(string); ok {
				convoID = id
			}
			api.MergeAuthor(doc)
			authorUsername := "unknown"
			if author, ok := root["author"].(map[string]any); ok {
				if u, ok := author["username"].(string); ok {
					authorUsername = u
				}
			}

			// Only the author's own tweets make up the chain.
			params = url.Values{}
			params.Set("query", fmt.Sprintf("conversation_id:%s from:%s", convoID, authorUsername))
			params.Set("tweet.fields", api.TweetFieldsThread)
			params.Set("max_results", strconv.Itoa(max(n, 10)))
			params.Set("sort_order", "recency")

			doc, err = c.Get(cmd.Context(), "/tweets/search/recent", params)
			if err != nil {
				return fmt.Errorf("could not search thread: %w", err)
			}
			tweets := api.Items(doc)

			// Search never returns the conversation starter itself.
			found := false
			for _, t := range tweets {
				if id, _ := t["id"].(string); id == convoID {
					found = true
					break
				}
			}
			if !found && root != nil {
				tweets = append(tweets, root)
			}

			sort.SliceStable(tweets, func(i, j int) bool {
				ci, _ := tweets[i]["created_at"].(string)
				cj, _ := tweets[j]["created_at"].(string)
				return ci < cj
			})

			if len(tweets) == 0 {
				c.Notice(fmt.Sprintf("No thread found for conversation %s.", convoID))
				return nil
			}
			for _, t := range tweets {
				t["author"] = api.Document{"username": authorUsername}
				if err := c.PrintJSON(t); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "max-results", "n", 20, "maximum number of results")
	app.cmd.AddCommand(cmd)
}
