package commands

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/openclaw/xpost/internal/api"
)

func installBookmarkCmds(app *App) {
	var bookmarksN int
	bookmarksCmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "List your bookmarks (requires 'auth')",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.bookmarkListing(cmd, "/bookmarks", bookmarksN, "No bookmarks found.")
		},
	}
	bookmarksCmd.Flags().IntVarP(&bookmarksN, "max-results", "n", 20, "maximum number of results")
	app.cmd.AddCommand(bookmarksCmd)

	bookmarkCmd := &cobra.Command{
		Use:   "bookmark TWEET_ID",
		Short: "Bookmark a tweet (requires 'auth')",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.pkceClient(cmd)
			if err != nil {
				return err
			}
			userID, err := c.MyUserID(cmd.Context())
			if err != nil {
				return err
			}

			doc, err := c.Post(cmd.Context(), "/users/"+userID+"/bookmarks", api.Document{"tweet_id": args[0]})
			if err != nil {
				return err
			}
			return c.PrintJSON(doc)
		},
	}
	app.cmd.AddCommand(bookmarkCmd)

	unbookmarkCmd := &cobra.Command{
		Use:   "unbookmark TWEET_ID",
		Short: "Remove a bookmark (requires 'auth')",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.pkceClient(cmd)
			if err != nil {
				return err
			}
			userID, err := c.MyUserID(cmd.Context())
			if err != nil {
				return err
			}

			doc, err := c.Delete(cmd.Context(), "/users/"+userID+"/bookmarks/"+args[0])
			if err != nil {
				return err
			}
			return c.PrintJSON(doc)
		},
	}
	app.cmd.AddCommand(unbookmarkCmd)

	foldersCmd := &cobra.Command{
		Use:   "bookmark-folders",
		Short: "List your bookmark folders (requires 'auth')",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.pkceClient(cmd)
			if err != nil {
				return err
			}
			userID, err := c.MyUserID(cmd.Context())
			if err != nil {
				return err
			}

			doc, err := c.Get(cmd.Context(), "/users/"+userID+"/bookmarks/folders", nil)
			if err != nil {
				return err
			}
			return c.PrintItems(doc, "No bookmark folders found.")
		},
	}
	app.cmd.AddCommand(foldersCmd)

	var folderN int
	folderCmd := &cobra.Command{
		Use:   "bookmarks-folder FOLDER_ID",
		Short: "List bookmarks in a folder (requires 'auth')",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.bookmarkListing(cmd, "/bookmarks/folders/"+args[0], folderN,
				"No bookmarks found in this folder.")
		},
	}
	folderCmd.Flags().IntVarP(&folderN, "max-results", "n", 20, "maximum number of results")
	app.cmd.AddCommand(folderCmd)
}

// bookmarkListing fetches a bookmark listing and fills in tweets the API
// returned as id-only entries.
func (a *App) bookmarkListing(cmd *cobra.Command, suffix string, n int, emptyMsg string) error {
	c, err := a.pkceClient(cmd)
	if err != nil {
		return err
	}
	userID, err := c.MyUserID(cmd.Context())
	if err != nil {
		return err
	}

	params := url.Values{}
	params.Set("max_results", strconv.Itoa(clamp(n, 1, 100)))
	params.Set("tweet.fields", api.TweetFieldsBasic)
	params.Set("expansions", api.ExpandAuthor)
	params.Set("user.fields", api.UserFieldsBasic)

	doc, err := c.Get(cmd.Context(), "/users/"+userID+suffix, params)
	if err != nil {
		return err
	}
	api.MergeAuthors(doc)
	c.EnrichTweets(cmd.Context(), api.Items(doc))
	return c.PrintItems(doc, emptyMsg)
}
