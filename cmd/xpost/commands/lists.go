package commands

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/openclaw/xpost/internal/api"
)

func installListCmds(app *App) {
	myListsCmd := &cobra.Command{
		Use:   "my-lists",
		Short: "List your owned lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}
			userID, err := c.MyUserID(cmd.Context())
			if err != nil {
				return err
			}

			params := url.Values{}
			params.Set("list.fields", api.ListFields)

			doc, err := c.Get(cmd.Context(), "/users/"+userID+"/owned_lists", params)
			if err != nil {
				return err
			}
			return c.PrintItems(doc, "No lists found.")
		},
	}
	app.cmd.AddCommand(myListsCmd)

	listCmd := &cobra.Command{
		Use:   "list LIST_ID",
		Short: "Look up a list by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}

			params := url.Values{}
			params.Set("list.fields", api.ListFieldsOwner)

			doc, err := c.Get(cmd.Context(), "/lists/"+args[0], params)
			if err != nil {
				return err
			}
			return c.PrintData(doc)
		},
	}
	app.cmd.AddCommand(listCmd)

	var description string
	var private bool
	createCmd := &cobra.Command{
		Use:   "list-create NAME",
		Short: "Create a new list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}

			payload := api.Document{"name": args[0]}
			if description != "" {
				payload["description"] = description
			}
			if private {
				payload["private"] = true
			}

			doc, err := c.Post(cmd.Context(), "/lists", payload)
			if err != nil {
				return err
			}
			return c.PrintJSON(doc)
		},
	}
	createCmd.Flags().StringVar(&description, "description", "", "list description")
	createCmd.Flags().BoolVar(&private, "private", false, "make the list private")
	app.cmd.AddCommand(createCmd)

	deleteCmd := &cobra.Command{
		Use:   "list-delete LIST_ID",
		Short: "Delete a list you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}
			doc, err := c.Delete(cmd.Context(), "/lists/"+args[0])
			if err != nil {
				return err
			}
			return c.PrintJSON(doc)
		},
	}
	app.cmd.AddCommand(deleteCmd)

	var tweetsN int
	tweetsCmd := &cobra.Command{
		Use:   "list-tweets LIST_ID",
		Short: "Get tweets from a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}

			params := url.Values{}
			params.Set("max_results", strconv.Itoa(clamp(tweetsN, 1, 100)))
			params.Set("tweet.fields", api.TweetFieldsBasic)
			params.Set("expansions", api.ExpandAuthor)
			params.Set("user.fields", api.UserFieldsBasic)

			doc, err := c.Get(cmd.Context(), "/lists/"+args[0]+"/tweets", params)
			if err != nil {
				return err
			}
			api.MergeAuthors(doc)
			return c.PrintItems(doc, "No tweets found in this list.")
		},
	}
	tweetsCmd.Flags().IntVarP(&tweetsN, "max-results", "n", 20, "maximum number of results")
	app.cmd.AddCommand(tweetsCmd)

	membersCmd := &cobra.Command{
		Use:   "list-members LIST_ID",
		Short: "List members of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}

			params := url.Values{}
			params.Set("user.fields", api.UserFieldsPublic)

			doc, err := c.Get(cmd.Context(), "/lists/"+args[0]+"/members", params)
			if err != nil {
				return err
			}
			return c.PrintItems(doc, "No members found in this list.")
		},
	}
	app.cmd.AddCommand(membersCmd)

	addMemberCmd := &cobra.Command{
		Use:   "list-add-member LIST_ID USERNAME",
		Short: "Add a user to a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}
			targetID, err := c.ResolveUsername(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			doc, err := c.Post(cmd.Context(), "/lists/"+args[0]+"/members", api.Document{"user_id": targetID})
			if err != nil {
				return err
			}
			return c.PrintJSON(doc)
		},
	}
	app.cmd.AddCommand(addMemberCmd)

	removeMemberCmd := &cobra.Command{
		Use:   "list-remove-member LIST_ID USERNAME",
		Short: "Remove a user from a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}
			targetID, err := c.ResolveUsername(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			doc, err := c.Delete(cmd.Context(), "/lists/"+args[0]+"/members/"+targetID)
			if err != nil {
				return err
			}
			return c.PrintJSON(doc)
		},
	}
	app.cmd.AddCommand(removeMemberCmd)
}
