package commands

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/openclaw/xpost/internal/api"
	"github.com/openclaw/xpost/internal/constants"
)

func installAccountCmds(app *App) {
	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify that the OAuth 1.0a credentials work",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}

			doc, err := c.Get(cmd.Context(), "/users/me", nil)
			if err != nil {
				return err
			}
			data, _ := doc["data"].(map[string]any)
			fmt.Fprintf(cmd.OutOrStdout(), "Authenticated as: @%v (%v)\n", data["username"], data["name"])
			return nil
		},
	}
	app.cmd.AddCommand(verifyCmd)

	meCmd := &cobra.Command{
		Use:   "me",
		Short: "Get your profile info",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}

			params := url.Values{}
			params.Set("user.fields", api.UserFieldsMe)

			doc, err := c.Get(cmd.Context(), "/users/me", params)
			if err != nil {
				return err
			}
			return c.PrintData(doc)
		},
	}
	app.cmd.AddCommand(meCmd)

	profileCmd := &cobra.Command{
		Use:   "profile TEXT",
		Short: "Update your bio",
		Long:  "Update your bio. This goes through the v1.1 API, which has no v2 equivalent for profile updates.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			c, err := app.oauth1Client(cmd)
			if err != nil {
				return err
			}

			form := url.Values{}
			form.Set("description", args[0])

			doc, err := c.PostForm(cmd.Context(), app.profileURL(), form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bio updated: %v\n", doc["description"])
			return nil
		},
	}
	app.cmd.AddCommand(profileCmd)
}

// profileURL returns the v1.1 profile update endpoint, following the base URL
// override in tests.
func (a *App) profileURL() string {
	if a.apiBaseURL != constants.APIBaseURL {
		return a.apiBaseURL + "/account/update_profile.json"
	}
	return constants.UpdateProfileURL
}
