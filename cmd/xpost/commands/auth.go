package commands

import (
	"github.com/spf13/cobra"
)

func installAuthCmd(app *App) {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize via OAuth 2.0 PKCE (required for bookmarks)",
		Long: "Run the OAuth 2.0 Authorization Code flow with PKCE. A browser window opens on the " +
			"authorization page and a one-shot listener on the loopback interface captures the redirect. " +
			"The resulting tokens are cached on disk and refreshed automatically.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)

			flow, err := app.pkceFlow()
			if err != nil {
				return err
			}
			return flow.Authorize(cmd.Context())
		},
	}
	app.cmd.AddCommand(authCmd)
}
