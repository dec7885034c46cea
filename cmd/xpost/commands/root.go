// Package commands contains the commands of the xpost command line tool.
package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ubuntu/decorate"

	"github.com/openclaw/xpost/internal/api"
	"github.com/openclaw/xpost/internal/auth"
	"github.com/openclaw/xpost/internal/cli"
	"github.com/openclaw/xpost/internal/config"
	"github.com/openclaw/xpost/internal/constants"
)

// App encapsulates the commands and configuration of the xpost application.
type App struct {
	cmd   *cobra.Command
	viper *viper.Viper

	config appConfig
	creds  *config.Provider

	// apiBaseURL is overridden in tests to point at a local server.
	apiBaseURL string
}

type appConfig struct {
	Verbose   int
	TokenFile string `mapstructure:"token-file"`
}

// New registers commands and returns a new App.
func New() (*App, error) {
	a := App{
		viper:      viper.New(),
		apiBaseURL: constants.APIBaseURL,
	}

	a.cmd = &cobra.Command{
		Use:           constants.CmdName + " COMMAND",
		Short:         "Command line client for the X API",
		Long:          "Command line client for the X API v2, using OAuth 1.0a, app-only bearer tokens and OAuth 2.0 PKCE.",
		SilenceErrors: true,
		Version:       constants.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Command parsing has been successful. Returned errors are now
			// runtime ones, the usage should not be printed along them.
			a.cmd.SilenceUsage = true

			if err := cli.InitViperConfig(constants.CmdName, cmd, a.viper); err != nil {
				return err
			}
			if err := a.viper.Unmarshal(&a.config); err != nil {
				return fmt.Errorf("unable to decode configuration into struct: %w", err)
			}

			cli.SetVerbosity(a.config.Verbose)
			return nil
		},
	}

	a.cmd.PersistentFlags().CountVarP(&a.config.Verbose, "verbose", "v", "issue INFO (-v), DEBUG (-vv) output")
	a.cmd.PersistentFlags().StringVar(&a.config.TokenFile, "token-file", constants.DefaultTokenPath, "path of the OAuth 2.0 token cache")

	if err := a.viper.BindPFlags(a.cmd.PersistentFlags()); err != nil {
		return nil, err
	}
	cli.InstallConfigFlag(a.cmd)

	a.creds = config.New(constants.OpenClawConfigPath)

	installPostCmds(&a)
	installReadCmds(&a)
	installUserCmds(&a)
	installEngageCmds(&a)
	installModerateCmds(&a)
	installDMCmds(&a)
	installAccountCmds(&a)
	installAuthCmd(&a)
	installBookmarkCmds(&a)
	installListCmds(&a)
	installStreamCmds(&a)
	installDiscoverCmds(&a)

	return &a, nil
}

// Run executes the command and associated process. It returns an error on failure.
func (a App) Run() error {
	return a.cmd.Execute()
}

// UsageError returns if the error is a command parsing or runtime one.
func (a App) UsageError() bool {
	return !a.cmd.SilenceUsage
}

// RootCmd returns a copy of the root command for the app. Shouldn't be in general necessary apart when running generators.
func (a App) RootCmd() cobra.Command {
	return *a.cmd
}

// oauth1Client returns an API client in the OAuth 1.0a user context.
func (a *App) oauth1Client(cmd *cobra.Command) (c *api.Client, err error) {
	defer decorate.OnError(&err, "could not build user context client")

	creds, err := a.creds.OAuth1()
	if err != nil {
		return nil, err
	}
	return api.New(auth.OAuth1Client(creds), a.clientOptions(cmd)...), nil
}

// bearerClient returns an API client in the app-only bearer context.
func (a *App) bearerClient(cmd *cobra.Command) (c *api.Client, err error) {
	defer decorate.OnError(&err, "could not build app-only client")

	token, err := a.creds.Bearer()
	if err != nil {
		return nil, err
	}
	return api.New(auth.BearerClient(token), a.clientOptions(cmd)...), nil
}

// pkceClient returns an API client in the OAuth 2.0 PKCE user context,
// refreshing the cached token when needed.
func (a *App) pkceClient(cmd *cobra.Command) (c *api.Client, err error) {
	defer decorate.OnError(&err, "could not build OAuth 2.0 client")

	flow, err := a.pkceFlow()
	if err != nil {
		return nil, err
	}
	httpClient, err := flow.Client(cmd.Context())
	if err != nil {
		return nil, err
	}
	return api.New(httpClient, a.clientOptions(cmd)...), nil
}

// pkceFlow builds the PKCE flow from the configured OAuth 2.0 client.
func (a *App) pkceFlow(args ...auth.FlowOptions) (*auth.Flow, error) {
	clientID, err := a.creds.ClientID()
	if err != nil {
		return nil, err
	}
	return auth.NewFlow(clientID, a.creds.ClientSecret(), auth.NewStore(a.config.TokenFile), args...), nil
}

func (a *App) clientOptions(cmd *cobra.Command) []api.Options {
	return []api.Options{
		api.WithBaseURL(a.apiBaseURL),
		api.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	}
}

// proAccessHint appends a Pro access hint on 403 answers from endpoints
// gated behind Pro access.
func proAccessHint(cmd *cobra.Command, err error, feature string) error {
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) && reqErr.StatusCode == 403 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Hint: %s requires Pro access ($5,000/month).\n", feature)
	}
	return err
}

func debugLogCommand(cmd *cobra.Command) {
	slog.Debug("Running command", "command", cmd.Name())
}

// clamp bounds n to the window accepted by the API for max_results.
func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}
