package commands

import (
	"github.com/spf13/cobra"
)

func installModerateCmds(app *App) {
	muteCmd := &cobra.Command{
		Use:   "mute USERNAME",
		Short: "Mute a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.userAction(cmd, "/muting", args[0])
		},
	}
	app.cmd.AddCommand(muteCmd)

	unmuteCmd := &cobra.Command{
		Use:   "unmute USERNAME",
		Short: "Unmute a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.userActionUndo(cmd, "/muting", args[0])
		},
	}
	app.cmd.AddCommand(unmuteCmd)

	blockCmd := &cobra.Command{
		Use:   "block USERNAME",
		Short: "Block a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.userAction(cmd, "/blocking", args[0])
		},
	}
	app.cmd.AddCommand(blockCmd)

	unblockCmd := &cobra.Command{
		Use:   "unblock USERNAME",
		Short: "Unblock a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debugLogCommand(cmd)
			return app.userActionUndo(cmd, "/blocking", args[0])
		},
	}
	app.cmd.AddCommand(unblockCmd)
}
