package cli

import (
	"github.com/greenworld-labs/greenctl/internal/cli/render"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Show the configuration greenctl would run with after merging defaults,
greenctl.toml, .env files, GREENCTL_* variables and flags.

The private key is masked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowConfig.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewConfigRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	return cmd
}
