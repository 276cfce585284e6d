package cli

import (
	"github.com/greenworld-labs/greenctl/internal/cli/render"
	"github.com/spf13/cobra"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List available networks from greenctl.toml",
		Long: `List all networks configured in the [networks] section of greenctl.toml.

This command shows all available networks and attempts to fetch their chain IDs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	return cmd
}
