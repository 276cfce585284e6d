package cli

import (
	"github.com/greenworld-labs/greenctl/internal/cli/render"
	"github.com/greenworld-labs/greenctl/internal/usecase"
	"github.com/spf13/cobra"
)

// NewCallCmd creates the call command
func NewCallCmd() *cobra.Command {
	var (
		value  bool
		noWait bool
	)

	cmd := &cobra.Command{
		Use:   "call",
		Short: "Send one administrative transaction to a deployed contract",
		Long: `Attach to a deployed contract with its artifact ABI and send a single
transaction calling a boolean setter, setTradingIsEnabled(true) by default.

The target address comes from --address, GREENCTL_CONTRACT_ADDRESS or
contract_address in greenctl.toml, and otherwise from the deployment registry.
The command waits for the receipt unless --no-wait is given.`,
		Example: `  # Enable trading on GREENTEST at the configured address
  greenctl call

  # Disable it again on a specific address
  greenctl call --address 0x... --value=false`,
		Annotations: map[string]string{needsNetworkAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.CallAdminMethodParams{
				Artifact: app.Config.Call.Artifact,
				Address:  app.Config.Call.Address,
				Method:   app.Config.Call.Method,
				Value:    value,
				NoWait:   noWait,
			}

			result, err := app.CallAdminMethod.Run(cmd.Context(), params)
			if result != nil && result.Transaction != nil {
				if renderErr := render.NewCallRenderer(cmd.OutOrStdout()).Render(result); renderErr != nil {
					return renderErr
				}
			}
			return err
		},
	}

	cmd.Flags().String("artifact", "", "Artifact whose ABI is used (default from greenctl.toml, GREENTEST)")
	cmd.Flags().String("address", "", "Contract address (env: GREENCTL_CONTRACT_ADDRESS)")
	cmd.Flags().String("method", "", "Boolean setter to call (default setTradingIsEnabled)")
	cmd.Flags().BoolVar(&value, "value", true, "Value passed to the setter")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "Return once the transaction is sent")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
