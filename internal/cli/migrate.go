package cli

import (
	"fmt"

	"github.com/greenworld-labs/greenctl/internal/cli/render"
	"github.com/greenworld-labs/greenctl/internal/usecase"
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate command
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Deploy the library, link it and deploy the main contract",
		Long: `Deploy a library contract, link its address into the main contract's
bytecode and deploy the main contract. The library is always deployed first;
any failure stops the migration and nothing is retried.

Both deployments are recorded in .greenctl/deployments.json.`,
		Example: `  # Deploy IterableMapping and GreenWorld to the default network
  greenctl migrate

  # Check artifacts and linking without sending anything
  greenctl migrate --dry-run

  # Unattended run against a local node
  greenctl migrate --rpc-url http://127.0.0.1:8545 --non-interactive --yes`,
		Annotations: map[string]string{needsNetworkAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.RunMigrationParams{
				Library:  app.Config.Deploy.Library,
				Contract: app.Config.Deploy.Contract,
				DryRun:   app.Config.DryRun,
			}

			result, err := app.RunMigration.Run(cmd.Context(), params)
			if err != nil {
				if result != nil && result.Library != nil && result.Library.Address != "" {
					fmt.Fprintln(cmd.ErrOrStderr(), render.FormatWarning(fmt.Sprintf(
						"%s was deployed at %s before the failure and is recorded", result.Library.ContractName, result.Library.Address)))
				}
				return err
			}

			return render.NewMigrationRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().String("library", "", "Library artifact to deploy first (default from greenctl.toml, IterableMapping)")
	cmd.Flags().String("contract", "", "Contract artifact linking the library (default from greenctl.toml, GreenWorld)")
	cmd.Flags().Bool("dry-run", false, "Load and link without sending transactions")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
