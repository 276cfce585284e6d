package cli

import (
	"fmt"
	"strings"

	"github.com/greenworld-labs/greenctl/internal/cli/render"
	"github.com/greenworld-labs/greenctl/internal/domain/models"
	"github.com/greenworld-labs/greenctl/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeploymentsCmd creates the deployments command
func NewDeploymentsCmd() *cobra.Command {
	var (
		contractName string
		deployType   string
		allChains    bool
	)

	cmd := &cobra.Command{
		Use:     "deployments",
		Aliases: []string{"ls", "list"},
		Short:   "List recorded deployments and calls",
		Long: `List deployments and administrative calls recorded in .greenctl/.

Only the current network's chain is shown unless --all is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			// Convert string type to domain type
			var deploymentType models.DeploymentType
			switch strings.ToLower(deployType) {
			case "":
			case "singleton":
				deploymentType = models.SingletonDeployment
			case "library":
				deploymentType = models.LibraryDeployment
			default:
				return fmt.Errorf("invalid deployment type: %s (valid: singleton, library)", deployType)
			}

			result, err := app.ListDeployments.Run(cmd.Context(), usecase.ListDeploymentsParams{
				ContractName: contractName,
				Type:         deploymentType,
				AllChains:    allChains,
			})
			if err != nil {
				return err
			}

			return render.NewDeploymentsRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().StringVar(&contractName, "contract", "", "Filter by contract name")
	cmd.Flags().StringVar(&deployType, "type", "", "Filter by deployment type (singleton, library)")
	cmd.Flags().BoolVar(&allChains, "all", false, "Show every chain, not just the current network")

	return cmd
}
