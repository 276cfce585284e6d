package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/greenworld-labs/greenctl/internal/adapters/progress"
	"github.com/greenworld-labs/greenctl/internal/app"
	"github.com/greenworld-labs/greenctl/internal/config"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"

	// needsNetworkAnnotation marks commands that talk to a node
	needsNetworkAnnotation = "greenctl/needs-network"
)

// session holds what PersistentPreRunE acquires for a single run
type session struct {
	ctx    context.Context
	cancel context.CancelFunc
	app    *app.App
}

// close cancels the timeout and releases the node connection; safe to call twice
func (s *session) close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.app != nil {
		s.app.Close()
		s.app = nil
	}
}

// Execute runs the root command. Cleanup happens here because cobra skips
// PersistentPostRun when RunE fails.
func Execute(ctx context.Context) error {
	s := &session{}
	return run(ctx, newRootCmd(s), s)
}

func run(ctx context.Context, cmd *cobra.Command, s *session) error {
	defer s.close()
	return cmd.ExecuteContext(ctx)
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&session{})
}

func newRootCmd(s *session) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "greenctl",
		Short: "Deploy and administer the GreenWorld contracts",
		Long: `greenctl deploys the IterableMapping library, links it into GreenWorld and
deploys GreenWorld, and flips administrative switches on deployed tokens.

Configuration is read from greenctl.toml, .env files and GREENCTL_* variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			// Find project root, falling back to the working directory and defaults
			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				if projectRoot, err = os.Getwd(); err != nil {
					return err
				}
			}

			v := config.SetupViper(projectRoot)
			if err := config.BindFlags(v, cmd); err != nil {
				return err
			}

			appInstance, err := initApp(cmd, v)
			if err != nil {
				return err
			}
			s.app = appInstance

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 {
				ctx, s.cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}

			s.ctx = ctx
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			s.close()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network from greenctl.toml [networks] (e.g., bsc_testnet)")
	rootCmd.PersistentFlags().String("rpc-url", "", "Node endpoint, overrides the network's url (env: GREENCTL_ENDPOINT_URL)")
	rootCmd.PersistentFlags().Duration("timeout", 5*time.Minute, "Give up on node operations after this long")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Main commands
	migrateCmd := NewMigrateCmd()
	migrateCmd.GroupID = "main"
	rootCmd.AddCommand(migrateCmd)

	callCmd := NewCallCmd()
	callCmd.GroupID = "main"
	rootCmd.AddCommand(callCmd)

	// Management commands
	deploymentsCmd := NewDeploymentsCmd()
	deploymentsCmd.GroupID = "management"
	rootCmd.AddCommand(deploymentsCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	configCmd := NewConfigCmd()
	configCmd.GroupID = "management"
	rootCmd.AddCommand(configCmd)

	// Version command
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initApp wires the app, asking for a network first when a node is needed
// and none could be resolved
func initApp(cmd *cobra.Command, v *viper.Viper) (*app.App, error) {
	sink := progress.NewSink(v.GetBool("non_interactive"))

	appInstance, err := app.InitApp(v, sink)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app: %w", err)
	}

	if appInstance.Config.Network != nil || cmd.Annotations[needsNetworkAnnotation] == "" {
		return appInstance, nil
	}

	names := lo.Keys(appInstance.Config.Project.Networks)
	sort.Strings(names)

	name, err := appInstance.NetworkSelector.SelectNetwork(cmd.Context(), names)
	if err != nil {
		return nil, fmt.Errorf("no network selected (use --network): %w", err)
	}

	v.Set("network", name)
	appInstance.Close()
	appInstance, err = app.InitApp(v, sink)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app: %w", err)
	}
	return appInstance, nil
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
