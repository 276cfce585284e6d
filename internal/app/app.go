package app

import (
	"github.com/greenworld-labs/greenctl/internal/adapters/blockchain"
	"github.com/greenworld-labs/greenctl/internal/domain/config"
	"github.com/greenworld-labs/greenctl/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	NetworkSelector usecase.NetworkSelector

	// Use cases
	RunMigration    *usecase.RunMigration
	CallAdminMethod *usecase.CallAdminMethod
	ListDeployments *usecase.ListDeployments
	ListNetworks    *usecase.ListNetworks
	ShowConfig      *usecase.ShowConfig

	client *blockchain.Client
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	runMigration *usecase.RunMigration,
	callAdminMethod *usecase.CallAdminMethod,
	listDeployments *usecase.ListDeployments,
	listNetworks *usecase.ListNetworks,
	showConfig *usecase.ShowConfig,
	networkSelector usecase.NetworkSelector,
	client *blockchain.Client,
) (*App, error) {
	return &App{
		Config:          cfg,
		RunMigration:    runMigration,
		CallAdminMethod: callAdminMethod,
		ListDeployments: listDeployments,
		ListNetworks:    listNetworks,
		ShowConfig:      showConfig,
		NetworkSelector: networkSelector,
		client:          client,
	}, nil
}

// Close releases the node connection, if one was made
func (a *App) Close() {
	if a.client != nil {
		a.client.Close()
	}
}
