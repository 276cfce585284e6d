//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/greenworld-labs/greenctl/internal/adapters"
	"github.com/greenworld-labs/greenctl/internal/config"
	"github.com/greenworld-labs/greenctl/internal/logging"
	"github.com/greenworld-labs/greenctl/internal/usecase"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewRunMigration,
		usecase.NewCallAdminMethod,
		usecase.NewListDeployments,
		usecase.NewListNetworks,
		usecase.NewShowConfig,

		// App
		NewApp,
	)
	return nil, nil
}
