package adapters

import (
	"github.com/google/wire"
	"github.com/greenworld-labs/greenctl/internal/adapters/artifacts"
	"github.com/greenworld-labs/greenctl/internal/adapters/blockchain"
	"github.com/greenworld-labs/greenctl/internal/adapters/interactive"
	"github.com/greenworld-labs/greenctl/internal/adapters/linker"
	"github.com/greenworld-labs/greenctl/internal/adapters/repository/deployments"
	"github.com/greenworld-labs/greenctl/internal/adapters/senders"
	"github.com/greenworld-labs/greenctl/internal/config"
	"github.com/greenworld-labs/greenctl/internal/usecase"
)

// ProvideSecretMasker provides the masking used when secrets are displayed
func ProvideSecretMasker() usecase.SecretMasker {
	return config.MaskSecret
}

// ArtifactSet provides artifact loading and linking
var ArtifactSet = wire.NewSet(
	artifacts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Repository)),

	linker.NewLinker,
	wire.Bind(new(usecase.BytecodeLinker), new(*linker.Linker)),
)

// RegistrySet provides the file-based deployment registry
var RegistrySet = wire.NewSet(
	deployments.ProvideFileRepository,
	wire.Bind(new(usecase.DeploymentRepository), new(*deployments.FileRepository)),
)

// BlockchainSet provides node-backed implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	wire.Bind(new(usecase.ChainClient), new(*blockchain.Client)),

	blockchain.NewDeployer,
	wire.Bind(new(usecase.ContractDeployer), new(*blockchain.Deployer)),

	blockchain.NewTransactor,
	wire.Bind(new(usecase.ContractTransactor), new(*blockchain.Transactor)),

	blockchain.NewCheckerAdapter,
	wire.Bind(new(usecase.ChainIDProber), new(*blockchain.CheckerAdapter)),
)

// SenderSet provides the transaction signer
var SenderSet = wire.NewSet(
	senders.NewPrivateKeySigner,
	wire.Bind(new(usecase.Signer), new(*senders.PrivateKeySigner)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.NetworkSelector), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideNetworkResolver,
	wire.Bind(new(usecase.NetworkCatalog), new(*config.NetworkResolver)),
	ProvideSecretMasker,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ArtifactSet,
	RegistrySet,
	BlockchainSet,
	SenderSet,
	InteractiveSet,
	ConfigSet,
)
