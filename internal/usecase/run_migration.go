package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/greenworld-labs/greenctl/internal/domain"
	"github.com/greenworld-labs/greenctl/internal/domain/config"
	"github.com/greenworld-labs/greenctl/internal/domain/models"
)

// RunMigrationParams contains parameters for the deploy migration
type RunMigrationParams struct {
	Library  string
	Contract string
	DryRun   bool
}

// MigrationResult holds the two deployments of a migration.
// On dry runs the deployments carry no address and nothing is recorded.
type MigrationResult struct {
	Network  *config.Network
	Library  *models.Deployment
	Contract *models.Deployment
	DryRun   bool

	// Size of the linked creation code of the main contract
	LinkedSize int
}

// RunMigration deploys a library, links it into a contract and deploys the contract
type RunMigration struct {
	config    *config.RuntimeConfig
	artifacts ArtifactRepository
	linker    BytecodeLinker
	deployer  ContractDeployer
	repo      DeploymentRepository
	confirmer Confirmer
	sink      ProgressSink
	log       *slog.Logger
}

// NewRunMigration creates a new RunMigration use case
func NewRunMigration(
	cfg *config.RuntimeConfig,
	artifacts ArtifactRepository,
	linker BytecodeLinker,
	deployer ContractDeployer,
	repo DeploymentRepository,
	confirmer Confirmer,
	sink ProgressSink,
	log *slog.Logger,
) *RunMigration {
	return &RunMigration{
		config:    cfg,
		artifacts: artifacts,
		linker:    linker,
		deployer:  deployer,
		repo:      repo,
		confirmer: confirmer,
		sink:      sink,
		log:       log.With("usecase", "migrate"),
	}
}

// Run executes the migration. Steps run strictly in order and the first
// failure stops the flow; a library deployed before a failure stays recorded.
func (uc *RunMigration) Run(ctx context.Context, params RunMigrationParams) (*MigrationResult, error) {
	if params.Library == "" || params.Contract == "" {
		return nil, fmt.Errorf("both a library and a contract name are required")
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageLoading,
		Message: fmt.Sprintf("%s, %s", params.Library, params.Contract),
		Spinner: true,
	})

	libArtifact, err := uc.artifacts.Get(ctx, params.Library)
	if err != nil {
		return nil, fmt.Errorf("failed to load library artifact: %w", err)
	}
	mainArtifact, err := uc.artifacts.Get(ctx, params.Contract)
	if err != nil {
		return nil, fmt.Errorf("failed to load contract artifact: %w", err)
	}

	link := models.LibraryLink{Name: libArtifact.Name, Path: libArtifact.SourceUnit()}
	if !uc.linker.References(mainArtifact, link) {
		return nil, fmt.Errorf("%s does not link against library %s", mainArtifact.Name, libArtifact.Name)
	}

	result := &MigrationResult{Network: uc.config.Network, DryRun: params.DryRun}

	if params.DryRun {
		return uc.plan(ctx, result, libArtifact, mainArtifact, link)
	}

	ok, err := uc.confirmer.Confirm(ctx, uc.confirmPrompt(libArtifact.Name, mainArtifact.Name))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAborted
	}

	// Library first
	libResult, err := uc.deploy(ctx, libArtifact, nil)
	if err != nil {
		return nil, err
	}
	result.Library, err = uc.record(ctx, libArtifact, libResult, models.LibraryDeployment, nil)
	if err != nil {
		return result, err
	}
	uc.sink.Info(fmt.Sprintf("%s deployed at %s", libArtifact.Name, libResult.Address.Hex()))

	// Then the contract, linked against the library just deployed
	link.Address = libResult.Address.Hex()
	mainResult, err := uc.deploy(ctx, mainArtifact, []models.LibraryLink{link})
	if err != nil {
		return result, err
	}
	result.Contract, err = uc.record(ctx, mainArtifact, mainResult, models.SingletonDeployment, map[string]string{
		link.Name: link.Address,
	})
	if err != nil {
		return result, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
	return result, nil
}

// plan links against the zero address so placeholder problems surface without sending anything
func (uc *RunMigration) plan(ctx context.Context, result *MigrationResult, libArtifact, mainArtifact *models.Artifact, link models.LibraryLink) (*MigrationResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageLinking, Message: mainArtifact.Name})

	if _, err := uc.linker.Link(libArtifact, nil); err != nil {
		return nil, err
	}

	link.Address = common.Address{}.Hex()
	code, err := uc.linker.Link(mainArtifact, []models.LibraryLink{link})
	if err != nil {
		return nil, err
	}

	var chainID uint64
	if uc.config.Network != nil {
		chainID = uc.config.Network.ChainID
	}

	result.LinkedSize = len(code)
	result.Library = &models.Deployment{
		ID:           models.DeploymentID(chainID, libArtifact.Name),
		ChainID:      chainID,
		ContractName: libArtifact.Name,
		Type:         models.LibraryDeployment,
		ArtifactPath: libArtifact.Path,
	}
	result.Contract = &models.Deployment{
		ID:           models.DeploymentID(chainID, mainArtifact.Name),
		ChainID:      chainID,
		ContractName: mainArtifact.Name,
		Type:         models.SingletonDeployment,
		Libraries:    map[string]string{link.Name: ""},
		ArtifactPath: mainArtifact.Path,
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
	return result, nil
}

func (uc *RunMigration) deploy(ctx context.Context, artifact *models.Artifact, libs []models.LibraryLink) (*DeployResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageLinking, Message: artifact.Name})

	parsedABI, err := artifact.ParseABI()
	if err != nil {
		return nil, err
	}
	code, err := uc.linker.Link(artifact, libs)
	if err != nil {
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageDeploying, Message: artifact.Name, Spinner: true})
	uc.log.Debug("deploying", "contract", artifact.Name, "size", len(code))

	res, err := uc.deployer.Deploy(ctx, DeployRequest{
		Name:     artifact.Name,
		ABI:      parsedABI,
		Bytecode: code,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", artifact.Name, err)
	}
	return res, nil
}

// record saves a deployment, keeping the creation time of an earlier record for the same ID
func (uc *RunMigration) record(ctx context.Context, artifact *models.Artifact, res *DeployResult, kind models.DeploymentType, libs map[string]string) (*models.Deployment, error) {
	now := time.Now()
	dep := &models.Deployment{
		ID:              models.DeploymentID(res.ChainID, artifact.Name),
		ChainID:         res.ChainID,
		ContractName:    artifact.Name,
		Address:         res.Address.Hex(),
		Type:            kind,
		Libraries:       libs,
		TransactionHash: res.TxHash.Hex(),
		BlockNumber:     res.BlockNumber,
		GasUsed:         res.GasUsed,
		Deployer:        res.Deployer.Hex(),
		ArtifactPath:    artifact.Path,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	previous, err := uc.repo.GetDeployment(ctx, dep.ID)
	switch {
	case err == nil:
		dep.CreatedAt = previous.CreatedAt
	case !errors.Is(err, domain.ErrNotFound):
		return dep, fmt.Errorf("failed to read registry: %w", err)
	}

	if err := uc.repo.SaveDeployment(ctx, dep); err != nil {
		return dep, fmt.Errorf("%s deployed at %s but could not be recorded: %w", dep.ContractName, dep.Address, err)
	}
	return dep, nil
}

func (uc *RunMigration) confirmPrompt(library, contract string) string {
	network := "the configured network"
	if uc.config.Network != nil {
		network = uc.config.Network.Name
	}
	return fmt.Sprintf("Deploy %s and %s to %s", library, contract, network)
}
