package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/greenworld-labs/greenctl/internal/adapters/linker"
	"github.com/greenworld-labs/greenctl/internal/domain"
	"github.com/greenworld-labs/greenctl/internal/domain/config"
	"github.com/greenworld-labs/greenctl/internal/domain/models"
	"github.com/greenworld-labs/greenctl/internal/testutil"
	"github.com/greenworld-labs/greenctl/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	libAddress  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	mainAddress = common.HexToAddress("0x2222222222222222222222222222222222222222")
	deployer    = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func migrationArtifacts() fakeArtifacts {
	return fakeArtifacts{
		"IterableMapping": newArtifact("IterableMapping", "[]", testutil.LibraryBytecode),
		"GreenWorld":      newArtifact("GreenWorld", "[]", testutil.LinkedBytecode(linker.LegacyPlaceholder("IterableMapping"))),
		"Standalone":      newArtifact("Standalone", "[]", testutil.BoolSetterBytecode),
	}
}

func newMigration(artifacts fakeArtifacts, dep *MockDeployer, repo *MockDeploymentRepository, confirm *stubConfirmer, sink *recordingSink) *usecase.RunMigration {
	cfg := &config.RuntimeConfig{Network: &config.Network{Name: "bsc_testnet", ChainID: 97}}
	return usecase.NewRunMigration(cfg, artifacts, linker.NewLinker(), dep, repo, confirm, sink, discardLogger())
}

func TestRunMigration(t *testing.T) {
	ctx := context.Background()
	params := usecase.RunMigrationParams{Library: "IterableMapping", Contract: "GreenWorld"}

	t.Run("library first then linked contract", func(t *testing.T) {
		dep := new(MockDeployer)
		repo := new(MockDeploymentRepository)
		sink := &recordingSink{}

		var order []string
		dep.On("Deploy", ctx, mock.MatchedBy(func(req usecase.DeployRequest) bool {
			return req.Name == "IterableMapping"
		})).Run(func(args mock.Arguments) {
			order = append(order, "IterableMapping")
		}).Return(&usecase.DeployResult{Address: libAddress, ChainID: 97, Deployer: deployer, BlockNumber: 1}, nil).Once()

		dep.On("Deploy", ctx, mock.MatchedBy(func(req usecase.DeployRequest) bool {
			return req.Name == "GreenWorld" && bytes.Contains(req.Bytecode, libAddress.Bytes())
		})).Run(func(args mock.Arguments) {
			order = append(order, "GreenWorld")
		}).Return(&usecase.DeployResult{Address: mainAddress, ChainID: 97, Deployer: deployer, BlockNumber: 2}, nil).Once()

		repo.On("GetDeployment", ctx, mock.Anything).Return(nil, domain.ErrNotFound)
		repo.On("SaveDeployment", ctx, mock.Anything).Return(nil)

		result, err := newMigration(migrationArtifacts(), dep, repo, &stubConfirmer{answer: true}, sink).Run(ctx, params)
		require.NoError(t, err)

		assert.Equal(t, []string{"IterableMapping", "GreenWorld"}, order)
		assert.Equal(t, "97/IterableMapping", result.Library.ID)
		assert.Equal(t, models.LibraryDeployment, result.Library.Type)
		assert.Equal(t, mainAddress.Hex(), result.Contract.Address)
		assert.Equal(t, models.SingletonDeployment, result.Contract.Type)
		assert.Equal(t, map[string]string{"IterableMapping": libAddress.Hex()}, result.Contract.Libraries)
		assert.Equal(t, usecase.StageCompleted, sink.events[len(sink.events)-1].Stage)

		dep.AssertNumberOfCalls(t, "Deploy", 2)
		repo.AssertNumberOfCalls(t, "SaveDeployment", 2)
	})

	t.Run("contract without library slot fails before anything is sent", func(t *testing.T) {
		dep := new(MockDeployer)
		repo := new(MockDeploymentRepository)
		confirm := &stubConfirmer{answer: true}

		_, err := newMigration(migrationArtifacts(), dep, repo, confirm, &recordingSink{}).Run(ctx, usecase.RunMigrationParams{
			Library:  "IterableMapping",
			Contract: "Standalone",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not link against library IterableMapping")
		assert.Empty(t, confirm.prompts)
		dep.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything)
	})

	t.Run("missing artifact", func(t *testing.T) {
		dep := new(MockDeployer)
		_, err := newMigration(migrationArtifacts(), dep, new(MockDeploymentRepository), &stubConfirmer{answer: true}, &recordingSink{}).Run(ctx, usecase.RunMigrationParams{
			Library:  "IterableMapping",
			Contract: "GreenWrld",
		})
		assert.ErrorIs(t, err, domain.ErrContractNotFound)
		dep.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything)
	})

	t.Run("declined confirmation", func(t *testing.T) {
		dep := new(MockDeployer)
		confirm := &stubConfirmer{answer: false}

		_, err := newMigration(migrationArtifacts(), dep, new(MockDeploymentRepository), confirm, &recordingSink{}).Run(ctx, params)
		assert.ErrorIs(t, err, domain.ErrAborted)
		assert.Equal(t, []string{"Deploy IterableMapping and GreenWorld to bsc_testnet"}, confirm.prompts)
		dep.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything)
	})

	t.Run("library failure stops the flow", func(t *testing.T) {
		dep := new(MockDeployer)
		repo := new(MockDeploymentRepository)
		dep.On("Deploy", ctx, mock.Anything).Return(nil, errors.New("insufficient funds")).Once()

		result, err := newMigration(migrationArtifacts(), dep, repo, &stubConfirmer{answer: true}, &recordingSink{}).Run(ctx, params)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "failed to deploy IterableMapping")
		dep.AssertNumberOfCalls(t, "Deploy", 1)
		repo.AssertNotCalled(t, "SaveDeployment", mock.Anything, mock.Anything)
	})

	t.Run("contract failure keeps library recorded", func(t *testing.T) {
		dep := new(MockDeployer)
		repo := new(MockDeploymentRepository)
		dep.On("Deploy", ctx, mock.MatchedBy(func(req usecase.DeployRequest) bool {
			return req.Name == "IterableMapping"
		})).Return(&usecase.DeployResult{Address: libAddress, ChainID: 97}, nil).Once()
		dep.On("Deploy", ctx, mock.Anything).Return(nil, domain.ErrTransactionReverted).Once()
		repo.On("GetDeployment", ctx, "97/IterableMapping").Return(nil, domain.ErrNotFound)
		repo.On("SaveDeployment", ctx, mock.Anything).Return(nil).Once()

		result, err := newMigration(migrationArtifacts(), dep, repo, &stubConfirmer{answer: true}, &recordingSink{}).Run(ctx, params)
		assert.ErrorIs(t, err, domain.ErrTransactionReverted)
		require.NotNil(t, result)
		assert.Equal(t, libAddress.Hex(), result.Library.Address)
		assert.Nil(t, result.Contract)
		repo.AssertExpectations(t)
	})

	t.Run("dry run sends nothing", func(t *testing.T) {
		dep := new(MockDeployer)
		repo := new(MockDeploymentRepository)
		confirm := &stubConfirmer{answer: true}

		result, err := newMigration(migrationArtifacts(), dep, repo, confirm, &recordingSink{}).Run(ctx, usecase.RunMigrationParams{
			Library:  "IterableMapping",
			Contract: "GreenWorld",
			DryRun:   true,
		})
		require.NoError(t, err)
		assert.True(t, result.DryRun)
		assert.Equal(t, "97/GreenWorld", result.Contract.ID)
		assert.Empty(t, result.Contract.Address)
		assert.Equal(t, 34, result.LinkedSize)
		assert.Empty(t, confirm.prompts)
		dep.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "SaveDeployment", mock.Anything, mock.Anything)
	})

	t.Run("names required", func(t *testing.T) {
		_, err := newMigration(migrationArtifacts(), new(MockDeployer), new(MockDeploymentRepository), &stubConfirmer{}, &recordingSink{}).Run(ctx, usecase.RunMigrationParams{})
		assert.Error(t, err)
	})
}
