package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/greenworld-labs/greenctl/internal/domain"
	"github.com/greenworld-labs/greenctl/internal/domain/config"
	"github.com/greenworld-labs/greenctl/internal/domain/models"
	"github.com/greenworld-labs/greenctl/internal/testutil"
	"github.com/greenworld-labs/greenctl/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const tokenAddress = "0x4444444444444444444444444444444444444444"

// oddABI has a setter with the wrong argument type and one with too many
const oddABI = `[
	{"type":"function","name":"setTradingIsEnabled","inputs":[{"name":"v","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"setLimits","inputs":[{"name":"a","type":"bool"},{"name":"b","type":"bool"}],"outputs":[]}
]`

func callArtifacts() fakeArtifacts {
	return fakeArtifacts{
		"GREENTEST": newArtifact("GREENTEST", testutil.BoolSetterABI, testutil.BoolSetterBytecode),
		"Odd":       newArtifact("Odd", oddABI, "0x00"),
	}
}

func newCall(tx *MockTransactor, repo *MockDeploymentRepository, confirm *stubConfirmer, sink *recordingSink) *usecase.CallAdminMethod {
	cfg := &config.RuntimeConfig{Network: &config.Network{Name: "bsc_testnet", ChainID: 97}}
	return usecase.NewCallAdminMethod(cfg, callArtifacts(), fakeChain{chainID: 97}, tx, repo, confirm, sink, discardLogger())
}

func TestCallAdminMethod(t *testing.T) {
	ctx := context.Background()
	sent := &usecase.TransactResult{
		TxHash:      common.HexToHash("0xabc"),
		Sender:      deployer,
		Nonce:       7,
		ChainID:     97,
		Mined:       true,
		BlockNumber: 12,
		GasUsed:     26000,
	}

	t.Run("invokes the setter exactly once", func(t *testing.T) {
		tx := new(MockTransactor)
		repo := new(MockDeploymentRepository)
		confirm := &stubConfirmer{answer: true}

		tx.On("Transact", ctx, mock.MatchedBy(func(req usecase.TransactRequest) bool {
			return req.Address == common.HexToAddress(tokenAddress) &&
				req.Method == "setTradingIsEnabled" &&
				len(req.Args) == 1 && req.Args[0] == true &&
				!req.NoWait
		})).Return(sent, nil).Once()
		repo.On("GetDeploymentByAddress", ctx, uint64(97), common.HexToAddress(tokenAddress).Hex()).Return(nil, domain.ErrNotFound)
		repo.On("SaveTransaction", ctx, mock.MatchedBy(func(rec *models.Transaction) bool {
			return rec.Status == models.TransactionStatusExecuted && rec.Method == "setTradingIsEnabled(bool)"
		})).Return(nil).Once()

		result, err := newCall(tx, repo, confirm, &recordingSink{}).Run(ctx, usecase.CallAdminMethodParams{
			Artifact: "GREENTEST",
			Address:  tokenAddress,
			Value:    true,
		})
		require.NoError(t, err)

		assert.True(t, result.Mined)
		assert.Equal(t, "setTradingIsEnabled(bool)", result.Signature)
		assert.Equal(t, uint64(12), result.Transaction.BlockNumber)
		assert.Equal(t, []string{"Call setTradingIsEnabled(true) on GREENTEST at " + common.HexToAddress(tokenAddress).Hex()}, confirm.prompts)
		tx.AssertNumberOfCalls(t, "Transact", 1)
		repo.AssertExpectations(t)
	})

	t.Run("address from registry", func(t *testing.T) {
		tx := new(MockTransactor)
		repo := new(MockDeploymentRepository)

		repo.On("GetDeployment", ctx, "97/GREENTEST").Return(&models.Deployment{ContractName: "GREENTEST", Address: tokenAddress}, nil)
		tx.On("Transact", ctx, mock.MatchedBy(func(req usecase.TransactRequest) bool {
			return req.Address == common.HexToAddress(tokenAddress) && req.NoWait
		})).Return(&usecase.TransactResult{TxHash: common.HexToHash("0x01"), ChainID: 97}, nil).Once()
		repo.On("SaveTransaction", ctx, mock.MatchedBy(func(rec *models.Transaction) bool {
			return rec.Status == models.TransactionStatusPending
		})).Return(nil)

		result, err := newCall(tx, repo, &stubConfirmer{answer: true}, &recordingSink{}).Run(ctx, usecase.CallAdminMethodParams{
			Artifact: "GREENTEST",
			Value:    true,
			NoWait:   true,
		})
		require.NoError(t, err)
		assert.False(t, result.Mined)
		repo.AssertExpectations(t)
	})

	t.Run("no address anywhere", func(t *testing.T) {
		tx := new(MockTransactor)
		repo := new(MockDeploymentRepository)
		repo.On("GetDeployment", ctx, "97/GREENTEST").Return(nil, domain.ErrNotFound)

		_, err := newCall(tx, repo, &stubConfirmer{answer: true}, &recordingSink{}).Run(ctx, usecase.CallAdminMethodParams{Artifact: "GREENTEST"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "GREENCTL_CONTRACT_ADDRESS")
		tx.AssertNotCalled(t, "Transact", mock.Anything, mock.Anything)
	})

	t.Run("invalid address", func(t *testing.T) {
		tx := new(MockTransactor)
		_, err := newCall(tx, new(MockDeploymentRepository), &stubConfirmer{answer: true}, &recordingSink{}).Run(ctx, usecase.CallAdminMethodParams{
			Artifact: "GREENTEST",
			Address:  "0xnothex",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
		tx.AssertNotCalled(t, "Transact", mock.Anything, mock.Anything)
	})

	t.Run("method validation", func(t *testing.T) {
		tx := new(MockTransactor)
		uc := newCall(tx, new(MockDeploymentRepository), &stubConfirmer{answer: true}, &recordingSink{})

		_, err := uc.Run(ctx, usecase.CallAdminMethodParams{Artifact: "GREENTEST", Address: tokenAddress, Method: "pause"})
		assert.ErrorIs(t, err, domain.ErrMethodNotFound)

		_, err = uc.Run(ctx, usecase.CallAdminMethodParams{Artifact: "Odd", Address: tokenAddress})
		var sigErr domain.MethodSignatureErr
		require.True(t, errors.As(err, &sigErr))
		assert.Equal(t, "setTradingIsEnabled(uint256)", sigErr.Actual)

		_, err = uc.Run(ctx, usecase.CallAdminMethodParams{Artifact: "Odd", Address: tokenAddress, Method: "setLimits"})
		assert.True(t, errors.As(err, &sigErr))

		tx.AssertNotCalled(t, "Transact", mock.Anything, mock.Anything)
	})

	t.Run("declined", func(t *testing.T) {
		tx := new(MockTransactor)
		repo := new(MockDeploymentRepository)
		repo.On("GetDeploymentByAddress", ctx, mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

		_, err := newCall(tx, repo, &stubConfirmer{answer: false}, &recordingSink{}).Run(ctx, usecase.CallAdminMethodParams{
			Artifact: "GREENTEST",
			Address:  tokenAddress,
		})
		assert.ErrorIs(t, err, domain.ErrAborted)
		tx.AssertNotCalled(t, "Transact", mock.Anything, mock.Anything)
	})

	t.Run("reverted call is recorded as failed", func(t *testing.T) {
		tx := new(MockTransactor)
		repo := new(MockDeploymentRepository)
		repo.On("GetDeploymentByAddress", ctx, mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
		tx.On("Transact", ctx, mock.Anything).Return(sent, domain.ErrTransactionReverted).Once()
		repo.On("SaveTransaction", ctx, mock.MatchedBy(func(rec *models.Transaction) bool {
			return rec.Status == models.TransactionStatusFailed
		})).Return(nil).Once()

		result, err := newCall(tx, repo, &stubConfirmer{answer: true}, &recordingSink{}).Run(ctx, usecase.CallAdminMethodParams{
			Artifact: "GREENTEST",
			Address:  tokenAddress,
			Value:    true,
		})
		assert.ErrorIs(t, err, domain.ErrTransactionReverted)
		require.NotNil(t, result)
		assert.Equal(t, models.TransactionStatusFailed, result.Transaction.Status)
		repo.AssertExpectations(t)
	})

	t.Run("registry knows the address as another contract", func(t *testing.T) {
		tx := new(MockTransactor)
		repo := new(MockDeploymentRepository)
		sink := &recordingSink{}
		repo.On("GetDeploymentByAddress", ctx, mock.Anything, mock.Anything).Return(&models.Deployment{ContractName: "GreenWorld"}, nil)

		_, err := newCall(tx, repo, &stubConfirmer{answer: false}, sink).Run(ctx, usecase.CallAdminMethodParams{
			Artifact: "GREENTEST",
			Address:  tokenAddress,
		})
		assert.ErrorIs(t, err, domain.ErrAborted)
		require.Len(t, sink.infos, 1)
		assert.Contains(t, sink.infos[0], "recorded as GreenWorld")
	})
}
