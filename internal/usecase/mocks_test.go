package usecase_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/greenworld-labs/greenctl/internal/domain"
	"github.com/greenworld-labs/greenctl/internal/domain/models"
	"github.com/greenworld-labs/greenctl/internal/usecase"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeArtifacts serves artifacts from memory
type fakeArtifacts map[string]*models.Artifact

func (f fakeArtifacts) Get(ctx context.Context, name string) (*models.Artifact, error) {
	a, ok := f[name]
	if !ok {
		return nil, domain.ContractNotFoundErr{Name: name}
	}
	return a, nil
}

func (f fakeArtifacts) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	return names, nil
}

func newArtifact(name, abiJSON, bytecode string) *models.Artifact {
	return &models.Artifact{
		ContractName: name,
		ABI:          json.RawMessage(abiJSON),
		Bytecode:     models.BytecodeObject{Object: bytecode},
		Name:         name,
		Path:         "build/contracts/" + name + ".json",
	}
}

// MockDeploymentRepository is a mock implementation of DeploymentRepository
type MockDeploymentRepository struct {
	mock.Mock
}

func (m *MockDeploymentRepository) GetDeployment(ctx context.Context, id string) (*models.Deployment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) GetDeploymentByAddress(ctx context.Context, chainID uint64, address string) (*models.Deployment, error) {
	args := m.Called(ctx, chainID, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	args := m.Called(ctx, deployment)
	return args.Error(0)
}

func (m *MockDeploymentRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]*models.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

func (m *MockDeploymentRepository) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockDeployer is a mock implementation of ContractDeployer
type MockDeployer struct {
	mock.Mock
}

func (m *MockDeployer) Deploy(ctx context.Context, req usecase.DeployRequest) (*usecase.DeployResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.DeployResult), args.Error(1)
}

// MockTransactor is a mock implementation of ContractTransactor
type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) Transact(ctx context.Context, req usecase.TransactRequest) (*usecase.TransactResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.TransactResult), args.Error(1)
}

// fakeChain reports a fixed chain ID
type fakeChain struct {
	chainID uint64
	err     error
}

func (f fakeChain) ChainID(ctx context.Context) (uint64, error) {
	return f.chainID, f.err
}

func (f fakeChain) CodeExists(ctx context.Context, address common.Address) (bool, error) {
	return true, nil
}

// stubConfirmer answers every prompt the same way and remembers the prompts
type stubConfirmer struct {
	answer  bool
	prompts []string
}

func (s *stubConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	s.prompts = append(s.prompts, prompt)
	return s.answer, nil
}

// recordingSink keeps every progress event
type recordingSink struct {
	events []usecase.ProgressEvent
	infos  []string
}

func (r *recordingSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.events = append(r.events, event)
}

func (r *recordingSink) Info(message string) {
	r.infos = append(r.infos, message)
}

func (r *recordingSink) Error(message string) {}

// stubSigner has a fixed address and no key
type stubSigner struct {
	address common.Address
	err     error
}

func (s stubSigner) Address() (common.Address, error) {
	return s.address, s.err
}

func (s stubSigner) TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	return nil, s.err
}
