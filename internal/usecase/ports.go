package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/greenworld-labs/greenctl/internal/domain"
	"github.com/greenworld-labs/greenctl/internal/domain/models"
)

// ArtifactRepository provides access to compiled contract artifacts
type ArtifactRepository interface {
	Get(ctx context.Context, name string) (*models.Artifact, error)
	List(ctx context.Context) ([]string, error)
}

// BytecodeLinker resolves library placeholders in creation bytecode
type BytecodeLinker interface {
	Link(artifact *models.Artifact, libs []models.LibraryLink) ([]byte, error)
	References(artifact *models.Artifact, lib models.LibraryLink) bool
}

// DeploymentRepository handles persistence of deployments and sent transactions
type DeploymentRepository interface {
	GetDeployment(ctx context.Context, id string) (*models.Deployment, error)
	GetDeploymentByAddress(ctx context.Context, chainID uint64, address string) (*models.Deployment, error)
	ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error)
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]*models.Transaction, error)
	SaveTransaction(ctx context.Context, tx *models.Transaction) error
}

// ChainClient is the connection to the configured node
type ChainClient interface {
	ChainID(ctx context.Context) (uint64, error)
	CodeExists(ctx context.Context, address common.Address) (bool, error)
}

// ChainIDProber fetches the chain ID of an arbitrary endpoint
type ChainIDProber interface {
	ProbeChainID(ctx context.Context, rpcURL string) (uint64, error)
}

// Signer produces transaction options for the configured account
type Signer interface {
	Address() (common.Address, error)
	TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error)
}

// DeployRequest describes one contract creation
type DeployRequest struct {
	Name     string
	ABI      *abi.ABI
	Bytecode []byte
	Args     []any
}

// DeployResult is the mined outcome of a contract creation
type DeployResult struct {
	Address     common.Address
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
	Deployer    common.Address
	ChainID     uint64
}

// ContractDeployer sends contract creation transactions and waits for them
type ContractDeployer interface {
	Deploy(ctx context.Context, req DeployRequest) (*DeployResult, error)
}

// TransactRequest describes one state-changing call
type TransactRequest struct {
	Address common.Address
	ABI     *abi.ABI
	Method  string
	Args    []any
	NoWait  bool
}

// TransactResult is the outcome of a sent transaction. Mined is false when
// the caller asked not to wait.
type TransactResult struct {
	TxHash      common.Hash
	Sender      common.Address
	Nonce       uint64
	ChainID     uint64
	Mined       bool
	BlockNumber uint64
	GasUsed     uint64
}

// ContractTransactor sends transactions to deployed contracts
type ContractTransactor interface {
	Transact(ctx context.Context, req TransactRequest) (*TransactResult, error)
}

// Confirmer asks the user before anything is broadcast
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// NetworkSelector lets the user pick a network interactively
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, names []string) (string, error)
}

// Progress tracking interfaces

// ExecutionStage names a step of a running flow
type ExecutionStage string

const (
	StageLoading   ExecutionStage = "Loading artifacts"
	StageLinking   ExecutionStage = "Linking"
	StageDeploying ExecutionStage = "Deploying"
	StageSending   ExecutionStage = "Sending transaction"
	StageCompleted ExecutionStage = "Completed"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   ExecutionStage
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
