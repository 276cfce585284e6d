package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/greenworld-labs/greenctl/internal/domain"
	"github.com/greenworld-labs/greenctl/internal/domain/config"
	"github.com/greenworld-labs/greenctl/internal/domain/models"
)

// DefaultAdminMethod is the boolean switch flipped when no method is configured
const DefaultAdminMethod = "setTradingIsEnabled"

// CallAdminMethodParams contains parameters for an administrative call
type CallAdminMethodParams struct {
	Artifact string
	Address  string // empty falls back to the registry
	Method   string
	Value    bool
	NoWait   bool
}

// CallAdminMethodResult describes the sent call
type CallAdminMethodResult struct {
	Network     *config.Network
	Contract    string
	Address     common.Address
	Signature   string
	Value       bool
	Transaction *models.Transaction
	Mined       bool
}

// CallAdminMethod sends one transaction calling a boolean setter on a deployed contract
type CallAdminMethod struct {
	config     *config.RuntimeConfig
	artifacts  ArtifactRepository
	client     ChainClient
	transactor ContractTransactor
	repo       DeploymentRepository
	confirmer  Confirmer
	sink       ProgressSink
	log        *slog.Logger
}

// NewCallAdminMethod creates a new CallAdminMethod use case
func NewCallAdminMethod(
	cfg *config.RuntimeConfig,
	artifacts ArtifactRepository,
	client ChainClient,
	transactor ContractTransactor,
	repo DeploymentRepository,
	confirmer Confirmer,
	sink ProgressSink,
	log *slog.Logger,
) *CallAdminMethod {
	return &CallAdminMethod{
		config:     cfg,
		artifacts:  artifacts,
		client:     client,
		transactor: transactor,
		repo:       repo,
		confirmer:  confirmer,
		sink:       sink,
		log:        log.With("usecase", "call"),
	}
}

// Run resolves the target, validates the method and invokes it exactly once.
// A reverted transaction is recorded as failed and returned with the error.
func (uc *CallAdminMethod) Run(ctx context.Context, params CallAdminMethodParams) (*CallAdminMethodResult, error) {
	if params.Artifact == "" {
		return nil, fmt.Errorf("no artifact given for the call")
	}
	if params.Method == "" {
		params.Method = DefaultAdminMethod
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageLoading, Message: params.Artifact, Spinner: true})

	artifact, err := uc.artifacts.Get(ctx, params.Artifact)
	if err != nil {
		return nil, fmt.Errorf("failed to load artifact: %w", err)
	}
	parsedABI, err := artifact.ParseABI()
	if err != nil {
		return nil, err
	}
	method, err := boolSetter(parsedABI, params.Method)
	if err != nil {
		return nil, err
	}

	address, err := uc.resolveAddress(ctx, artifact.Name, params.Address)
	if err != nil {
		return nil, err
	}

	result := &CallAdminMethodResult{
		Network:   uc.config.Network,
		Contract:  artifact.Name,
		Address:   address,
		Signature: method.Sig,
		Value:     params.Value,
	}

	prompt := fmt.Sprintf("Call %s(%t) on %s at %s", method.Name, params.Value, artifact.Name, address.Hex())
	ok, err := uc.confirmer.Confirm(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAborted
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageSending, Message: method.Sig, Spinner: true})

	sent, callErr := uc.transactor.Transact(ctx, TransactRequest{
		Address: address,
		ABI:     parsedABI,
		Method:  method.Name,
		Args:    []any{params.Value},
		NoWait:  params.NoWait,
	})
	if sent == nil {
		if callErr == nil {
			callErr = fmt.Errorf("%s returned no result", method.Name)
		}
		return nil, callErr
	}

	result.Mined = sent.Mined
	result.Transaction = &models.Transaction{
		Hash:        sent.TxHash.Hex(),
		ChainID:     sent.ChainID,
		Status:      transactionStatus(sent, callErr),
		BlockNumber: sent.BlockNumber,
		GasUsed:     sent.GasUsed,
		Sender:      sent.Sender.Hex(),
		Nonce:       sent.Nonce,
		Target:      address.Hex(),
		Contract:    artifact.Name,
		Method:      method.Sig,
		Args:        []any{params.Value},
		CreatedAt:   time.Now(),
	}

	if err := uc.repo.SaveTransaction(ctx, result.Transaction); err != nil {
		uc.log.Warn("failed to record transaction", "tx", result.Transaction.Hash, "error", err)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
	return result, callErr
}

// resolveAddress prefers an explicit address and falls back to the
// artifact's deployment on the connected chain
func (uc *CallAdminMethod) resolveAddress(ctx context.Context, contract, explicit string) (common.Address, error) {
	if explicit != "" {
		if !common.IsHexAddress(explicit) {
			return common.Address{}, fmt.Errorf("%q: %w", explicit, domain.ErrInvalidAddress)
		}
		address := common.HexToAddress(explicit)
		uc.warnOnMismatch(ctx, contract, address)
		return address, nil
	}

	chainID, err := uc.client.ChainID(ctx)
	if err != nil {
		return common.Address{}, err
	}

	dep, err := uc.repo.GetDeployment(ctx, models.DeploymentID(chainID, contract))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return common.Address{}, fmt.Errorf("no address for %s on chain %d, set contract_address or GREENCTL_CONTRACT_ADDRESS: %w", contract, chainID, err)
		}
		return common.Address{}, err
	}
	uc.log.Debug("address from registry", "contract", contract, "address", dep.Address)
	return common.HexToAddress(dep.Address), nil
}

// warnOnMismatch flags an explicit address the registry knows as a different contract
func (uc *CallAdminMethod) warnOnMismatch(ctx context.Context, contract string, address common.Address) {
	chainID, err := uc.client.ChainID(ctx)
	if err != nil {
		return
	}
	dep, err := uc.repo.GetDeploymentByAddress(ctx, chainID, address.Hex())
	if err != nil || dep.ContractName == contract {
		return
	}
	uc.sink.Info(fmt.Sprintf("%s is recorded as %s, not %s", address.Hex(), dep.ContractName, contract))
}

// boolSetter looks up name and checks it takes exactly one bool
func boolSetter(parsedABI *abi.ABI, name string) (abi.Method, error) {
	method, ok := parsedABI.Methods[name]
	if !ok {
		return abi.Method{}, fmt.Errorf("%s: %w", name, domain.ErrMethodNotFound)
	}
	if len(method.Inputs) != 1 || method.Inputs[0].Type.T != abi.BoolTy {
		return abi.Method{}, domain.MethodSignatureErr{
			Method:   name,
			Expected: name + "(bool)",
			Actual:   method.Sig,
		}
	}
	return method, nil
}

func transactionStatus(sent *TransactResult, err error) models.TransactionStatus {
	switch {
	case errors.Is(err, domain.ErrTransactionReverted):
		return models.TransactionStatusFailed
	case sent.Mined:
		return models.TransactionStatusExecuted
	default:
		return models.TransactionStatusPending
	}
}
