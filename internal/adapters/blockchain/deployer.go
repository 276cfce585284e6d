package blockchain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/greenworld-labs/greenctl/internal/domain"
	"github.com/greenworld-labs/greenctl/internal/usecase"
)

// Deployer sends contract creation transactions with the configured signer
type Deployer struct {
	client *Client
	signer usecase.Signer
	log    *slog.Logger
}

// NewDeployer creates a new deployer
func NewDeployer(client *Client, signer usecase.Signer, log *slog.Logger) *Deployer {
	return &Deployer{
		client: client,
		signer: signer,
		log:    log.With("component", "deployer"),
	}
}

// Deploy sends one creation transaction and blocks until it is mined
func (d *Deployer) Deploy(ctx context.Context, req usecase.DeployRequest) (*usecase.DeployResult, error) {
	backend, chainID, err := d.client.connect(ctx)
	if err != nil {
		return nil, err
	}

	opts, err := d.signer.TransactOpts(ctx, chainID)
	if err != nil {
		return nil, err
	}

	contractABI := abi.ABI{}
	if req.ABI != nil {
		contractABI = *req.ABI
	}

	address, tx, _, err := bind.DeployContract(opts, contractABI, req.Bytecode, backend, req.Args...)
	if err != nil {
		return nil, fmt.Errorf("creation transaction for %s rejected: %w", req.Name, err)
	}
	d.log.Info("deployment sent", "contract", req.Name, "tx", tx.Hash().Hex(), "address", address.Hex())

	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s deployment %s: %w", req.Name, tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%s deployment %s: %w", req.Name, tx.Hash().Hex(), domain.ErrTransactionReverted)
	}

	code, err := backend.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check code at %s: %w", address.Hex(), err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%s at %s: %w", req.Name, address.Hex(), domain.ErrNoCode)
	}

	return &usecase.DeployResult{
		Address:     address,
		TxHash:      tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
		Deployer:    opts.From,
		ChainID:     chainID.Uint64(),
	}, nil
}

// Ensure the adapter implements the interface
var _ usecase.ContractDeployer = (*Deployer)(nil)
