package blockchain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/greenworld-labs/greenctl/internal/domain"
	"github.com/greenworld-labs/greenctl/internal/usecase"
)

// Transactor sends state-changing calls to deployed contracts
type Transactor struct {
	client *Client
	signer usecase.Signer
	log    *slog.Logger
}

// NewTransactor creates a new transactor
func NewTransactor(client *Client, signer usecase.Signer, log *slog.Logger) *Transactor {
	return &Transactor{
		client: client,
		signer: signer,
		log:    log.With("component", "transactor"),
	}
}

// Transact attaches to req.Address with req.ABI and sends exactly one transaction.
// When the transaction reverts the result is returned alongside the error.
func (t *Transactor) Transact(ctx context.Context, req usecase.TransactRequest) (*usecase.TransactResult, error) {
	backend, chainID, err := t.client.connect(ctx)
	if err != nil {
		return nil, err
	}
	if req.ABI == nil {
		return nil, fmt.Errorf("no ABI for %s", req.Address.Hex())
	}

	code, err := backend.CodeAt(ctx, req.Address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check code at %s: %w", req.Address.Hex(), err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%s: %w", req.Address.Hex(), domain.ErrNoCode)
	}

	opts, err := t.signer.TransactOpts(ctx, chainID)
	if err != nil {
		return nil, err
	}

	contract := bind.NewBoundContract(req.Address, *req.ABI, backend, backend, backend)
	tx, err := contract.Transact(opts, req.Method, req.Args...)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", req.Method, err)
	}
	t.log.Info("transaction sent", "method", req.Method, "tx", tx.Hash().Hex(), "to", req.Address.Hex())

	result := &usecase.TransactResult{
		TxHash:  tx.Hash(),
		Sender:  opts.From,
		Nonce:   tx.Nonce(),
		ChainID: chainID.Uint64(),
	}
	if req.NoWait {
		return result, nil
	}

	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return result, fmt.Errorf("failed waiting for %s: %w", tx.Hash().Hex(), err)
	}
	result.Mined = true
	result.BlockNumber = receipt.BlockNumber.Uint64()
	result.GasUsed = receipt.GasUsed

	if receipt.Status != types.ReceiptStatusSuccessful {
		return result, fmt.Errorf("%s %s: %w", req.Method, tx.Hash().Hex(), domain.ErrTransactionReverted)
	}
	return result, nil
}

// Ensure the adapter implements the interface
var _ usecase.ContractTransactor = (*Transactor)(nil)
