// Package testutil holds fixtures shared by tests: an auto-mining simulated
// chain and hand-assembled contracts small enough to read.
package testutil

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
)

// DevKey is the first well-known development key
const DevKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// SimulatedChainID is the chain ID of go-ethereum's simulated backend
const SimulatedChainID = 1337

// Every fixture's creation code is the same 11-byte prologue
// (PUSH1 len, DUP1, PUSH1 11, PUSH1 0, CODECOPY, PUSH1 0, RETURN)
// followed by the runtime it returns.
const (
	// LibraryBytecode deploys a runtime of a single STOP
	LibraryBytecode = "0x600180600b6000396000f3" + "00"

	// BoolSetterBytecode runtime stores the first call argument in slot 0:
	// PUSH1 4, CALLDATALOAD, PUSH1 0, SSTORE, STOP
	BoolSetterBytecode = "0x600780600b6000396000f3" + "6004356000" + "5500"

	// RevertingBytecode runtime always reverts
	RevertingBytecode = "0x600580600b6000396000f3" + "60006000fd"

	// BoolSetterABI declares the administrative setter
	BoolSetterABI = `[{"type":"function","name":"setTradingIsEnabled","inputs":[{"name":"_enabled","type":"bool"}],"outputs":[],"stateMutability":"nonpayable"}]`
)

// LinkedBytecode returns creation code whose runtime is PUSH20 <placeholder>, POP, STOP.
// After linking, the deployed code contains the library address.
func LinkedBytecode(placeholder string) string {
	return "0x601780600b6000396000f3" + "73" + placeholder + "5000"
}

// SimulatedChain is an in-memory chain that mines a block after every transaction
type SimulatedChain struct {
	simulated.Client
	Backend *simulated.Backend
	Key     *ecdsa.PrivateKey
	Account common.Address
}

// SendTransaction sends tx and commits a block so receipts are available immediately
func (c *SimulatedChain) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if err := c.Client.SendTransaction(ctx, tx); err != nil {
		return err
	}
	c.Backend.Commit()
	return nil
}

// NewSimulatedChain starts a simulated backend funding DevKey's account
func NewSimulatedChain(t *testing.T) *SimulatedChain {
	t.Helper()

	key, err := crypto.HexToECDSA(DevKey)
	if err != nil {
		t.Fatalf("dev key: %v", err)
	}
	account := crypto.PubkeyToAddress(key.PublicKey)

	balance := new(big.Int).Mul(big.NewInt(params.Ether), big.NewInt(100))
	backend := simulated.NewBackend(types.GenesisAlloc{
		account: {Balance: balance},
	})
	t.Cleanup(func() { _ = backend.Close() })

	return &SimulatedChain{
		Client:  backend.Client(),
		Backend: backend,
		Key:     key,
		Account: account,
	}
}
