package blockchain

import (
	"context"
	"log/slog"
	"time"

	"github.com/greenworld-labs/greenctl/internal/usecase"
)

// probeTimeout bounds a single chain ID lookup
const probeTimeout = 10 * time.Second

// CheckerAdapter looks up chain IDs of arbitrary endpoints
type CheckerAdapter struct {
	log *slog.Logger
}

// NewCheckerAdapter creates a new blockchain checker adapter
func NewCheckerAdapter(log *slog.Logger) *CheckerAdapter {
	return &CheckerAdapter{log: log}
}

// ProbeChainID dials rpcURL, asks for eth_chainId and disconnects
func (c *CheckerAdapter) ProbeChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	client, err := Dial(ctx, rpcURL, 0, c.log)
	if err != nil {
		return 0, err
	}
	defer client.Close()

	return client.ChainID(ctx)
}

// Ensure the adapter implements the interface
var _ usecase.ChainIDProber = (*CheckerAdapter)(nil)
