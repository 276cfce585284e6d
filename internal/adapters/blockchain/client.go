package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/greenworld-labs/greenctl/internal/domain"
	"github.com/greenworld-labs/greenctl/internal/domain/config"
	"github.com/greenworld-labs/greenctl/internal/usecase"
)

// Backend is everything greenctl needs from a node connection.
// *ethclient.Client and the simulated backend's client both satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Client is a lazily dialed connection to the configured network
type Client struct {
	network *config.Network
	log     *slog.Logger

	mu      sync.Mutex
	backend Backend
	chainID *big.Int
	closer  func()
}

// NewClient creates a client for the runtime network. Nothing is dialed until first use.
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	return &Client{
		network: cfg.Network,
		log:     log.With("component", "blockchain"),
	}
}

// NewClientWithBackend wraps an existing backend, verifying it against expectedChainID (0 skips the check)
func NewClientWithBackend(backend Backend, expectedChainID uint64, log *slog.Logger) *Client {
	return &Client{
		network: &config.Network{Name: "backend", ChainID: expectedChainID},
		log:     log.With("component", "blockchain"),
		backend: backend,
	}
}

// Dial connects to endpointURL immediately. HTTP and WebSocket URLs are both accepted;
// expectedChainID of 0 skips verification.
func Dial(ctx context.Context, endpointURL string, expectedChainID uint64, log *slog.Logger) (*Client, error) {
	c := &Client{
		network: &config.Network{Name: "custom", RPCURL: endpointURL, ChainID: expectedChainID},
		log:     log.With("component", "blockchain"),
	}
	if _, _, err := c.connect(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// connect dials on first call and verifies the chain ID
func (c *Client) connect(ctx context.Context) (Backend, *big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.chainID != nil {
		return c.backend, c.chainID, nil
	}
	if c.network == nil || (c.backend == nil && c.network.RPCURL == "") {
		return nil, nil, fmt.Errorf("no network configured (use --network or --rpc-url)")
	}

	if c.backend == nil {
		c.log.Debug("dialing node", "network", c.network.Name, "url", c.network.RPCURL)
		client, err := ethclient.DialContext(ctx, c.network.RPCURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to RPC: %w", err)
		}
		c.backend = client
		c.closer = client.Close
	}

	networkChainID, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	// A zero expected chain ID accepts whatever the node reports
	if c.network.ChainID != 0 && networkChainID.Uint64() != c.network.ChainID {
		return nil, nil, fmt.Errorf("expected chain %d, node reports %d: %w", c.network.ChainID, networkChainID.Uint64(), domain.ErrNetworkMismatch)
	}

	c.chainID = networkChainID
	c.log.Debug("connected", "chainId", networkChainID)
	return c.backend, c.chainID, nil
}

// ChainID returns the verified chain ID of the connected node
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	_, chainID, err := c.connect(ctx)
	if err != nil {
		return 0, err
	}
	return chainID.Uint64(), nil
}

// CodeExists checks if a contract exists at the given address
func (c *Client) CodeExists(ctx context.Context, address common.Address) (bool, error) {
	backend, _, err := c.connect(ctx)
	if err != nil {
		return false, err
	}
	code, err := backend.CodeAt(ctx, address, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check code at %s: %w", address.Hex(), err)
	}
	return len(code) > 0, nil
}

// Close releases the connection if one was dialed
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closer != nil {
		c.closer()
		c.closer = nil
	}
}

// Ensure the adapter implements the interface
var _ usecase.ChainClient = (*Client)(nil)
