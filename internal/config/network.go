package config

import (
	"fmt"
	"sort"

	"github.com/greenworld-labs/greenctl/internal/domain"
	"github.com/greenworld-labs/greenctl/internal/domain/config"
)

// NetworkResolver resolves network names from greenctl.toml [networks]
type NetworkResolver struct {
	project *config.ProjectConfig
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(project *config.ProjectConfig) *NetworkResolver {
	return &NetworkResolver{project: project}
}

// Names returns the configured network names in sorted order
func (r *NetworkResolver) Names() []string {
	names := make([]string, 0, len(r.project.Networks))
	for name := range r.project.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve resolves a network name to its configuration
func (r *NetworkResolver) Resolve(networkName string) (*config.Network, error) {
	nc, exists := r.project.Networks[networkName]
	if !exists {
		return nil, fmt.Errorf("network '%s' not found in %s [networks]: %w", networkName, ProjectFile, domain.ErrNotFound)
	}
	if nc.URL == "" {
		return nil, fmt.Errorf("network '%s' has no url", networkName)
	}

	explorer := nc.Explorer
	if explorer == "" {
		explorer = ExplorerURL(nc.ChainID)
	}

	return &config.Network{
		Name:        networkName,
		RPCURL:      nc.URL,
		ChainID:     nc.ChainID,
		ExplorerURL: explorer,
	}, nil
}

// Default picks the network to use when none was requested: the configured
// default, or the only network if exactly one exists. Returns "" otherwise.
func (r *NetworkResolver) Default() string {
	if r.project.DefaultNetwork != "" {
		return r.project.DefaultNetwork
	}
	if len(r.project.Networks) == 1 {
		return r.Names()[0]
	}
	return ""
}

// ExplorerURL returns a well-known block explorer for a chain
func ExplorerURL(chainID uint64) string {
	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 42161:
		return "https://arbiscan.io"
	case 43114:
		return "https://snowtrace.io"
	case 56:
		return "https://bscscan.com"
	case 97:
		return "https://testnet.bscscan.com"
	case 250:
		return "https://ftmscan.com"
	default:
		return ""
	}
}
