package usecase

import (
	"context"

	"github.com/greenworld-labs/greenctl/internal/domain/config"
)

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
	Current  string
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name            string
	RPCURL          string
	ExpectedChainID uint64
	ChainID         uint64
	Error           error
}

// Mismatch reports whether the node answered with a chain other than the configured one
func (s NetworkStatus) Mismatch() bool {
	return s.Error == nil && s.ExpectedChainID != 0 && s.ChainID != s.ExpectedChainID
}

// NetworkCatalog lists configured networks
type NetworkCatalog interface {
	Names() []string
	Resolve(name string) (*config.Network, error)
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	catalog NetworkCatalog
	prober  ChainIDProber
	config  *config.RuntimeConfig
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, catalog NetworkCatalog, prober ChainIDProber) *ListNetworks {
	return &ListNetworks{
		catalog: catalog,
		prober:  prober,
		config:  cfg,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context) (*ListNetworksResult, error) {
	names := uc.catalog.Names()

	// Check each network's status
	networks := make([]NetworkStatus, 0, len(names))
	for _, name := range names {
		status := NetworkStatus{Name: name}

		info, err := uc.catalog.Resolve(name)
		if err != nil {
			status.Error = err
			networks = append(networks, status)
			continue
		}
		status.RPCURL = info.RPCURL
		status.ExpectedChainID = info.ChainID

		status.ChainID, status.Error = uc.prober.ProbeChainID(ctx, info.RPCURL)
		networks = append(networks, status)
	}

	result := &ListNetworksResult{Networks: networks}
	if uc.config.Network != nil {
		result.Current = uc.config.Network.Name
	}
	return result, nil
}
