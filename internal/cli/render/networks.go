package render

import (
	"fmt"
	"io"

	"github.com/greenworld-labs/greenctl/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// Render renders the list of networks with their probed chain IDs
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in greenctl.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, network := range result.Networks {
		marker := " "
		if network.Name == result.Current {
			marker = "*"
		}
		switch {
		case network.Error != nil:
			fmt.Fprintf(r.out, "%s ❌ %s - Error: %v\n", marker, network.Name, network.Error)
		case network.Mismatch():
			fmt.Fprintf(r.out, "%s ⚠️  %s - Chain ID: %d (configured %d)\n", marker, network.Name, network.ChainID, network.ExpectedChainID)
		default:
			fmt.Fprintf(r.out, "%s ✅ %s - Chain ID: %d\n", marker, network.Name, network.ChainID)
		}
	}

	return nil
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)
