package render

import (
	"fmt"
	"io"

	"github.com/greenworld-labs/greenctl/internal/usecase"
	"gopkg.in/yaml.v3"
)

// ConfigRenderer renders the resolved configuration as YAML
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// Render renders the configuration display
func (r *ConfigRenderer) Render(result *usecase.ShowConfigResult) error {
	fmt.Fprintf(r.out, "# resolved from %s\n", result.ConfigSource)

	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

var _ Renderer[*usecase.ShowConfigResult] = (*ConfigRenderer)(nil)
