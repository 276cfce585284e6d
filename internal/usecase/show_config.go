package usecase

import (
	"context"

	"github.com/greenworld-labs/greenctl/internal/domain/config"
)

// ShowConfigResult contains the resolved configuration with secrets masked
type ShowConfigResult struct {
	ProjectRoot  string              `yaml:"projectRoot"`
	ConfigSource string              `yaml:"source"`
	ArtifactsDir string              `yaml:"artifacts"`
	DataDir      string              `yaml:"dataDir"`
	Network      *config.Network     `yaml:"network,omitempty"`
	Networks     []string            `yaml:"networks"`
	Deploy       config.DeployConfig `yaml:"deploy"`
	Call         config.CallConfig   `yaml:"call"`
	Sender       string              `yaml:"sender"`
	PrivateKey   string              `yaml:"privateKey,omitempty"`
	Timeout      string              `yaml:"timeout"`
}

// SecretMasker hides all but a recognisable prefix of a secret
type SecretMasker func(secret string) string

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	config  *config.RuntimeConfig
	catalog NetworkCatalog
	signer  Signer
	mask    SecretMasker
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig, catalog NetworkCatalog, signer Signer, mask SecretMasker) *ShowConfig {
	return &ShowConfig{
		config:  cfg,
		catalog: catalog,
		signer:  signer,
		mask:    mask,
	}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	result := &ShowConfigResult{
		ProjectRoot:  uc.config.ProjectRoot,
		ConfigSource: uc.config.ConfigSource,
		ArtifactsDir: uc.config.ArtifactsDir,
		DataDir:      uc.config.DataDir,
		Networks:     uc.catalog.Names(),
		Deploy:       uc.config.Deploy,
		Call:         uc.config.Call,
		Timeout:      uc.config.Timeout.String(),
	}

	if uc.config.Network != nil {
		network := *uc.config.Network
		result.Network = &network
	}

	result.PrivateKey = uc.mask(uc.config.PrivateKey)
	if address, err := uc.signer.Address(); err == nil {
		result.Sender = address.Hex()
	} else {
		result.Sender = "(none)"
	}

	return result, nil
}
