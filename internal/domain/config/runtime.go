package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot  string
	DataDir      string
	ArtifactsDir string

	// Context settings
	Network *Network // nil if no network could be resolved

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration

	// Command-specific settings (only populated for relevant commands)
	DryRun bool
	Yes    bool

	// Flow settings
	Deploy DeployConfig
	Call   CallConfig

	// Signer key, hex encoded. Never rendered.
	PrivateKey string

	// Config source tracking
	ConfigSource string // "greenctl.toml" or "defaults"

	// Resolved project file
	Project *ProjectConfig
}

// Network represents network configuration
type Network struct {
	Name        string `json:"name" yaml:"name"`
	RPCURL      string `json:"rpcUrl" yaml:"rpcUrl"`
	ChainID     uint64 `json:"chainId" yaml:"chainId"` // expected chain, 0 accepts whatever the node reports
	ExplorerURL string `json:"explorerUrl,omitempty" yaml:"explorerUrl,omitempty"`
}
