package config

// ProjectConfig represents greenctl.toml
type ProjectConfig struct {
	ArtifactsDir   string                   `toml:"artifacts"`
	DefaultNetwork string                   `toml:"default_network"`
	Networks       map[string]NetworkConfig `toml:"networks"`
	Deploy         DeployConfig             `toml:"deploy"`
	Call           CallConfig               `toml:"call"`
	Sender         SenderConfig             `toml:"sender"`

	// EndpointURL replaces the selected network's url; flag and env still win
	EndpointURL string `toml:"endpoint_url"`

	// ContractAddress is the top-level form of [call] contract_address
	ContractAddress string `toml:"contract_address"`
}

// NetworkConfig is one [networks.<name>] table
type NetworkConfig struct {
	URL      string `toml:"url"`
	ChainID  uint64 `toml:"chain_id,omitempty"`
	Explorer string `toml:"explorer,omitempty"`
}

// DeployConfig names the library and the contract it is linked into
type DeployConfig struct {
	Library  string `toml:"library" yaml:"library"`
	Contract string `toml:"contract" yaml:"contract"`
}

// CallConfig describes the administrative call target
type CallConfig struct {
	Artifact string `toml:"artifact" yaml:"artifact"`
	Address  string `toml:"contract_address" yaml:"contract_address"`
	Method   string `toml:"method" yaml:"method"`
}

// SenderConfig holds the signing key reference, usually "${PRIVATE_KEY}"
type SenderConfig struct {
	PrivateKey string `toml:"private_key"` //nolint:gosec // holds env var reference, not a literal secret
}
