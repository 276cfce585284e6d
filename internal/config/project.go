package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/greenworld-labs/greenctl/internal/domain/config"
	"github.com/joho/godotenv"
)

const (
	// ProjectFile is the name of the project configuration file
	ProjectFile = "greenctl.toml"

	// DataDirName holds the deployment registry
	DataDirName = ".greenctl"

	// DefaultNetworkName is used when neither flags nor greenctl.toml pick one
	DefaultNetworkName = "bsc_testnet"

	// DefaultRPCURL is the public BSC testnet endpoint
	DefaultRPCURL = "https://data-seed-prebsc-1-s1.binance.org:8545/"
)

// warningOut receives warnings about greenctl.toml and .env files
var warningOut io.Writer = os.Stderr

// DefaultProjectConfig returns the configuration used when greenctl.toml is absent
func DefaultProjectConfig() *config.ProjectConfig {
	return &config.ProjectConfig{
		ArtifactsDir:   "build/contracts",
		DefaultNetwork: DefaultNetworkName,
		Networks: map[string]config.NetworkConfig{
			DefaultNetworkName: {
				URL:     DefaultRPCURL,
				ChainID: 97,
			},
		},
		Deploy: config.DeployConfig{
			Library:  "IterableMapping",
			Contract: "GreenWorld",
		},
		Call: config.CallConfig{
			Artifact: "GREENTEST",
			Method:   "setTradingIsEnabled",
		},
		Sender: config.SenderConfig{
			PrivateKey: "${PRIVATE_KEY}",
		},
	}
}

// FindProjectRoot walks up from current directory to find greenctl.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectFile)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a greenctl project (%s not found)", ProjectFile)
		}
		dir = parent
	}
}

// LoadProjectConfig loads .env files and greenctl.toml from projectRoot.
// Missing greenctl.toml yields the defaults; fields left empty in the file
// are filled from the defaults as well.
func LoadProjectConfig(projectRoot string) (*config.ProjectConfig, string, error) {
	loadEnvFiles(projectRoot)

	cfg := DefaultProjectConfig()
	source := "defaults"

	path := filepath.Join(projectRoot, ProjectFile)
	if _, err := os.Stat(path); err == nil {
		var file config.ProjectConfig
		meta, err := toml.DecodeFile(path, &file)
		if err != nil {
			return nil, "", fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
		}
		for _, key := range meta.Undecoded() {
			fmt.Fprintf(warningOut, "Warning: unknown key %q in %s is ignored\n", key.String(), ProjectFile)
		}
		mergeProjectConfig(cfg, &file)
		source = ProjectFile
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, "", fmt.Errorf("failed to stat %s: %w", ProjectFile, err)
	}

	expandProjectConfig(cfg)
	return cfg, source, nil
}

// loadEnvFiles loads .env then .env.local; already-set variables win
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(warningOut, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

func mergeProjectConfig(dst, src *config.ProjectConfig) {
	if src.ArtifactsDir != "" {
		dst.ArtifactsDir = src.ArtifactsDir
	}
	if len(src.Networks) > 0 {
		dst.Networks = src.Networks
		dst.DefaultNetwork = ""
	}
	if src.DefaultNetwork != "" {
		dst.DefaultNetwork = src.DefaultNetwork
	}
	if src.Deploy.Library != "" {
		dst.Deploy.Library = src.Deploy.Library
	}
	if src.Deploy.Contract != "" {
		dst.Deploy.Contract = src.Deploy.Contract
	}
	if src.Call.Artifact != "" {
		dst.Call.Artifact = src.Call.Artifact
	}
	if src.ContractAddress != "" {
		dst.Call.Address = src.ContractAddress
	}
	if src.Call.Address != "" {
		dst.Call.Address = src.Call.Address
	}
	if src.EndpointURL != "" {
		dst.EndpointURL = src.EndpointURL
	}
	if src.Call.Method != "" {
		dst.Call.Method = src.Call.Method
	}
	if src.Sender.PrivateKey != "" {
		dst.Sender.PrivateKey = src.Sender.PrivateKey
	}
}

func expandProjectConfig(cfg *config.ProjectConfig) {
	for name, network := range cfg.Networks {
		network.URL = os.ExpandEnv(network.URL)
		cfg.Networks[name] = network
	}
	cfg.Call.Address = os.ExpandEnv(cfg.Call.Address)
	cfg.EndpointURL = os.ExpandEnv(cfg.EndpointURL)
}
