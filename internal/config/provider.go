package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/greenworld-labs/greenctl/internal/domain/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps CLI flag names to viper keys
var flagKeys = map[string]string{
	"debug":           "debug",
	"non-interactive": "non_interactive",
	"timeout":         "timeout",
	"network":         "network",
	"rpc-url":         "endpoint_url",
	"address":         "contract_address",
	"dry-run":         "dry_run",
	"yes":             "yes",
	"library":         "library",
	"contract":        "contract",
	"artifact":        "artifact",
	"method":          "method",
	"artifacts":       "artifacts",
}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	project, source, err := LoadProjectConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		ArtifactsDir:   project.ArtifactsDir,
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Timeout:        v.GetDuration("timeout"),
		DryRun:         v.GetBool("dry_run"),
		Yes:            v.GetBool("yes"),
		Deploy:         project.Deploy,
		Call:           project.Call,
		PrivateKey:     ExpandSecret(project.Sender.PrivateKey),
		ConfigSource:   source,
		Project:        project,
	}

	if dir := v.GetString("artifacts"); dir != "" {
		cfg.ArtifactsDir = dir
	}
	if !filepath.IsAbs(cfg.ArtifactsDir) {
		cfg.ArtifactsDir = filepath.Join(projectRoot, cfg.ArtifactsDir)
	}

	if key := v.GetString("private_key"); key != "" {
		cfg.PrivateKey = key
	}
	if lib := v.GetString("library"); lib != "" {
		cfg.Deploy.Library = lib
	}
	if contract := v.GetString("contract"); contract != "" {
		cfg.Deploy.Contract = contract
	}
	if artifact := v.GetString("artifact"); artifact != "" {
		cfg.Call.Artifact = artifact
	}
	if method := v.GetString("method"); method != "" {
		cfg.Call.Method = method
	}
	if address := v.GetString("contract_address"); address != "" {
		cfg.Call.Address = address
	}

	network, err := resolveNetwork(v, project)
	if err != nil {
		return nil, err
	}
	cfg.Network = network

	return cfg, nil
}

// resolveNetwork applies endpoint_url (flag, env, then greenctl.toml) over the
// named network. A bare endpoint_url without a network becomes an ad-hoc
// "custom" network.
func resolveNetwork(v *viper.Viper, project *config.ProjectConfig) (*config.Network, error) {
	resolver := NewNetworkResolver(project)
	endpoint := v.GetString("endpoint_url")
	if endpoint == "" {
		endpoint = project.EndpointURL
	}

	name := v.GetString("network")
	if name == "" && endpoint == "" {
		name = resolver.Default()
	}

	var network *config.Network
	if name != "" {
		resolved, err := resolver.Resolve(name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve network %s: %w", name, err)
		}
		network = resolved
	}

	if endpoint != "" {
		if network == nil {
			network = &config.Network{Name: "custom"}
		}
		network.RPCURL = endpoint
	}

	return network, nil
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("GREENCTL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	return v
}

// BindFlags binds every known flag present on cmd to its viper key
func BindFlags(v *viper.Viper, cmd *cobra.Command) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

// ProvideNetworkResolver creates a NetworkResolver for Wire dependency injection
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.Project)
}
