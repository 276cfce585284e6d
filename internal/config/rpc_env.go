package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches ${VAR_NAME} patterns in TOML values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// DetectEnvVar checks if a raw TOML value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// ExpandSecret resolves a ${VAR} reference, or returns literal values unchanged
func ExpandSecret(rawValue string) string {
	if name, ok := DetectEnvVar(rawValue); ok {
		return os.Getenv(name)
	}
	return os.ExpandEnv(rawValue)
}

// MaskSecret renders a secret for display: env references are shown as-is,
// literals are reduced to their last four characters.
func MaskSecret(rawValue string) string {
	if rawValue == "" {
		return ""
	}
	if _, ok := DetectEnvVar(rawValue); ok {
		return rawValue
	}
	if len(rawValue) <= 4 {
		return strings.Repeat("*", len(rawValue))
	}
	return strings.Repeat("*", 8) + rawValue[len(rawValue)-4:]
}
