package render

import (
	"strings"

	"github.com/fatih/color"
	"github.com/greenworld-labs/greenctl/internal/domain/config"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer = message.NewPrinter(language.English)
	titler  = cases.Title(language.English)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Capitalize first letter
	if len(message) > 0 {
		message = strings.ToUpper(message[:1]) + message[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// formatGas groups digits, e.g. 1,234,567
func formatGas(gas uint64) string {
	return printer.Sprintf("%d", gas)
}

// formatType turns LIBRARY into Library
func formatType(kind string) string {
	return titler.String(strings.ToLower(kind))
}

// explorerLink returns a block explorer URL for a transaction, or "" if none is known
func explorerLink(network *config.Network, txHash string) string {
	if network == nil || network.ExplorerURL == "" {
		return ""
	}
	return strings.TrimSuffix(network.ExplorerURL, "/") + "/tx/" + txHash
}

func networkName(network *config.Network) string {
	if network == nil {
		return "(none)"
	}
	return network.Name
}
