package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/greenworld-labs/greenctl/internal/domain/models"
	"github.com/greenworld-labs/greenctl/internal/usecase"
)

// CallRenderer renders an administrative call
type CallRenderer struct {
	out io.Writer
}

// NewCallRenderer creates a new call renderer
func NewCallRenderer(out io.Writer) *CallRenderer {
	return &CallRenderer{out: out}
}

// Render prints the sent transaction and, when mined, its receipt
func (r *CallRenderer) Render(result *usecase.CallAdminMethodResult) error {
	tx := result.Transaction
	call := fmt.Sprintf("%s.%s(%t)", result.Contract, strings.TrimSuffix(tx.Method, "(bool)"), result.Value)

	switch tx.Status {
	case models.TransactionStatusExecuted:
		fmt.Fprintln(r.out, FormatSuccess(call))
	case models.TransactionStatusFailed:
		fmt.Fprintln(r.out, FormatError(call+" reverted"))
	default:
		fmt.Fprintln(r.out, color.New(color.FgYellow).Sprintf("⏳ %s sent, not waiting for receipt", call))
	}

	fmt.Fprintf(r.out, "  Contract: %s\n", result.Address.Hex())
	fmt.Fprintf(r.out, "  Network:  %s\n", networkName(result.Network))
	fmt.Fprintf(r.out, "  From:     %s (nonce %d)\n", tx.Sender, tx.Nonce)
	fmt.Fprintf(r.out, "  Tx:       %s\n", tx.Hash)
	if result.Mined {
		fmt.Fprintf(r.out, "  Block:    %d\n", tx.BlockNumber)
		fmt.Fprintf(r.out, "  Gas used: %s\n", formatGas(tx.GasUsed))
	}
	if link := explorerLink(result.Network, tx.Hash); link != "" {
		fmt.Fprintf(r.out, "  %s\n", color.New(color.Faint).Sprint(link))
	}
	return nil
}

var _ Renderer[*usecase.CallAdminMethodResult] = (*CallRenderer)(nil)
