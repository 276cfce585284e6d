package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/greenworld-labs/greenctl/internal/domain/models"
	"github.com/greenworld-labs/greenctl/internal/usecase"
)

// MigrationRenderer renders the outcome of a migration
type MigrationRenderer struct {
	out io.Writer
}

// NewMigrationRenderer creates a new migration renderer
func NewMigrationRenderer(out io.Writer) *MigrationRenderer {
	return &MigrationRenderer{out: out}
}

// Render prints the deployed (or planned) library and contract
func (r *MigrationRenderer) Render(result *usecase.MigrationResult) error {
	if result.DryRun {
		fmt.Fprintf(r.out, "🔍 Dry run on %s, nothing was sent\n\n", networkName(result.Network))
		fmt.Fprintf(r.out, "  1. deploy %s %s\n", formatType(string(result.Library.Type)), result.Library.ContractName)
		fmt.Fprintf(r.out, "  2. link %s into %s (%d bytes)\n", result.Library.ContractName, result.Contract.ContractName, result.LinkedSize)
		fmt.Fprintf(r.out, "  3. deploy %s %s\n", formatType(string(result.Contract.Type)), result.Contract.ContractName)
		return nil
	}

	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Migration complete on %s", networkName(result.Network))))
	fmt.Fprintln(r.out)
	for _, dep := range []*models.Deployment{result.Library, result.Contract} {
		if dep == nil {
			continue
		}
		r.renderDeployment(result, dep)
	}
	return nil
}

func (r *MigrationRenderer) renderDeployment(result *usecase.MigrationResult, dep *models.Deployment) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	fmt.Fprintf(r.out, "%s %s\n", bold.Sprint(dep.ContractName), faint.Sprintf("[%s]", formatType(string(dep.Type))))
	fmt.Fprintf(r.out, "  Address:  %s\n", color.New(color.FgGreen).Sprint(dep.Address))
	fmt.Fprintf(r.out, "  Tx:       %s\n", dep.TransactionHash)
	fmt.Fprintf(r.out, "  Block:    %d\n", dep.BlockNumber)
	fmt.Fprintf(r.out, "  Gas used: %s\n", formatGas(dep.GasUsed))
	for name, address := range dep.Libraries {
		fmt.Fprintf(r.out, "  Linked:   %s at %s\n", name, address)
	}
	if link := explorerLink(result.Network, dep.TransactionHash); link != "" {
		fmt.Fprintf(r.out, "  %s\n", faint.Sprint(link))
	}
	fmt.Fprintln(r.out)
}

var _ Renderer[*usecase.MigrationResult] = (*MigrationRenderer)(nil)
