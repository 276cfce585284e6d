package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/greenworld-labs/greenctl/internal/domain/models"
	"github.com/greenworld-labs/greenctl/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
)

// Color styles for table format
var (
	chainHeader     = color.New(color.BgCyan, color.FgBlack)
	chainHeaderBold = color.New(color.BgCyan, color.FgBlack, color.Bold)
	addressStyle    = color.New(color.FgWhite)
	timestampStyle  = color.New(color.Faint)
	libraryStyle    = color.New(color.FgMagenta)
	failedStyle     = color.New(color.FgRed)
	pendingStyle    = color.New(color.FgYellow)
)

// DeploymentsRenderer renders the registry as one table per chain
type DeploymentsRenderer struct {
	out io.Writer
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out}
}

// Render renders deployments grouped by chain, followed by recorded calls
func (r *DeploymentsRenderer) Render(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 && len(result.Transactions) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	byChain := lo.GroupBy(result.Deployments, func(dep *models.Deployment) uint64 {
		return dep.ChainID
	})
	chainIDs := lo.Keys(byChain)
	sort.Slice(chainIDs, func(i, j int) bool { return chainIDs[i] < chainIDs[j] })

	for _, chainID := range chainIDs {
		fmt.Fprintf(r.out, "%s%s\n", chainHeader.Sprint(" chain "), chainHeaderBold.Sprintf(" %d ", chainID))
		fmt.Fprintln(r.out, renderTable(deploymentRows(byChain[chainID])))
		fmt.Fprintln(r.out)
	}

	if len(result.Transactions) > 0 {
		fmt.Fprintln(r.out, color.New(color.Bold, color.FgHiWhite).Sprint("Transactions"))
		fmt.Fprintln(r.out, renderTable(transactionRows(result.Transactions)))
		fmt.Fprintln(r.out)
	}

	fmt.Fprintf(r.out, "%d deployment(s)", result.Summary.Total)
	if n := result.Summary.ByType[models.LibraryDeployment]; n > 0 {
		fmt.Fprintf(r.out, ", %d library", n)
	}
	fmt.Fprintln(r.out)
	return nil
}

func deploymentRows(deployments []*models.Deployment) []table.Row {
	return lo.Map(deployments, func(dep *models.Deployment, _ int) table.Row {
		name := dep.ContractName
		if dep.Type == models.LibraryDeployment {
			name = libraryStyle.Sprintf("%s (library)", name)
		}
		libs := lo.Keys(dep.Libraries)
		sort.Strings(libs)
		linked := strings.Join(libs, ",")
		if linked != "" {
			linked = "links " + linked
		}
		return table.Row{
			name,
			addressStyle.Sprint(dep.Address),
			linked,
			timestampStyle.Sprint(dep.CreatedAt.Format("2006-01-02 15:04:05")),
		}
	})
}

func transactionRows(txs []*models.Transaction) []table.Row {
	return lo.Map(txs, func(tx *models.Transaction, _ int) table.Row {
		status := string(tx.Status)
		switch tx.Status {
		case models.TransactionStatusFailed:
			status = failedStyle.Sprint(status)
		case models.TransactionStatusPending:
			status = pendingStyle.Sprint(status)
		}
		return table.Row{
			fmt.Sprintf("%s.%s", tx.Contract, tx.Method),
			addressStyle.Sprint(tx.Hash),
			status,
			timestampStyle.Sprint(tx.CreatedAt.Format("2006-01-02 15:04:05")),
		}
	})
}

// renderTable renders rows without borders, left aligned
func renderTable(rows []table.Row) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft},
	})

	for _, row := range rows {
		t.AppendRow(row)
	}
	return t.Render()
}

var _ Renderer[*usecase.DeploymentListResult] = (*DeploymentsRenderer)(nil)
