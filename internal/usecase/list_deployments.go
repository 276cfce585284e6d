package usecase

import (
	"context"
	"sort"

	"github.com/greenworld-labs/greenctl/internal/domain"
	"github.com/greenworld-labs/greenctl/internal/domain/config"
	"github.com/greenworld-labs/greenctl/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	// Filter parameters (chainID comes from RuntimeConfig)
	ContractName string
	Type         models.DeploymentType
	AllChains    bool
}

// DeploymentListResult contains the listed deployments and a summary
type DeploymentListResult struct {
	Deployments  []*models.Deployment
	Transactions []*models.Transaction
	Summary      DeploymentSummary
}

// DeploymentSummary counts deployments per chain and type
type DeploymentSummary struct {
	Total   int
	ByChain map[uint64]int
	ByType  map[models.DeploymentType]int
}

// ListDeployments is the use case for listing deployments
type ListDeployments struct {
	config *config.RuntimeConfig
	repo   DeploymentRepository
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(cfg *config.RuntimeConfig, repo DeploymentRepository) *ListDeployments {
	return &ListDeployments{
		config: cfg,
		repo:   repo,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	filter := domain.DeploymentFilter{
		ContractName: params.ContractName,
		Type:         params.Type,
	}
	if !params.AllChains && uc.config.Network != nil {
		filter.ChainID = uc.config.Network.ChainID
	}

	deployments, err := uc.repo.ListDeployments(ctx, filter)
	if err != nil {
		return nil, err
	}
	sortDeployments(deployments)

	transactions, err := uc.repo.ListTransactions(ctx, domain.TransactionFilter{ChainID: filter.ChainID})
	if err != nil {
		return nil, err
	}

	return &DeploymentListResult{
		Deployments:  deployments,
		Transactions: transactions,
		Summary:      calculateSummary(deployments),
	}, nil
}

// sortDeployments sorts deployments by chain, then libraries before the contracts linking them, then name
func sortDeployments(deployments []*models.Deployment) {
	sort.SliceStable(deployments, func(i, j int) bool {
		if deployments[i].ChainID != deployments[j].ChainID {
			return deployments[i].ChainID < deployments[j].ChainID
		}
		if deployments[i].Type != deployments[j].Type {
			return deployments[i].Type == models.LibraryDeployment
		}
		return deployments[i].ContractName < deployments[j].ContractName
	})
}

// calculateSummary calculates summary statistics for deployments
func calculateSummary(deployments []*models.Deployment) DeploymentSummary {
	summary := DeploymentSummary{
		Total:   len(deployments),
		ByChain: make(map[uint64]int),
		ByType:  make(map[models.DeploymentType]int),
	}

	for _, dep := range deployments {
		summary.ByChain[dep.ChainID]++
		summary.ByType[dep.Type]++
	}

	return summary
}
