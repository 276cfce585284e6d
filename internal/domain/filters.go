package domain

import (
	"github.com/greenworld-labs/greenctl/internal/domain/models"
)

// TransactionFilter defines filtering options for transactions
type TransactionFilter struct {
	ChainID uint64
	Method  string
	Status  models.TransactionStatus
}

// DeploymentFilter defines filtering options for deployments
type DeploymentFilter struct {
	ChainID      uint64
	ContractName string
	Type         models.DeploymentType
}
