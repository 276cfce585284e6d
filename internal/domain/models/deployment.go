package models

import (
	"fmt"
	"time"
)

// DeploymentType represents the type of deployment
type DeploymentType string

const (
	SingletonDeployment DeploymentType = "SINGLETON"
	LibraryDeployment   DeploymentType = "LIBRARY"
)

// Deployment represents a contract deployment record
type Deployment struct {
	ID           string         `json:"id"` // e.g., "97/GreenWorld"
	ChainID      uint64         `json:"chainId"`
	ContractName string         `json:"contractName"`
	Address      string         `json:"address"`
	Type         DeploymentType `json:"type"`

	// Libraries linked into the creation bytecode, by name
	Libraries map[string]string `json:"libraries,omitempty"`

	TransactionHash string `json:"transactionHash"`
	BlockNumber     uint64 `json:"blockNumber"`
	GasUsed         uint64 `json:"gasUsed"`
	Deployer        string `json:"deployer"`

	ArtifactPath string    `json:"artifactPath,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DeploymentID builds the registry key of a contract on a chain
func DeploymentID(chainID uint64, contractName string) string {
	return fmt.Sprintf("%d/%s", chainID, contractName)
}
