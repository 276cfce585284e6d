package deployments

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/greenworld-labs/greenctl/internal/domain"
	"github.com/greenworld-labs/greenctl/internal/domain/config"
	"github.com/greenworld-labs/greenctl/internal/domain/models"
	"github.com/greenworld-labs/greenctl/internal/usecase"
)

const (
	DeploymentsFile  = "deployments.json"
	TransactionsFile = "transactions.json"
	AddressesFile    = "addresses.json"
)

// AddressBook is the flat chainID -> contract name -> address view
// written next to the full records for scripts that only need addresses.
type AddressBook map[uint64]map[string]string

// FileRepository stores deployments and transactions in json files under the data dir
type FileRepository struct {
	dir          string
	mu           sync.RWMutex
	deployments  map[string]*models.Deployment
	transactions map[string]*models.Transaction
	byAddress    map[uint64]map[string]string
}

// NewFileRepository opens the registry in dir, creating it if needed
func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	m := &FileRepository{
		dir:          dir,
		deployments:  make(map[string]*models.Deployment),
		transactions: make(map[string]*models.Transaction),
		byAddress:    make(map[uint64]map[string]string),
	}

	if err := m.load(); err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}

	return m, nil
}

// ProvideFileRepository opens the registry in the configured data dir
func ProvideFileRepository(cfg *config.RuntimeConfig) (*FileRepository, error) {
	return NewFileRepository(cfg.DataDir)
}

// load reads all registry files
func (m *FileRepository) load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.loadFile(DeploymentsFile, &m.deployments); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load deployments: %w", err)
	}
	if err := m.loadFile(TransactionsFile, &m.transactions); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	// a file holding json null decodes to a nil map
	if m.deployments == nil {
		m.deployments = make(map[string]*models.Deployment)
	}
	if m.transactions == nil {
		m.transactions = make(map[string]*models.Transaction)
	}

	m.rebuildLookups()
	return nil
}

// loadFile loads a JSON file from the data dir
func (m *FileRepository) loadFile(filename string, v any) error {
	data, err := os.ReadFile(filepath.Join(m.dir, filename))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// save writes all registry files
func (m *FileRepository) save() error {
	if err := m.saveFile(DeploymentsFile, m.deployments); err != nil {
		return fmt.Errorf("failed to save deployments: %w", err)
	}
	if err := m.saveFile(TransactionsFile, m.transactions); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	if err := m.saveFile(AddressesFile, m.addressBook()); err != nil {
		return fmt.Errorf("failed to save address book: %w", err)
	}
	return nil
}

// saveFile saves data to a JSON file in the data dir
func (m *FileRepository) saveFile(filename string, v any) error {
	path := filepath.Join(m.dir, filename)

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	// Write to temp file first
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	// Atomic rename
	return os.Rename(tmpPath, path)
}

// rebuildLookups rebuilds the address index from the loaded data
func (m *FileRepository) rebuildLookups() {
	m.byAddress = make(map[uint64]map[string]string)
	for id, dep := range m.deployments {
		m.index(id, dep)
	}
}

func (m *FileRepository) index(id string, dep *models.Deployment) {
	if m.byAddress[dep.ChainID] == nil {
		m.byAddress[dep.ChainID] = make(map[string]string)
	}
	m.byAddress[dep.ChainID][strings.ToLower(dep.Address)] = id
}

func (m *FileRepository) addressBook() AddressBook {
	book := make(AddressBook)
	for _, dep := range m.deployments {
		if book[dep.ChainID] == nil {
			book[dep.ChainID] = make(map[string]string)
		}
		book[dep.ChainID][dep.ContractName] = dep.Address
	}
	return book
}

// GetDeployment retrieves a deployment by ID
func (m *FileRepository) GetDeployment(ctx context.Context, id string) (*models.Deployment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dep, exists := m.deployments[id]
	if !exists {
		return nil, domain.ErrNotFound
	}

	// Clone to avoid mutations
	clone := *dep
	return &clone, nil
}

// GetDeploymentByAddress retrieves a deployment by chain ID and address
func (m *FileRepository) GetDeploymentByAddress(ctx context.Context, chainID uint64, address string) (*models.Deployment, error) {
	m.mu.RLock()
	id, exists := m.byAddress[chainID][strings.ToLower(address)]
	m.mu.RUnlock()

	if !exists {
		return nil, domain.ErrNotFound
	}
	return m.GetDeployment(ctx, id)
}

// ListDeployments retrieves deployments matching the filter, ordered by chain then creation time
func (m *FileRepository) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*models.Deployment
	for _, dep := range m.deployments {
		if filter.ChainID != 0 && dep.ChainID != filter.ChainID {
			continue
		}
		if filter.ContractName != "" && dep.ContractName != filter.ContractName {
			continue
		}
		if filter.Type != "" && dep.Type != filter.Type {
			continue
		}
		clone := *dep
		result = append(result, &clone)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].ChainID != result[j].ChainID {
			return result[i].ChainID < result[j].ChainID
		}
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// SaveDeployment stores a deployment, replacing any earlier record with the same ID
func (m *FileRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if deployment.CreatedAt.IsZero() {
		deployment.CreatedAt = now
	}
	deployment.UpdatedAt = now

	existing, replaced := m.deployments[deployment.ID]
	if replaced {
		delete(m.byAddress[existing.ChainID], strings.ToLower(existing.Address))
	}

	clone := *deployment
	m.deployments[deployment.ID] = &clone
	m.index(deployment.ID, &clone)

	if err := m.save(); err != nil {
		// keep memory in step with what is on disk
		delete(m.byAddress[clone.ChainID], strings.ToLower(clone.Address))
		if replaced {
			m.deployments[deployment.ID] = existing
			m.index(deployment.ID, existing)
		} else {
			delete(m.deployments, deployment.ID)
		}
		return err
	}
	return nil
}

// ListTransactions retrieves transactions matching the filter, oldest first
func (m *FileRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]*models.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*models.Transaction
	for _, tx := range m.transactions {
		if filter.ChainID != 0 && tx.ChainID != filter.ChainID {
			continue
		}
		if filter.Method != "" && tx.Method != filter.Method {
			continue
		}
		if filter.Status != "" && tx.Status != filter.Status {
			continue
		}
		clone := *tx
		result = append(result, &clone)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].Hash < result[j].Hash
	})

	return result, nil
}

// SaveTransaction stores a transaction keyed by its hash
func (m *FileRepository) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tx.Hash == "" {
		return fmt.Errorf("transaction has no hash")
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}

	existing, replaced := m.transactions[tx.Hash]
	clone := *tx
	m.transactions[tx.Hash] = &clone

	if err := m.save(); err != nil {
		if replaced {
			m.transactions[tx.Hash] = existing
		} else {
			delete(m.transactions, tx.Hash)
		}
		return err
	}
	return nil
}

// Ensure the adapter implements the interface
var _ usecase.DeploymentRepository = (*FileRepository)(nil)
