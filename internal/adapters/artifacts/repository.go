package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/greenworld-labs/greenctl/internal/domain"
	"github.com/greenworld-labs/greenctl/internal/domain/config"
	"github.com/greenworld-labs/greenctl/internal/domain/models"
	"github.com/greenworld-labs/greenctl/internal/usecase"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

// maxSuggestions bounds the "did you mean" list
const maxSuggestions = 3

// Repository reads Truffle (build/contracts/<Name>.json) and Foundry
// (out/<File>.sol/<Name>.json) artifacts from one directory.
type Repository struct {
	dir string
	log *slog.Logger
}

// NewRepository creates an artifact repository for the configured directory
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return &Repository{
		dir: cfg.ArtifactsDir,
		log: log.With("component", "artifacts"),
	}
}

// Get loads the artifact for a contract name
func (r *Repository) Get(ctx context.Context, name string) (*models.Artifact, error) {
	path, err := r.find(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	artifact.Name = name
	artifact.Path = path

	r.log.Debug("loaded artifact", "name", name, "path", path, "linkRefs", len(artifact.Bytecode.LinkReferences))
	return &artifact, nil
}

// List returns the sorted names of every artifact in the directory
func (r *Repository) List(ctx context.Context) ([]string, error) {
	paths, err := r.artifactPaths()
	if err != nil {
		return nil, err
	}
	names := lo.Uniq(lo.Map(paths, func(p string, _ int) string {
		return strings.TrimSuffix(filepath.Base(p), ".json")
	}))
	sort.Strings(names)
	return names, nil
}

func (r *Repository) find(name string) (string, error) {
	truffle := filepath.Join(r.dir, name+".json")
	if _, err := os.Stat(truffle); err == nil {
		return truffle, nil
	}

	matches, err := filepath.Glob(filepath.Join(r.dir, "*.sol", name+".json"))
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", r.notFound(name)
	case 1:
		return matches[0], nil
	default:
		sort.Strings(matches)
		return "", fmt.Errorf("multiple artifacts named %s: %s", name, strings.Join(matches, ", "))
	}
}

func (r *Repository) notFound(name string) error {
	names, err := r.List(context.Background())
	if err != nil {
		return fmt.Errorf("artifacts directory %s: %w", r.dir, err)
	}

	matches := fuzzy.Find(name, names)
	suggestions := make([]string, 0, maxSuggestions)
	for i := 0; i < len(matches) && i < maxSuggestions; i++ {
		suggestions = append(suggestions, matches[i].Str)
	}
	return domain.ContractNotFoundErr{Name: name, Suggestions: suggestions}
}

func (r *Repository) artifactPaths() ([]string, error) {
	if _, err := os.Stat(r.dir); err != nil {
		return nil, fmt.Errorf("artifacts directory %s not found (compile the contracts first)", r.dir)
	}

	top, err := filepath.Glob(filepath.Join(r.dir, "*.json"))
	if err != nil {
		return nil, err
	}
	nested, err := filepath.Glob(filepath.Join(r.dir, "*.sol", "*.json"))
	if err != nil {
		return nil, err
	}
	return append(top, nested...), nil
}

// Ensure the adapter implements the interface
var _ usecase.ArtifactRepository = (*Repository)(nil)
