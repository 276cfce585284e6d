package artifacts

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/greenworld-labs/greenctl/internal/domain"
	"github.com/greenworld-labs/greenctl/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, files map[string]string) *Repository {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRepository(&config.RuntimeConfig{ArtifactsDir: dir}, log)
}

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, map[string]string{
		"GreenWorld.json":                `{"contractName":"GreenWorld","abi":[],"bytecode":"0x6080"}`,
		"IterableMapping.json":           `{"contractName":"IterableMapping","abi":[],"bytecode":"0x6001"}`,
		"GreenTest.sol/GREENTEST.json":   `{"abi":[],"bytecode":{"object":"0x6002","linkReferences":{}}}`,
		"GreenTest.sol/GreenHelper.json": `{"abi":[],"bytecode":{"object":"0x"}}`,
		"Broken.json":                    `{"abi":`,
	})

	t.Run("truffle artifact", func(t *testing.T) {
		a, err := repo.Get(ctx, "GreenWorld")
		require.NoError(t, err)
		assert.Equal(t, "GreenWorld", a.Name)
		assert.Equal(t, "6080", a.Bytecode.Hex())
	})

	t.Run("foundry artifact", func(t *testing.T) {
		a, err := repo.Get(ctx, "GREENTEST")
		require.NoError(t, err)
		assert.Equal(t, "6002", a.Bytecode.Hex())
		assert.Contains(t, a.Path, "GreenTest.sol")
	})

	t.Run("list", func(t *testing.T) {
		names, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Broken", "GREENTEST", "GreenHelper", "GreenWorld", "IterableMapping"}, names)
	})

	t.Run("not found with suggestions", func(t *testing.T) {
		_, err := repo.Get(ctx, "GrnWrld")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrContractNotFound))

		var notFound domain.ContractNotFoundErr
		require.ErrorAs(t, err, &notFound)
		assert.Contains(t, notFound.Suggestions, "GreenWorld")
	})

	t.Run("malformed artifact", func(t *testing.T) {
		_, err := repo.Get(ctx, "Broken")
		assert.Error(t, err)
	})
}

func TestRepositoryMissingDir(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := NewRepository(&config.RuntimeConfig{ArtifactsDir: filepath.Join(t.TempDir(), "missing")}, log)

	_, err := repo.List(context.Background())
	assert.Error(t, err)

	_, err = repo.Get(context.Background(), "GreenWorld")
	assert.Error(t, err)
}
