package interactive

import (
	"context"
	"testing"

	"github.com/greenworld-labs/greenctl/internal/domain"
	"github.com/greenworld-labs/greenctl/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("yes flag skips prompt", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{Yes: true, NonInteractive: true})
		ok, err := s.Confirm(ctx, "Deploy?")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("non-interactive without yes aborts", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})
		ok, err := s.Confirm(ctx, "Deploy?")
		assert.False(t, ok)
		assert.ErrorIs(t, err, domain.ErrAborted)
	})
}

func TestSelectNetwork(t *testing.T) {
	ctx := context.Background()

	s := NewSelectorAdapter(&config.RuntimeConfig{})
	name, err := s.SelectNetwork(ctx, []string{"bsc_testnet"})
	require.NoError(t, err)
	assert.Equal(t, "bsc_testnet", name)

	_, err = s.SelectNetwork(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	s = NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})
	_, err = s.SelectNetwork(ctx, []string{"a", "b"})
	assert.Error(t, err)
}

func TestFuzzySearch(t *testing.T) {
	items := []string{"bsc_testnet", "mainnet", "sepolia"}
	search := createFuzzySearchFunc(items)

	assert.True(t, search("", 1))
	assert.True(t, search("BSC", 0))
	assert.True(t, search("bstn", 0))
	assert.False(t, search("xyz", 2))
}
