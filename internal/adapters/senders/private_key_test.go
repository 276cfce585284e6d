package senders

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/greenworld-labs/greenctl/internal/domain"
	"github.com/greenworld-labs/greenctl/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// first anvil/hardhat development key
const devKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func TestPrivateKeySigner(t *testing.T) {
	t.Run("address and transact opts", func(t *testing.T) {
		s := NewPrivateKeySigner(&config.RuntimeConfig{PrivateKey: devKey})

		addr, err := s.Address()
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), addr)

		ctx := context.Background()
		opts, err := s.TransactOpts(ctx, big.NewInt(97))
		require.NoError(t, err)
		assert.Equal(t, addr, opts.From)
		assert.Equal(t, ctx, opts.Context)
	})

	t.Run("missing key", func(t *testing.T) {
		s := NewPrivateKeySigner(&config.RuntimeConfig{})

		_, err := s.Address()
		assert.True(t, errors.Is(err, domain.ErrMissingSigner))
	})

	t.Run("malformed key", func(t *testing.T) {
		s := NewPrivateKeySigner(&config.RuntimeConfig{PrivateKey: "0x1234"})

		_, err := s.TransactOpts(context.Background(), big.NewInt(1))
		assert.Error(t, err)
		assert.False(t, errors.Is(err, domain.ErrMissingSigner))
	})
}
