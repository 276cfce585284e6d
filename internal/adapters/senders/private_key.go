package senders

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/greenworld-labs/greenctl/internal/domain"
	"github.com/greenworld-labs/greenctl/internal/domain/config"
	"github.com/greenworld-labs/greenctl/internal/usecase"
)

// PrivateKeySigner signs with a hex-encoded key from configuration.
// The key is parsed on first use so commands that never send don't need one.
type PrivateKeySigner struct {
	rawKey string

	once sync.Once
	key  *ecdsa.PrivateKey
	err  error
}

// NewPrivateKeySigner creates a signer from the resolved runtime config
func NewPrivateKeySigner(cfg *config.RuntimeConfig) *PrivateKeySigner {
	return &PrivateKeySigner{rawKey: cfg.PrivateKey}
}

func (s *PrivateKeySigner) load() (*ecdsa.PrivateKey, error) {
	s.once.Do(func() {
		raw := strings.TrimPrefix(strings.TrimSpace(s.rawKey), "0x")
		if raw == "" {
			s.err = fmt.Errorf("set GREENCTL_PRIVATE_KEY or [sender] private_key: %w", domain.ErrMissingSigner)
			return
		}
		s.key, s.err = crypto.HexToECDSA(raw)
		if s.err != nil {
			s.err = fmt.Errorf("invalid private key: %w", s.err)
		}
	})
	return s.key, s.err
}

// Address returns the account the key controls
func (s *PrivateKeySigner) Address() (common.Address, error) {
	key, err := s.load()
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

// TransactOpts builds EIP-155 transaction options bound to ctx
func (s *PrivateKeySigner) TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	key, err := s.load()
	if err != nil {
		return nil, err
	}
	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}

// Ensure the adapter implements the interface
var _ usecase.Signer = (*PrivateKeySigner)(nil)
