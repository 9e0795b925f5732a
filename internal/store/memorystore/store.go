// Package memorystore provides an in-memory Store implementation used for
// local development and tests.
package memorystore

import (
	"context"
	"math/big"
	"sync"

	"github.com/custodia/custodia-api/internal/store"
	"github.com/ethereum/go-ethereum/common"
)

// Store keeps all vault state in process memory behind a single mutex, so
// every operation is serialized and atomic with respect to the others.
type Store struct {
	mu            sync.RWMutex
	consumed      map[common.Hash]bool
	balance       *big.Int
	contributions map[common.Address]*big.Int
	payouts       map[common.Address]*big.Int
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		consumed:      make(map[common.Hash]bool),
		balance:       new(big.Int),
		contributions: make(map[common.Address]*big.Int),
		payouts:       make(map[common.Address]*big.Int),
	}
}

// IsConsumed reports whether authID has been consumed.
func (s *Store) IsConsumed(_ context.Context, authID common.Hash) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.consumed[authID], nil
}

// MarkConsumed records authID as consumed, first caller wins.
func (s *Store) MarkConsumed(_ context.Context, authID common.Hash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consumed[authID] {
		return store.ErrAlreadyConsumed
	}
	s.consumed[authID] = true
	return nil
}

// Balance returns a copy of the aggregate balance.
func (s *Store) Balance(_ context.Context) (*big.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return new(big.Int).Set(s.balance), nil
}

// Credit adds amount to the aggregate balance and the depositor's ledger.
func (s *Store) Credit(_ context.Context, depositor common.Address, amount *big.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balance.Add(s.balance, amount)
	current, ok := s.contributions[depositor]
	if !ok {
		current = new(big.Int)
		s.contributions[depositor] = current
	}
	current.Add(current, amount)
	return nil
}

// Withdraw subtracts amount from the aggregate balance and adds it to the
// recipient's payout ledger. Both updates happen under one lock, so a
// rejected withdrawal leaves neither side changed.
func (s *Store) Withdraw(_ context.Context, recipient common.Address, amount *big.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.balance.Cmp(amount) < 0 {
		return store.ErrInsufficientBalance
	}
	s.balance.Sub(s.balance, amount)
	current, ok := s.payouts[recipient]
	if !ok {
		current = new(big.Int)
		s.payouts[recipient] = current
	}
	current.Add(current, amount)
	return nil
}

// Contribution returns a copy of the depositor's contribution total.
func (s *Store) Contribution(_ context.Context, depositor common.Address) (*big.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if current, ok := s.contributions[depositor]; ok {
		return new(big.Int).Set(current), nil
	}
	return new(big.Int), nil
}

// Payout returns a copy of the recipient's payout total.
func (s *Store) Payout(_ context.Context, recipient common.Address) (*big.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if current, ok := s.payouts[recipient]; ok {
		return new(big.Int).Set(current), nil
	}
	return new(big.Int), nil
}
