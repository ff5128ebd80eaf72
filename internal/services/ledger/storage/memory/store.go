// Package memory implements ledger storage in process memory.
package memory

import (
	"context"
	"maps"
	"math"
	"sync"

	"github.com/louisbranch/txfacade/internal/services/ledger/storage"
)

// Store keeps balances in a map guarded by one lock. Contents are lost when
// the process exits.
type Store struct {
	mu       sync.RWMutex
	balances map[string]float64
}

var _ storage.BalanceStore = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{balances: make(map[string]float64)}
}

// Apply folds cmd.Amount into the user's balance and returns the result.
func (s *Store) Apply(ctx context.Context, cmd storage.Command) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.balances[cmd.UserID] + cmd.Amount
	if math.IsInf(next, 0) {
		return 0, storage.ErrBalanceOverflow
	}
	s.balances[cmd.UserID] = next
	return next, nil
}

// Balance returns the user's balance, or 0 for an unknown user.
func (s *Store) Balance(ctx context.Context, userID string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := storage.ValidateUserID(userID); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[userID], nil
}

// Balances returns a copy of every balance.
func (s *Store) Balances(ctx context.Context) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.balances), nil
}
