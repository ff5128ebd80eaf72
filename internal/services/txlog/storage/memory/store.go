// Package memory implements transaction log storage in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/louisbranch/txfacade/internal/services/txlog/storage"
)

type record struct {
	userID string
	amount float64
}

// Store keeps entries in a map keyed by transaction id.
type Store struct {
	mu      sync.RWMutex
	entries map[string]record
}

var _ storage.TransactionStore = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{entries: make(map[string]record)}
}

// Append records entry, replacing any entry with the same transaction id.
func (s *Store) Append(ctx context.Context, entry storage.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.TransactionID] = record{userID: entry.UserID, amount: entry.Amount}
	return nil
}

// UserAmounts scans every entry for the user's amounts.
func (s *Store) UserAmounts(ctx context.Context, userID string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := storage.ValidateUserID(userID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	amounts := make([]float64, 0)
	for _, rec := range s.entries {
		if rec.userID == userID {
			amounts = append(amounts, rec.amount)
		}
	}
	return amounts, nil
}
