// Package storage defines the persistence contract for the transaction log.
package storage

import (
	"context"
	"errors"
	"math"
	"strings"
)

// ErrInvalidEntry indicates an entry or read key failed validation.
var ErrInvalidEntry = errors.New("invalid transaction log entry")

// Entry is one recorded transaction, keyed by TransactionID.
type Entry struct {
	TransactionID string
	UserID        string
	Amount        float64
}

// Validate reports whether the entry can be recorded.
func (e Entry) Validate() error {
	switch {
	case strings.TrimSpace(e.TransactionID) == "":
		return invalid("transaction id is required")
	case strings.TrimSpace(e.UserID) == "":
		return invalid("user id is required")
	case math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0):
		return invalid("amount must be a finite number")
	}
	return nil
}

// ValidateUserID reports whether id can key a transaction read.
func ValidateUserID(id string) error {
	if strings.TrimSpace(id) == "" {
		return invalid("user id is required")
	}
	return nil
}

func invalid(msg string) error {
	return &ValidationError{msg: msg}
}

// ValidationError carries the failing rule; errors.Is matches ErrInvalidEntry.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidEntry }

// TransactionStore records entries by transaction id. Appending an existing
// id overwrites the previous entry.
type TransactionStore interface {
	Append(ctx context.Context, entry Entry) error
	// UserAmounts returns the amounts recorded for userID in no particular order.
	UserAmounts(ctx context.Context, userID string) ([]float64, error)
}
