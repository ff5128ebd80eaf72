// Package storage defines the persistence contract for ledger balances.
package storage

import (
	"context"
	"errors"
	"math"
	"strings"
)

// ErrInvalidCommand indicates a command or read key failed validation.
var ErrInvalidCommand = errors.New("invalid ledger command")

// Command is one signed amount to fold into a user's balance.
type Command struct {
	TransactionID string
	UserID        string
	Amount        float64
}

// Validate reports whether the command can be applied.
func (c Command) Validate() error {
	if strings.TrimSpace(c.TransactionID) == "" {
		return invalid("transaction id is required")
	}
	if strings.TrimSpace(c.UserID) == "" {
		return invalid("user id is required")
	}
	if math.IsNaN(c.Amount) || math.IsInf(c.Amount, 0) {
		return invalid("amount must be a finite number")
	}
	return nil
}

// ErrBalanceOverflow reports an apply whose result is not a finite float64.
// It is a ValidationError, so errors.Is also matches ErrInvalidCommand.
var ErrBalanceOverflow error = &ValidationError{msg: "balance would overflow"}

// ValidateUserID reports whether id can key a balance read.
func ValidateUserID(id string) error {
	if strings.TrimSpace(id) == "" {
		return invalid("user id is required")
	}
	return nil
}

func invalid(msg string) error {
	return &ValidationError{msg: msg}
}

// ValidationError carries the failing rule; errors.Is matches ErrInvalidCommand.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidCommand }

// BalanceStore accumulates per-user balances.
//
// Apply is an insert-or-add: the first command for a user sets the balance to
// its amount, later ones add to it. An apply that would leave a non-finite
// balance fails with ErrBalanceOverflow and changes nothing. Reads never
// create rows.
type BalanceStore interface {
	Apply(ctx context.Context, cmd Command) (float64, error)
	Balance(ctx context.Context, userID string) (float64, error)
	Balances(ctx context.Context) (map[string]float64, error)
}
