// Package id generates identifiers for txfacade records.
//
// Identifiers are UUIDv4 bytes encoded as lowercase base32 (RFC 4648) with
// no padding, giving 26 URL-safe characters.
package id

import (
	"encoding/base32"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a fresh random identifier.
func NewID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return strings.ToLower(encoding.EncodeToString(u[:])), nil
}

// NewTransactionID returns a unique identifier followed by the nanosecond
// wall-clock time it was issued at, e.g. "<id>-1792411200000000000". The
// timestamp suffix only aids debugging and rough ordering; uniqueness comes
// from the random part.
func NewTransactionID(now time.Time) (string, error) {
	base, err := NewID()
	if err != nil {
		return "", err
	}
	return base + "-" + strconv.FormatInt(now.UnixNano(), 10), nil
}
