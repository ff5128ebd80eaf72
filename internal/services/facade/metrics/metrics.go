// Package metrics accumulates time spent in backend calls.
package metrics

import (
	"sync"
	"time"
)

// Kind names the backend a timing belongs to.
type Kind int

const (
	KindLedger Kind = iota
	KindLog
)

func (k Kind) String() string {
	switch k {
	case KindLedger:
		return "ledger"
	case KindLog:
		return "log"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent copy of both counters.
type Snapshot struct {
	LedgerTimeNanos uint64 `json:"ledger_time_nanos"`
	LogTimeNanos    uint64 `json:"log_time_nanos"`
}

// Aggregator sums elapsed nanoseconds per backend. The zero value is ready to
// use. Counters only grow.
type Aggregator struct {
	mu     sync.Mutex
	ledger uint64
	log    uint64
}

// Record adds elapsed to kind's counter. Negative durations are ignored.
func (a *Aggregator) Record(kind Kind, elapsed time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.add(kind, elapsed)
}

// RecordPair adds both timings of one fan-out in a single critical section,
// with the same rules as Record.
func (a *Aggregator) RecordPair(ledger, log time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.add(KindLedger, ledger)
	a.add(KindLog, log)
}

func (a *Aggregator) add(kind Kind, elapsed time.Duration) {
	if elapsed < 0 {
		return
	}
	switch kind {
	case KindLedger:
		a.ledger += uint64(elapsed)
	case KindLog:
		a.log += uint64(elapsed)
	}
}

// Snapshot reads both counters under one lock.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Snapshot{LedgerTimeNanos: a.ledger, LogTimeNanos: a.log}
}
