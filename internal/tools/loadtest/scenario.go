package loadtest

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"
)

const balanceTolerance = 1e-9

// ScenarioResult summarizes one scenario run.
type ScenarioResult struct {
	Name     string
	Requests int
	OK       int
	Failed   int
	Elapsed  time.Duration
	// Delta is nil when /metrics could not be read before or after the run.
	Delta *timings
}

// Throughput returns completed requests per second.
func (r ScenarioResult) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Requests) / r.Elapsed.Seconds()
}

// Report writes a human-readable summary.
func (r ScenarioResult) Report(out io.Writer) {
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintf(out, "Scenario: %s\n", r.Name)
	fmt.Fprintf(out, "Requests: %d (ok=%d, fail=%d)\n", r.Requests, r.OK, r.Failed)
	fmt.Fprintf(out, "Total time: %s\n", r.Elapsed)
	fmt.Fprintf(out, "Throughput: %.2f req/s\n", r.Throughput())
	if r.Delta == nil {
		fmt.Fprintln(out, "Metrics: unavailable (failed to read /metrics)")
		return
	}
	fmt.Fprintf(out, "Metrics (delta): ledger=%s, log=%s\n",
		time.Duration(r.Delta.LedgerTimeNanos), time.Duration(r.Delta.LogTimeNanos))
}

// runScenario starts one goroutine per user id, each submitting perClient
// transactions sequentially.
func runScenario(ctx context.Context, client *facadeClient, name string, userIDs []string, perClient int, amount float64) ScenarioResult {
	before, beforeErr := client.timings(ctx)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		ok     int
		failed int
	)
	start := time.Now()
	for _, userID := range userIDs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var clientOK, clientFailed int
			for range perClient {
				if err := client.submit(ctx, userID, amount); err != nil {
					clientFailed++
					continue
				}
				clientOK++
			}
			mu.Lock()
			ok += clientOK
			failed += clientFailed
			mu.Unlock()
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	result := ScenarioResult{
		Name:     name,
		Requests: len(userIDs) * perClient,
		OK:       ok,
		Failed:   failed,
		Elapsed:  elapsed,
	}
	after, afterErr := client.timings(ctx)
	if beforeErr == nil && afterErr == nil {
		result.Delta = &timings{
			LedgerTimeNanos: saturatingSub(after.LedgerTimeNanos, before.LedgerTimeNanos),
			LogTimeNanos:    saturatingSub(after.LogTimeNanos, before.LogTimeNanos),
		}
	}
	return result
}

func verifyAccounts(ctx context.Context, client *facadeClient, userIDs []string, expected float64) error {
	balances, err := client.accounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch /accounts: %w", err)
	}
	for _, userID := range userIDs {
		balance, ok := balances[userID]
		if !ok {
			return fmt.Errorf("missing account %s", userID)
		}
		if math.Abs(balance-expected) > balanceTolerance {
			return fmt.Errorf("account %s balance %v != %v", userID, balance, expected)
		}
	}
	return nil
}

func verifyUsers(ctx context.Context, client *facadeClient, userIDs []string, expected float64) error {
	for _, userID := range userIDs {
		balance, err := client.userBalance(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to fetch /user/%s: %w", userID, err)
		}
		if math.Abs(balance-expected) > balanceTolerance {
			return fmt.Errorf("user %s balance %v != %v", userID, balance, expected)
		}
	}
	return nil
}

func saturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}
