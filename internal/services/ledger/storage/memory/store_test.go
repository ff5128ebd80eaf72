package memory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/louisbranch/txfacade/internal/services/ledger/storage"
)

func apply(t *testing.T, store *Store, userID string, amount float64) float64 {
	t.Helper()
	balance, err := store.Apply(context.Background(), storage.Command{
		TransactionID: fmt.Sprintf("tx-%s-%v", userID, amount),
		UserID:        userID,
		Amount:        amount,
	})
	if err != nil {
		t.Fatalf("apply %s %v: %v", userID, amount, err)
	}
	return balance
}

func TestApplyInitializesThenAccumulates(t *testing.T) {
	t.Parallel()
	store := New()

	if got := apply(t, store, "alice", 10); got != 10 {
		t.Fatalf("first apply balance = %v, want 10", got)
	}
	if got := apply(t, store, "alice", 15); got != 25 {
		t.Fatalf("second apply balance = %v, want 25", got)
	}
	if got := apply(t, store, "bob", -4); got != -4 {
		t.Fatalf("bob balance = %v, want -4", got)
	}
}

func TestApplyIsAssociativeAcrossBatches(t *testing.T) {
	t.Parallel()
	store := New()

	apply(t, store, "carol", 5)
	apply(t, store, "carol", 3)
	if got := apply(t, store, "carol", -2); got != 6 {
		t.Fatalf("balance = %v, want 6", got)
	}
}

func TestBalanceEqualsSumOfApplied(t *testing.T) {
	t.Parallel()
	store := New()
	amounts := []float64{1.5, -0.25, 40, 2.75}

	var want float64
	for _, amount := range amounts {
		want += amount
		apply(t, store, "dave", amount)
	}

	got, err := store.Balance(context.Background(), "dave")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if got != want {
		t.Fatalf("balance = %v, want %v", got, want)
	}
}

func TestConcurrentSameUserAppliesLoseNothing(t *testing.T) {
	t.Parallel()
	store := New()

	const workers = 16
	const perWorker = 200
	sums := make([]float64, workers)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(uint64(w), 7))
			for i := range perWorker {
				// Integer amounts keep float addition exact regardless of order.
				amount := float64(rng.IntN(2001) - 1000)
				sums[w] += amount
				_, err := store.Apply(context.Background(), storage.Command{
					TransactionID: fmt.Sprintf("tx-%d-%d", w, i),
					UserID:        "shared",
					Amount:        amount,
				})
				if err != nil {
					t.Errorf("apply: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	var want float64
	for _, sum := range sums {
		want += sum
	}
	got, err := store.Balance(context.Background(), "shared")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if got != want {
		t.Fatalf("balance = %v, want %v", got, want)
	}
}

func TestBalanceUnknownUserDoesNotCreateRow(t *testing.T) {
	t.Parallel()
	store := New()
	apply(t, store, "alice", 1)

	got, err := store.Balance(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if got != 0 {
		t.Fatalf("balance = %v, want 0", got)
	}

	all, err := store.Balances(context.Background())
	if err != nil {
		t.Fatalf("balances: %v", err)
	}
	if _, ok := all["ghost"]; ok {
		t.Fatal("read created a ledger row for unknown user")
	}
	if len(all) != 1 {
		t.Fatalf("balances len = %d, want 1", len(all))
	}
}

func TestBalancesReturnsCopy(t *testing.T) {
	t.Parallel()
	store := New()
	apply(t, store, "alice", 3)

	all, err := store.Balances(context.Background())
	if err != nil {
		t.Fatalf("balances: %v", err)
	}
	all["alice"] = 1000
	all["mallory"] = 1

	got, _ := store.Balance(context.Background(), "alice")
	if got != 3 {
		t.Fatalf("balance after caller mutation = %v, want 3", got)
	}
}

func TestApplyRejectsInvalidCommands(t *testing.T) {
	t.Parallel()
	store := New()

	tests := []struct {
		name string
		cmd  storage.Command
	}{
		{name: "empty user", cmd: storage.Command{TransactionID: "tx", Amount: 1}},
		{name: "blank user", cmd: storage.Command{TransactionID: "tx", UserID: "  ", Amount: 1}},
		{name: "empty transaction id", cmd: storage.Command{UserID: "alice", Amount: 1}},
		{name: "nan amount", cmd: storage.Command{TransactionID: "tx", UserID: "alice", Amount: math.NaN()}},
		{name: "infinite amount", cmd: storage.Command{TransactionID: "tx", UserID: "alice", Amount: math.Inf(-1)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Apply(context.Background(), tc.cmd)
			if !errors.Is(err, storage.ErrInvalidCommand) {
				t.Fatalf("err = %v, want ErrInvalidCommand", err)
			}
		})
	}

	all, _ := store.Balances(context.Background())
	if len(all) != 0 {
		t.Fatalf("balances = %v, want empty", all)
	}
}

func TestBalanceRejectsEmptyUser(t *testing.T) {
	t.Parallel()
	_, err := New().Balance(context.Background(), "")
	if !errors.Is(err, storage.ErrInvalidCommand) {
		t.Fatalf("err = %v, want ErrInvalidCommand", err)
	}
}

func TestApplyHonorsCanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Apply(ctx, storage.Command{TransactionID: "tx", UserID: "alice", Amount: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestApplyRejectsOverflowWithoutChangingBalance(t *testing.T) {
	t.Parallel()
	store := New()
	ctx := context.Background()

	if _, err := store.Apply(ctx, storage.Command{TransactionID: "tx-1", UserID: "big", Amount: math.MaxFloat64}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	_, err := store.Apply(ctx, storage.Command{TransactionID: "tx-2", UserID: "big", Amount: math.MaxFloat64})
	if !errors.Is(err, storage.ErrBalanceOverflow) {
		t.Fatalf("err = %v, want ErrBalanceOverflow", err)
	}
	if !errors.Is(err, storage.ErrInvalidCommand) {
		t.Fatalf("err = %v, want ErrInvalidCommand match", err)
	}

	got, _ := store.Balance(ctx, "big")
	if got != math.MaxFloat64 {
		t.Fatalf("balance = %v, want %v", got, math.MaxFloat64)
	}
	// Pulling back from the edge still works.
	got, err = store.Apply(ctx, storage.Command{TransactionID: "tx-3", UserID: "big", Amount: -math.MaxFloat64})
	if err != nil || got != 0 {
		t.Fatalf("apply = %v, %v, want 0, nil", got, err)
	}
	if _, err := store.Apply(ctx, storage.Command{TransactionID: "tx-4", UserID: "small", Amount: -math.MaxFloat64}); err != nil {
		t.Fatalf("apply small: %v", err)
	}
	if _, err := store.Apply(ctx, storage.Command{TransactionID: "tx-5", UserID: "small", Amount: -math.MaxFloat64}); !errors.Is(err, storage.ErrBalanceOverflow) {
		t.Fatalf("negative overflow err = %v, want ErrBalanceOverflow", err)
	}
}
