package history

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
)

func entry(i int) Entry {
	in := mortgage.Input{
		Amount:       fmt.Sprintf("%d", 100000+i),
		Term:         "25",
		InterestRate: "5",
		Type:         mortgage.Repayment,
	}
	return Entry{
		Input:        in,
		Result:       mortgage.Calculate(in),
		CalculatedAt: time.Date(2026, 10, 14, 12, 0, i, 0, time.UTC),
	}
}

// exerciseStore checks the behaviour shared by every Store implementation.
// The store must have been created with a limit of 3.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	entries, err := store.List(ctx, "fresh")
	if err != nil {
		t.Fatalf("List() on unknown session error = %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(entries))
	}

	for i := 0; i < 5; i++ {
		if err := store.Append(ctx, "a", entry(i)); err != nil {
			t.Fatalf("Append(%d) error = %v", i, err)
		}
	}
	if err := store.Append(ctx, "b", entry(9)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	entries, err = store.List(ctx, "a")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected history capped at 3, got %d", len(entries))
	}
	for i, got := range entries {
		want := entry(i + 2)
		if got.Input != want.Input || got.Result != want.Result || !got.CalculatedAt.Equal(want.CalculatedAt) {
			t.Errorf("entry %d = %+v, expected %+v", i, got, want)
		}
	}

	if err := store.Clear(ctx, "a"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	entries, err = store.List(ctx, "a")
	if err != nil {
		t.Fatalf("List() after clear error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty history after clear, got %d", len(entries))
	}

	entries, err = store.List(ctx, "b")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("clearing one session affected another: %d entries", len(entries))
	}

	if err := store.Append(ctx, " ", entry(0)); !errors.Is(err, ErrEmptySession) {
		t.Errorf("Append() with blank session error = %v, expected ErrEmptySession", err)
	}
	if _, err := store.List(ctx, ""); !errors.Is(err, ErrEmptySession) {
		t.Errorf("List() with blank session error = %v, expected ErrEmptySession", err)
	}
	if err := store.Clear(ctx, ""); !errors.Is(err, ErrEmptySession) {
		t.Errorf("Clear() with blank session error = %v, expected ErrEmptySession", err)
	}
}
