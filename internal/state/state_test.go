package state

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"hotzaot/internal/core"
	"hotzaot/internal/log"
	"hotzaot/internal/storage"
)

func newTestState(t *testing.T) (*AppState, *storage.SlotStore) {
	t.Helper()
	logger := log.New(log.Config{Level: slog.LevelError})
	store, err := storage.NewSlotStore(filepath.Join(t.TempDir(), "state.db"), logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(context.Background(), store, logger), store
}

func TestDefaults(t *testing.T) {
	s, _ := newTestState(t)

	if got := s.Expenses(); len(got) != 0 {
		t.Fatalf("expected empty expenses, got %d", len(got))
	}
	if got := s.UserCategories(); len(got) != 0 {
		t.Fatalf("expected empty user categories, got %d", len(got))
	}
	if got := s.Budgets(); len(got) != 0 {
		t.Fatalf("expected empty budgets, got %d", len(got))
	}

	settings := s.Settings()
	if settings.MonthlyBudget.Cents != 500000 || settings.Currency != "₪" || settings.Language != core.LangHebrew {
		t.Fatalf("unexpected default settings: %+v", settings)
	}
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	logger := log.New(log.Config{Level: slog.LevelError})
	dbPath := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	store, err := storage.NewSlotStore(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	s := New(ctx, store, logger)
	s.SetExpenses(ctx, []core.Expense{{
		ID:          "e1",
		Amount:      core.Money{Cents: 10000},
		Category:    "אוכל",
		Description: "קניות שבת",
		Date:        "2024-01-15",
		CreatedAt:   "2024-01-15T12:00:00Z",
	}})
	s.SetBudgets(ctx, core.UserBudgets{"אוכל": core.Money{Cents: 200000}})
	store.Close()

	store, err = storage.NewSlotStore(dbPath, logger)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer store.Close()
	reopened := New(ctx, store, logger)

	expenses := reopened.Expenses()
	if len(expenses) != 1 || expenses[0].ID != "e1" || expenses[0].Amount.Cents != 10000 {
		t.Fatalf("expenses did not survive reopen: %+v", expenses)
	}
	if got := reopened.BudgetFor("אוכל"); got.Cents != 200000 {
		t.Fatalf("budget did not survive reopen: %d", got.Cents)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	s, _ := newTestState(t)
	ctx := context.Background()

	s.SetExpenses(ctx, []core.Expense{{ID: "e1", Amount: core.Money{Cents: 100}, Category: "אחר", Description: "x", Date: "2024-01-01"}})
	got := s.Expenses()
	got[0].Description = "mutated"

	if s.Expenses()[0].Description != "x" {
		t.Fatal("caller mutation leaked into stored state")
	}

	s.SetBudgets(ctx, core.UserBudgets{"אחר": core.Money{Cents: 100}})
	b := s.Budgets()
	b["אחר"] = core.Money{Cents: 999}
	if s.Budgets()["אחר"].Cents != 100 {
		t.Fatal("budget map mutation leaked into stored state")
	}
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	s, _ := newTestState(t)
	ctx := context.Background()

	// Update callbacks mutate their argument in place while readers
	// iterate; run under -race to catch any sharing between the two.
	const rounds = 100
	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			s.UpdateBudgets(ctx, func(b core.UserBudgets) core.UserBudgets {
				b["אוכל"] = core.Money{Cents: int64(i)}
				return b
			})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_ = s.BudgetFor("אוכל")
			_ = s.Budgets()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			s.UpdateExpenses(ctx, func(expenses []core.Expense) []core.Expense {
				out := expenses[:0]
				for _, e := range expenses {
					if e.ID != "tmp" {
						out = append(out, e)
					}
				}
				return append(out, core.Expense{ID: "tmp", Amount: core.Money{Cents: 100}, Category: "אחר", Description: "x", Date: "2024-01-01"})
			})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			for _, e := range s.Expenses() {
				_ = e.Amount.Cents
			}
		}
	}()
	wg.Wait()

	if got := s.BudgetFor("אוכל"); got.Cents != rounds-1 {
		t.Fatalf("final budget = %d, want %d", got.Cents, rounds-1)
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	s, store := newTestState(t)
	ctx := context.Background()

	s.SetUserCategories(ctx, []core.UserCategory{{Name: "חיות", Emoji: "🐕", Color: "#14b8a6", IsCustom: true}})

	// Only the category slot was written.
	if _, ok, _ := store.Read(ctx, SlotUserCategories); !ok {
		t.Fatal("userCategories slot should exist")
	}
	if _, ok, _ := store.Read(ctx, SlotBudgets); ok {
		t.Fatal("budgets slot should not have been written")
	}
}

func TestFormatCurrencyFollowsSettings(t *testing.T) {
	s, _ := newTestState(t)
	ctx := context.Background()

	if got := s.FormatCurrency(core.Money{Cents: 123400}); got != "₪1,234" {
		t.Fatalf("expected shekel formatting, got %q", got)
	}

	settings := s.Settings()
	settings.Currency = "$"
	s.SetSettings(ctx, settings)
	if got := s.FormatCurrency(core.Money{Cents: 123400}); got != "$1,234" {
		t.Fatalf("expected dollar formatting, got %q", got)
	}
}
