// Package state owns the application state: four independently persisted
// slots (expenses, user categories, budgets, settings), each exposed as a
// narrow get/set pair over a durable binding. The slots are deliberately
// uncoordinated; a multi-slot change is two writes with no rollback,
// matching the storage contract.
package state

import (
	"context"

	"hotzaot/internal/core"
	"hotzaot/internal/log"
	"hotzaot/internal/storage"
)

// Slot names in the durable store.
const (
	SlotExpenses       = "expenses"
	SlotUserCategories = "userCategories"
	SlotBudgets        = "budgets"
	SlotSettings       = "settings"
)

// AppState is the single state container injected into services and the
// HTTP layer. One instance per process; bindings cache in memory, so a
// second process over the same file would go stale (accepted single-writer
// assumption).
type AppState struct {
	expenses       *storage.Binding[[]core.Expense]
	userCategories *storage.Binding[[]core.UserCategory]
	budgets        *storage.Binding[core.UserBudgets]
	settings       *storage.Binding[core.Settings]
}

func New(ctx context.Context, store *storage.SlotStore, logger *log.Logger) *AppState {
	return &AppState{
		expenses:       storage.NewBinding(ctx, store, SlotExpenses, []core.Expense{}, logger),
		userCategories: storage.NewBinding(ctx, store, SlotUserCategories, []core.UserCategory{}, logger),
		budgets:        storage.NewBinding(ctx, store, SlotBudgets, core.UserBudgets{}, logger),
		settings:       storage.NewBinding(ctx, store, SlotSettings, core.DefaultSettings(), logger),
	}
}

// Expenses returns a copy of the expense collection; callers may not
// mutate stored state through the returned slice.
func (s *AppState) Expenses() []core.Expense {
	cached := s.expenses.Get()
	out := make([]core.Expense, len(cached))
	copy(out, cached)
	return out
}

func (s *AppState) SetExpenses(ctx context.Context, expenses []core.Expense) {
	s.expenses.Set(ctx, expenses)
}

func (s *AppState) UpdateExpenses(ctx context.Context, fn func([]core.Expense) []core.Expense) []core.Expense {
	return s.expenses.Update(ctx, fn)
}

func (s *AppState) UserCategories() []core.UserCategory {
	cached := s.userCategories.Get()
	out := make([]core.UserCategory, len(cached))
	copy(out, cached)
	return out
}

func (s *AppState) SetUserCategories(ctx context.Context, categories []core.UserCategory) {
	s.userCategories.Set(ctx, categories)
}

func (s *AppState) UpdateUserCategories(ctx context.Context, fn func([]core.UserCategory) []core.UserCategory) []core.UserCategory {
	return s.userCategories.Update(ctx, fn)
}

func (s *AppState) Budgets() core.UserBudgets {
	cached := s.budgets.Get()
	out := make(core.UserBudgets, len(cached))
	for k, v := range cached {
		out[k] = v
	}
	return out
}

func (s *AppState) SetBudgets(ctx context.Context, budgets core.UserBudgets) {
	s.budgets.Set(ctx, budgets)
}

func (s *AppState) UpdateBudgets(ctx context.Context, fn func(core.UserBudgets) core.UserBudgets) core.UserBudgets {
	return s.budgets.Update(ctx, fn)
}

func (s *AppState) Settings() core.Settings {
	return s.settings.Get()
}

func (s *AppState) SetSettings(ctx context.Context, settings core.Settings) {
	s.settings.Set(ctx, settings)
}

// Derived, read-only views combining categories, budgets and settings.
// Pure over current state: repeated calls with unchanged slots agree.

// AllCategories lists built-ins first, then user categories in insertion
// order.
func (s *AppState) AllCategories() []core.UserCategory {
	return core.AllCategories(s.userCategories.Get())
}

// BudgetFor resolves a category's monthly budget through the user budget
// slot with built-in fallback.
func (s *AppState) BudgetFor(name string) core.Money {
	return core.BudgetFor(name, s.budgets.Get())
}

// CategoryInfo resolves category display metadata, user categories first.
func (s *AppState) CategoryInfo(name string) (core.UserCategory, bool) {
	return core.CategoryInfo(name, s.userCategories.Get())
}

// FormatCurrency renders an amount under the currency symbol currently
// configured in settings.
func (s *AppState) FormatCurrency(m core.Money) string {
	return m.Format(s.settings.Get().Currency)
}
