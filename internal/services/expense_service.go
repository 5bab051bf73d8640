package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hotzaot/internal/core"
	"hotzaot/internal/log"
	"hotzaot/internal/state"
)

var (
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrBuiltinCategory   = errors.New("built-in categories cannot be removed")
)

// ExpenseService owns the write side: expense lifecycle plus category,
// budget and settings management. Every successful mutation invalidates
// the dashboard cache.
type ExpenseService struct {
	state     *state.AppState
	dashboard *DashboardService
	now       func() time.Time
	newID     func() string
	logger    *log.Logger
}

func NewExpenseService(st *state.AppState, dashboard *DashboardService, logger *log.Logger) *ExpenseService {
	return &ExpenseService{
		state:     st,
		dashboard: dashboard,
		now:       time.Now,
		newID:     uuid.NewString,
		logger:    logger.WithComponent(log.ComponentExpense),
	}
}

// AddExpenseInput carries the user-entered fields; identity and creation
// time are assigned here.
type AddExpenseInput struct {
	Amount      core.Money
	Category    string
	Description string
	Date        string
}

// AddExpense validates the input, assigns a random ID and creation
// timestamp, and appends to the collection. The expense date may not lie
// after today (calendar-day comparison, today itself is fine).
func (s *ExpenseService) AddExpense(ctx context.Context, input AddExpenseInput) (core.Expense, error) {
	now := s.now()
	expense := core.Expense{
		ID:          s.newID(),
		Amount:      input.Amount,
		Category:    input.Category,
		Description: input.Description,
		Date:        input.Date,
		CreatedAt:   now.Format(time.RFC3339),
	}
	if err := expense.Validate(); err != nil {
		return core.Expense{}, err
	}

	date, err := core.ParseExpenseDate(input.Date)
	if err != nil {
		return core.Expense{}, core.ErrInvalidDate
	}
	if core.DayOf(date.In(now.Location())).After(core.DayOf(now)) {
		return core.Expense{}, core.ErrFutureDate
	}

	s.state.UpdateExpenses(ctx, func(expenses []core.Expense) []core.Expense {
		return append(expenses, expense)
	})
	s.dashboard.Invalidate()

	s.logger.Info("Expense added",
		log.FieldExpenseID, expense.ID,
		log.FieldCategory, expense.Category,
		log.FieldAmount, expense.Amount.Cents,
	)
	return expense, nil
}

// DeleteExpense removes the expense with the given ID.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) error {
	found := false
	s.state.UpdateExpenses(ctx, func(expenses []core.Expense) []core.Expense {
		out := expenses[:0]
		for _, e := range expenses {
			if e.ID == id {
				found = true
				continue
			}
			out = append(out, e)
		}
		return out
	})
	if !found {
		return fmt.Errorf("%w: %s", ErrExpenseNotFound, id)
	}
	s.dashboard.Invalidate()

	s.logger.Info("Expense deleted", log.FieldExpenseID, id)
	return nil
}

// AddCategory appends a custom category. Names must be unique across
// built-ins and existing custom categories. A positive budget also seeds
// the budget slot for the new name.
func (s *ExpenseService) AddCategory(ctx context.Context, category core.UserCategory, budget core.Money) error {
	category.IsCustom = true
	if err := category.Validate(); err != nil {
		return err
	}
	for _, existing := range s.state.AllCategories() {
		if existing.Name == category.Name {
			return fmt.Errorf("%w: %s", ErrDuplicateCategory, category.Name)
		}
	}

	s.state.UpdateUserCategories(ctx, func(categories []core.UserCategory) []core.UserCategory {
		return append(categories, category)
	})
	if budget.Cents > 0 {
		s.state.UpdateBudgets(ctx, func(budgets core.UserBudgets) core.UserBudgets {
			budgets[category.Name] = budget
			return budgets
		})
	}
	s.dashboard.Invalidate()

	s.logger.Info("Category added", log.FieldCategory, category.Name)
	return nil
}

// DeleteCategory removes a custom category and its budget entry. The two
// slot writes are independent; a persist failure on the second leaves the
// budget orphaned, which the budget resolver tolerates.
func (s *ExpenseService) DeleteCategory(ctx context.Context, name string) error {
	for _, builtin := range core.BuiltinCategories {
		if builtin.Name == name {
			return fmt.Errorf("%w: %s", ErrBuiltinCategory, name)
		}
	}

	found := false
	s.state.UpdateUserCategories(ctx, func(categories []core.UserCategory) []core.UserCategory {
		out := categories[:0]
		for _, c := range categories {
			if c.Name == name {
				found = true
				continue
			}
			out = append(out, c)
		}
		return out
	})
	if !found {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
	}

	s.state.UpdateBudgets(ctx, func(budgets core.UserBudgets) core.UserBudgets {
		delete(budgets, name)
		return budgets
	})
	s.dashboard.Invalidate()

	s.logger.Info("Category deleted", log.FieldCategory, name)
	return nil
}

// SetBudget overrides the monthly budget for a category name. The name is
// not required to resolve to a known category; stale entries are inert.
func (s *ExpenseService) SetBudget(ctx context.Context, name string, amount core.Money) error {
	if name == "" {
		return core.ErrEmptyCategory
	}
	if amount.Cents < 0 {
		return core.ErrInvalidAmount
	}

	s.state.UpdateBudgets(ctx, func(budgets core.UserBudgets) core.UserBudgets {
		if amount.Cents == 0 {
			delete(budgets, name)
		} else {
			budgets[name] = amount
		}
		return budgets
	})
	s.dashboard.Invalidate()

	s.logger.Info("Budget set", log.FieldCategory, name, log.FieldAmount, amount.Cents)
	return nil
}

// UpdateSettings replaces the settings slot.
func (s *ExpenseService) UpdateSettings(ctx context.Context, settings core.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.state.SetSettings(ctx, settings)
	s.dashboard.Invalidate()

	s.logger.Info("Settings updated", log.FieldCurrency, settings.Currency)
	return nil
}
