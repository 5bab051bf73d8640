package core

import (
	"errors"
	"strings"
	"time"
)

const (
	LangHebrew  Language = "he"
	LangEnglish Language = "en"
)

type (
	Language string

	// Expense is a single recorded spend event. Expenses are immutable once
	// created; the only lifecycle operations are creation and deletion by ID.
	Expense struct {
		ID          string `json:"id"`
		Amount      Money  `json:"amount"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Date        string `json:"date"`      // ISO-8601, when the money was spent
		CreatedAt   string `json:"createdAt"` // ISO-8601, assigned at creation
	}

	// Category is a named, emoji/color-tagged grouping for expenses.
	// The name doubles as the join key against expenses and budgets.
	Category struct {
		Name   string `json:"name"`
		Emoji  string `json:"emoji"`
		Color  string `json:"color"`
		Budget Money  `json:"budget,omitempty"`
	}

	// UserCategory is a category as stored in the user's own category slot.
	// Built-in categories are projected into this shape with IsCustom=false.
	UserCategory struct {
		Name     string `json:"name"`
		Emoji    string `json:"emoji"`
		Color    string `json:"color"`
		IsCustom bool   `json:"isCustom"`
	}

	// UserBudgets maps a category name to its monthly budget ceiling.
	UserBudgets map[string]Money

	// Settings is the single account-wide preferences record.
	Settings struct {
		MonthlyBudget Money    `json:"monthlyBudget"`
		Currency      string   `json:"currency"`
		Language      Language `json:"language"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidDate      = errors.New("invalid date")
	ErrFutureDate       = errors.New("date is in the future")
)

// DefaultSettings returns the settings record used before the user has
// ever saved one.
func DefaultSettings() Settings {
	return Settings{
		MonthlyBudget: Money{Cents: 500000},
		Currency:      "₪",
		Language:      LangHebrew,
	}
}

// expense date layouts tried in order: full timestamp first, then a bare
// calendar date which is read as local midnight.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseExpenseDate parses an expense date string. A value that fails to
// parse as a full ISO timestamp is retried as a bare date at local
// midnight; if every layout fails the date is unusable and the caller is
// expected to exclude the expense (fail-closed).
func ParseExpenseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range dateLayouts[1:] {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// DayOf strips the time-of-day component, keeping the calendar day in the
// timestamp's own location. Period filtering compares days, not instants.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Validate checks the structural invariants of an expense record. The
// not-in-the-future rule needs a clock and is enforced at the entry point
// (see the expense service); stored records are not re-validated on read.
func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if _, err := ParseExpenseDate(e.Date); err != nil {
		return err
	}
	return nil
}

// Validate checks a settings record before it replaces the stored one.
func (s Settings) Validate() error {
	if s.MonthlyBudget.Cents < 0 {
		return ErrInvalidAmount
	}
	switch s.Language {
	case LangHebrew, LangEnglish:
	default:
		return errors.New("unsupported language: " + string(s.Language))
	}
	if strings.TrimSpace(s.Currency) == "" {
		return errors.New("empty currency symbol")
	}
	return nil
}

// Validate checks a user-defined category before it is appended to the
// category slot. Name uniqueness against existing categories is the
// caller's concern, matching where the original enforced it.
func (c UserCategory) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("empty category name")
	}
	if c.Emoji == "" {
		return errors.New("empty category emoji")
	}
	if !strings.HasPrefix(c.Color, "#") || len(c.Color) != 7 {
		return errors.New("color must be a #rrggbb hex value")
	}
	return nil
}
