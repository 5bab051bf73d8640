package services

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"hotzaot/internal/core"
)

// Sort keys for the expense list.
const (
	SortByDate     = "date"
	SortByAmount   = "amount"
	SortByCategory = "category"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ExpenseFilter is the list view's query: free-text search, an exact
// category filter, and a sort key with direction. Zero value means
// "everything, newest first".
type ExpenseFilter struct {
	Search   string
	Category string
	SortBy   string
	Order    string
}

// ParseExpenseFilter normalizes raw query values, falling back to
// date-descending for unknown sort keys or directions.
func ParseExpenseFilter(search, category, sortBy, order string) ExpenseFilter {
	switch sortBy {
	case SortByDate, SortByAmount, SortByCategory:
	default:
		sortBy = SortByDate
	}
	switch order {
	case OrderAsc, OrderDesc:
	default:
		order = OrderDesc
	}
	return ExpenseFilter{
		Search:   strings.TrimSpace(search),
		Category: category,
		SortBy:   sortBy,
		Order:    order,
	}
}

// Apply filters then sorts a copy of the input. Search matches the
// description or the category as a case-insensitive substring; the two
// filters compose with AND. Sorting is stable, so equal keys keep their
// filtered order.
func (f ExpenseFilter) Apply(expenses []core.Expense) []core.Expense {
	out := make([]core.Expense, 0, len(expenses))
	search := strings.ToLower(f.Search)
	for _, e := range expenses {
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Description), search) &&
			!strings.Contains(strings.ToLower(e.Category), search) {
			continue
		}
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		out = append(out, e)
	}

	// Collator is stateful, so build one per call rather than sharing.
	var coll *collate.Collator
	if f.SortBy == SortByCategory {
		coll = collate.New(language.Hebrew)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if f.Order == OrderDesc {
			a, b = b, a
		}
		switch f.SortBy {
		case SortByAmount:
			return a.Amount.Cents < b.Amount.Cents
		case SortByCategory:
			return coll.CompareString(a.Category, b.Category) < 0
		default:
			// Both layouts in use sort correctly as strings: RFC 3339
			// timestamps and bare 2006-01-02 days.
			return a.Date < b.Date
		}
	})
	return out
}
