// Package services holds the application logic between the state container
// and the HTTP surface: expense lifecycle, list querying and dashboard
// aggregation.
package services

import (
	"math"
	"sort"
	"time"

	"hotzaot/internal/cache"
	"hotzaot/internal/core"
	"hotzaot/internal/log"
	"hotzaot/internal/state"
)

// Summary is everything the dashboard renders for one period.
type Summary struct {
	Period Period
	Start  time.Time
	End    time.Time

	// Count of expenses inside the period; AllCount is the unfiltered
	// collection size (malformed-date expenses count here but never match
	// a period).
	Count    int
	AllCount int

	TotalSpent    core.Money
	TotalBudget   core.Money
	AveragePerDay core.Money
	ByCategory    []core.CategoryAmount
	TopCategory   *core.CategoryAmount
	DailyTrend    []core.DayAmount
	Budgets       []BudgetProgress
}

// BudgetProgress is one row of the per-category budget utilization card.
type BudgetProgress struct {
	Category   core.UserCategory
	Spent      core.Money
	Budget     core.Money
	Percent    int
	OverBudget bool
}

// DashboardService computes period-bounded derived views over the expense
// collection. Summaries are cached per period and invalidated whole on any
// expense mutation.
type DashboardService struct {
	state  *state.AppState
	cache  *cache.LRUCache[Summary]
	now    func() time.Time
	logger *log.Logger
}

func NewDashboardService(st *state.AppState, summaries *cache.LRUCache[Summary], logger *log.Logger) *DashboardService {
	return &DashboardService{
		state:  st,
		cache:  summaries,
		now:    time.Now,
		logger: logger.WithComponent(log.ComponentDashboard),
	}
}

// Invalidate drops every cached summary. Called after any expense,
// category, budget or settings mutation.
func (s *DashboardService) Invalidate() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

// Summarize returns the dashboard summary for the period, from cache when
// fresh.
func (s *DashboardService) Summarize(p Period) Summary {
	if s.cache != nil {
		if cached, ok := s.cache.Get(string(p)); ok {
			s.logger.Debug("Summary cache hit", log.FieldPeriod, string(p))
			return cached
		}
	}

	summary := s.compute(p)
	if s.cache != nil {
		s.cache.Set(string(p), summary)
	}
	return summary
}

func (s *DashboardService) compute(p Period) Summary {
	now := s.now()
	all := s.state.Expenses()
	filtered := FilterByPeriod(all, p, now)
	start, end := p.Range(now)

	summary := Summary{
		Period:   p,
		Start:    start,
		End:      end,
		Count:    len(filtered),
		AllCount: len(all),
	}

	for _, e := range filtered {
		summary.TotalSpent.Cents += e.Amount.Cents
	}

	summary.ByCategory = s.categoryTotals(filtered)
	if len(summary.ByCategory) > 0 {
		top := summary.ByCategory[0]
		summary.TopCategory = &top
	}

	if len(filtered) > 0 {
		days := p.dayCount(now)
		summary.AveragePerDay = core.Money{
			Cents: int64(math.Round(float64(summary.TotalSpent.Cents) / float64(days))),
		}
	}

	summary.DailyTrend = dailyTrend(filtered, now)

	allCategories := s.state.AllCategories()
	for _, c := range allCategories {
		budget := s.state.BudgetFor(c.Name)
		summary.TotalBudget.Cents += budget.Cents

		var spent core.Money
		for _, ca := range summary.ByCategory {
			if ca.Key == c.Name {
				spent = ca.Amount
				break
			}
		}
		percent := 0
		if budget.Cents > 0 {
			percent = int(math.Round(float64(spent.Cents) / float64(budget.Cents) * 100))
		}
		summary.Budgets = append(summary.Budgets, BudgetProgress{
			Category:   c,
			Spent:      spent,
			Budget:     budget,
			Percent:    percent,
			OverBudget: percent > 100,
		})
	}

	return summary
}

// categoryTotals groups the filtered subset by the raw category value,
// first-seen order, then sorts descending by amount. Ties keep grouping
// order; that order is not a documented contract.
func (s *DashboardService) categoryTotals(filtered []core.Expense) []core.CategoryAmount {
	totals := make(map[string]int64)
	var order []string
	for _, e := range filtered {
		if _, seen := totals[e.Category]; !seen {
			order = append(order, e.Category)
		}
		totals[e.Category] += e.Amount.Cents
	}

	out := make([]core.CategoryAmount, 0, len(order))
	for _, key := range order {
		ca := core.CategoryAmount{Key: key, Amount: core.Money{Cents: totals[key]}}
		if info, ok := s.state.CategoryInfo(key); ok {
			ca.Name = info.Name
			ca.Emoji = info.Emoji
			ca.Color = info.Color
		}
		out = append(out, ca)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	return out
}

// FilterByPeriod returns the expenses whose date falls inside the period,
// comparing calendar days in now's location. An expense whose date parses
// under no layout never matches (fail-closed). Only lastMonth enforces an
// upper bound; the open-ended periods admit future-dated entries.
func FilterByPeriod(expenses []core.Expense, p Period, now time.Time) []core.Expense {
	start, end := p.Range(now)
	startDay := core.DayOf(start)
	endDay := core.DayOf(end)

	var out []core.Expense
	for _, e := range expenses {
		t, err := core.ParseExpenseDate(e.Date)
		if err != nil {
			continue
		}
		day := core.DayOf(t.In(now.Location()))
		if day.Before(startDay) {
			continue
		}
		if p == PeriodLastMonth && day.After(endDay) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// dailyTrend builds the chart series: the last seven calendar days when
// any of them has spend, otherwise every distinct day with expenses in
// ascending order, so an old dataset still draws something informative.
func dailyTrend(filtered []core.Expense, now time.Time) []core.DayAmount {
	if len(filtered) == 0 {
		return nil
	}

	byDay := make(map[string]int64)
	for _, e := range filtered {
		t, err := core.ParseExpenseDate(e.Date)
		if err != nil {
			continue
		}
		day := core.DayOf(t.In(now.Location())).Format("2006-01-02")
		byDay[day] += e.Amount.Cents
	}

	today := core.DayOf(now)
	week := make([]core.DayAmount, 0, 7)
	hasRecent := false
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format("2006-01-02")
		amount := byDay[day]
		if amount > 0 {
			hasRecent = true
		}
		week = append(week, core.DayAmount{Day: day, Amount: core.Money{Cents: amount}})
	}
	if hasRecent {
		return week
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	out := make([]core.DayAmount, 0, len(days))
	for _, day := range days {
		out = append(out, core.DayAmount{Day: day, Amount: core.Money{Cents: byDay[day]}})
	}
	return out
}
