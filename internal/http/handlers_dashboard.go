package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-analyze/charts"

	"hotzaot/internal/services"
)

// handleDashboard renders the dashboard partial for the requested period.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	period := parsePeriodParam(r.URL.Query())
	summary := s.dashboard.Summarize(period)

	type categoryRow struct {
		Name   string
		Emoji  string
		Amount string
		Width  int
	}
	type budgetRow struct {
		Name       string
		Emoji      string
		Spent      string
		Budget     string
		Percent    int
		OverBudget bool
	}
	data := struct {
		Period        services.Period
		Periods       []services.Period
		TotalSpent    string
		TotalBudget   string
		AveragePerDay string
		Count         int
		TopCategory   string
		Categories    []categoryRow
		Budgets       []budgetRow
		HasTrend      bool
	}{
		Period:        period,
		Periods:       services.Periods,
		TotalSpent:    s.state.FormatCurrency(summary.TotalSpent),
		TotalBudget:   s.state.FormatCurrency(summary.TotalBudget),
		AveragePerDay: s.state.FormatCurrency(summary.AveragePerDay),
		Count:         summary.Count,
		HasTrend:      len(summary.DailyTrend) > 0,
	}
	if summary.TopCategory != nil {
		data.TopCategory = summary.TopCategory.Emoji + " " + summary.TopCategory.Key
	}

	// Bar widths scale against the largest category.
	var maxCents int64
	for _, ca := range summary.ByCategory {
		if ca.Amount.Cents > maxCents {
			maxCents = ca.Amount.Cents
		}
	}
	for _, ca := range summary.ByCategory {
		width := 0
		if maxCents > 0 && ca.Amount.Cents > 0 {
			width = int((ca.Amount.Cents*100 + maxCents/2) / maxCents)
			if width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		emoji := ca.Emoji
		if emoji == "" {
			emoji = "💰"
		}
		data.Categories = append(data.Categories, categoryRow{
			Name:   ca.Key,
			Emoji:  emoji,
			Amount: s.state.FormatCurrency(ca.Amount),
			Width:  width,
		})
	}
	for _, bp := range summary.Budgets {
		percent := bp.Percent
		if percent > 100 {
			percent = 100
		}
		data.Budgets = append(data.Budgets, budgetRow{
			Name:       bp.Category.Name,
			Emoji:      bp.Category.Emoji,
			Spent:      s.state.FormatCurrency(bp.Spent),
			Budget:     s.state.FormatCurrency(bp.Budget),
			Percent:    percent,
			OverBudget: bp.OverBudget,
		})
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<div class="placeholder">סה"כ: ` + data.TotalSpent + `</div>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "dashboard.html", "period", string(period))
		_, _ = w.Write([]byte(`<div class="error">שגיאה בטעינת לוח הבקרה</div>`))
	}
}

// handleTrendChart renders the daily spending trend as a PNG line chart.
func (s *Server) handleTrendChart(w http.ResponseWriter, r *http.Request) {
	period := parsePeriodParam(r.URL.Query())
	summary := s.dashboard.Summarize(period)
	if len(summary.DailyTrend) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	values := make([]float64, 0, len(summary.DailyTrend))
	labels := make([]string, 0, len(summary.DailyTrend))
	for _, point := range summary.DailyTrend {
		values = append(values, float64(point.Amount.Cents)/100)
		// Day-of-month keeps the axis readable on narrow screens.
		labels = append(labels, point.Day[8:])
	}

	p, err := charts.LineRender(
		[][]float64{values},
		charts.TitleOptionFunc(charts.TitleOption{Text: "Daily spending"}),
		charts.XAxisLabelsOptionFunc(labels),
	)
	if err != nil {
		slog.ErrorContext(r.Context(), "Trend chart render error", "error", err, "period", string(period))
		http.Error(w, "chart render failed", http.StatusInternalServerError)
		return
	}
	buf, err := p.Bytes()
	if err != nil {
		slog.ErrorContext(r.Context(), "Trend chart encode error", "error", err)
		http.Error(w, "chart render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
	_, _ = w.Write(buf)
}

// handleCategoryChart renders the per-category breakdown as a PNG pie chart.
func (s *Server) handleCategoryChart(w http.ResponseWriter, r *http.Request) {
	period := parsePeriodParam(r.URL.Query())
	summary := s.dashboard.Summarize(period)
	if len(summary.ByCategory) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	values := make([]float64, 0, len(summary.ByCategory))
	names := make([]string, 0, len(summary.ByCategory))
	for _, ca := range summary.ByCategory {
		values = append(values, float64(ca.Amount.Cents)/100)
		names = append(names, ca.Key)
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{Text: "Spending by category"}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		slog.ErrorContext(r.Context(), "Category chart render error", "error", err, "period", string(period))
		http.Error(w, "chart render failed", http.StatusInternalServerError)
		return
	}
	buf, err := p.Bytes()
	if err != nil {
		slog.ErrorContext(r.Context(), "Category chart encode error", "error", err)
		http.Error(w, "chart render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
	_, _ = w.Write(buf)
}
