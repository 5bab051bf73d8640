package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"

	"hotzaot/internal/core"
	"hotzaot/internal/services"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	settings := s.state.Settings()
	data := struct {
		Settings      core.Settings
		MonthlyBudget string
		Categories    []core.UserCategory
		Emojis        []string
		Colors        []string
		Periods       []services.Period
	}{
		Settings:      settings,
		MonthlyBudget: s.state.FormatCurrency(settings.MonthlyBudget),
		Categories:    s.state.AllCategories(),
		Emojis:        core.AvailableEmojis,
		Colors:        core.AvailableColors,
		Periods:       services.Periods,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleMetrics exposes a small JSON snapshot of the security counters.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int64{
		"rate_limit_hits":     atomic.LoadInt64(&s.metrics.rateLimitHits),
		"suspicious_requests": atomic.LoadInt64(&s.metrics.suspiciousRequests),
	})
}
