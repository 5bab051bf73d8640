package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hotzaot/internal/cache"
	"hotzaot/internal/core"
	"hotzaot/internal/log"
	"hotzaot/internal/services"
	"hotzaot/internal/state"
	"hotzaot/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *state.AppState) {
	t.Helper()
	logger := log.New(log.Config{Level: slog.LevelError})
	store, err := storage.NewSlotStore(filepath.Join(t.TempDir(), "http.db"), logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	st := state.New(context.Background(), store, logger)
	summaries := cache.NewLRUCache[services.Summary](16, time.Minute)
	dashboard := services.NewDashboardService(st, summaries, logger)
	expenses := services.NewExpenseService(st, dashboard, logger)

	srv := NewServer("127.0.0.1:0", st, dashboard, expenses)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv, st
}

func postForm(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestIndexAndHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	if rec := get(t, srv, "/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}
	if rec := get(t, srv, "/readyz"); rec.Code != http.StatusOK {
		t.Fatalf("readyz status = %d", rec.Code)
	}

	rec := get(t, srv, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("index status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "אוכל") {
		t.Fatal("index should render built-in categories")
	}
	if rec := get(t, srv, "/no-such-page"); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown path status = %d", rec.Code)
	}
}

func TestCreateExpenseValidationAndSuccess(t *testing.T) {
	srv, st := newTestServer(t)
	today := time.Now().Format("2006-01-02")

	// Bad amount.
	rec := postForm(t, srv, "/expenses", url.Values{
		"amount": {"abc"}, "description": {"x"}, "category": {"אוכל"}, "date": {today},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad amount status = %d", rec.Code)
	}

	// Missing description.
	rec = postForm(t, srv, "/expenses", url.Values{
		"amount": {"10"}, "description": {"  "}, "category": {"אוכל"}, "date": {today},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("blank description status = %d", rec.Code)
	}

	// Valid expense.
	rec = postForm(t, srv, "/expenses", url.Values{
		"amount": {"45.50"}, "description": {"קפה"}, "category": {"אוכל"}, "date": {today},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if trigger := rec.Header().Get("HX-Trigger"); !strings.Contains(trigger, "expense:changed") {
		t.Fatalf("missing expense:changed trigger: %q", trigger)
	}

	stored := st.Expenses()
	if len(stored) != 1 || stored[0].Amount.Cents != 4550 {
		t.Fatalf("stored expenses: %+v", stored)
	}

	// GET is not allowed on the mutation route.
	if rec := get(t, srv, "/expenses"); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET /expenses status = %d", rec.Code)
	}
}

func TestDeleteExpenseRoute(t *testing.T) {
	srv, st := newTestServer(t)
	today := time.Now().Format("2006-01-02")

	postForm(t, srv, "/expenses", url.Values{
		"amount": {"10"}, "description": {"x"}, "category": {"אוכל"}, "date": {today},
	})
	id := st.Expenses()[0].ID

	if rec := postForm(t, srv, "/expenses/delete", url.Values{"id": {"missing"}}); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id status = %d", rec.Code)
	}
	if rec := postForm(t, srv, "/expenses/delete", url.Values{"id": {id}}); rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if len(st.Expenses()) != 0 {
		t.Fatal("expense still present after delete")
	}
}

func TestExpenseListPartial(t *testing.T) {
	srv, _ := newTestServer(t)
	today := time.Now().Format("2006-01-02")

	postForm(t, srv, "/expenses", url.Values{
		"amount": {"10"}, "description": {"Lunch"}, "category": {"אוכל"}, "date": {today},
	})
	postForm(t, srv, "/expenses", url.Values{
		"amount": {"20"}, "description": {"דלק"}, "category": {"תחבורה"}, "date": {today},
	})

	rec := get(t, srv, "/ui/expenses?search=lunch")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Lunch") || strings.Contains(body, "דלק") {
		t.Fatalf("search filter not applied: %s", body)
	}
}

func TestDashboardPartial(t *testing.T) {
	srv, _ := newTestServer(t)
	today := time.Now().Format("2006-01-02")

	postForm(t, srv, "/expenses", url.Values{
		"amount": {"100"}, "description": {"סופר"}, "category": {"אוכל"}, "date": {today},
	})

	rec := get(t, srv, "/ui/dashboard?period=thisMonth")
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "₪100") {
		t.Fatalf("dashboard missing total: %s", rec.Body.String())
	}
}

func TestCategoryRoutes(t *testing.T) {
	srv, st := newTestServer(t)

	rec := postForm(t, srv, "/categories", url.Values{
		"name": {"חיות"}, "emoji": {"🐕"}, "color": {"#14b8a6"}, "budget": {"300"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create category status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := st.BudgetFor("חיות"); got.Cents != 30000 {
		t.Fatalf("seeded budget = %d", got.Cents)
	}

	// Duplicate rejected.
	rec = postForm(t, srv, "/categories", url.Values{
		"name": {"חיות"}, "emoji": {"🐕"}, "color": {"#14b8a6"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("duplicate category status = %d", rec.Code)
	}

	// Built-in cannot be deleted, custom can.
	if rec := postForm(t, srv, "/categories/delete", url.Values{"name": {"אוכל"}}); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("delete builtin status = %d", rec.Code)
	}
	if rec := postForm(t, srv, "/categories/delete", url.Values{"name": {"חיות"}}); rec.Code != http.StatusOK {
		t.Fatalf("delete custom status = %d", rec.Code)
	}
	if len(st.UserCategories()) != 0 {
		t.Fatal("custom category still present")
	}
}

func TestBudgetAndSettingsRoutes(t *testing.T) {
	srv, st := newTestServer(t)

	rec := postForm(t, srv, "/budgets", url.Values{"category": {"אוכל"}, "amount": {"2000"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("set budget status = %d", rec.Code)
	}
	if got := st.BudgetFor("אוכל"); got.Cents != 200000 {
		t.Fatalf("budget after override = %d", got.Cents)
	}

	rec = postForm(t, srv, "/settings", url.Values{"currency": {"$"}, "language": {"en"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("settings status = %d", rec.Code)
	}
	settings := st.Settings()
	if settings.Currency != "$" || settings.Language != core.LangEnglish {
		t.Fatalf("settings after update: %+v", settings)
	}

	// Invalid language rejected, previous settings retained.
	rec = postForm(t, srv, "/settings", url.Values{"language": {"fr"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad language status = %d", rec.Code)
	}
	if st.Settings().Language != core.LangEnglish {
		t.Fatal("failed update must not change settings")
	}
}

func TestChartRoutes(t *testing.T) {
	srv, _ := newTestServer(t)
	today := time.Now().Format("2006-01-02")

	// No data yet.
	if rec := get(t, srv, "/chart/trend.png"); rec.Code != http.StatusNoContent {
		t.Fatalf("empty trend status = %d", rec.Code)
	}

	postForm(t, srv, "/expenses", url.Values{
		"amount": {"50"}, "description": {"x"}, "category": {"אוכל"}, "date": {today},
	})

	rec := get(t, srv, "/chart/trend.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("trend chart status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("trend chart content type = %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("empty chart body")
	}

	if rec := get(t, srv, "/chart/categories.png"); rec.Code != http.StatusOK {
		t.Fatalf("category chart status = %d", rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(t, srv, "/")

	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("missing X-Content-Type-Options")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatal("missing X-Frame-Options")
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Fatal("missing Content-Security-Policy")
	}
}
