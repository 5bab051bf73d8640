package http

import (
	"errors"
	"log/slog"
	"net/http"

	"hotzaot/internal/core"
	"hotzaot/internal/services"
)

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	category := core.UserCategory{
		Name:  formValue(r.Form, "name"),
		Emoji: formValue(r.Form, "emoji"),
		Color: formValue(r.Form, "color"),
	}
	var budget core.Money
	if v := formValue(r.Form, "budget"); v != "" {
		cents, err := core.ParseDecimalToCents(v)
		if err != nil {
			UnprocessableEntityError("תקציב לא תקין").Write(w)
			return
		}
		budget = core.Money{Cents: cents}
	}

	if err := s.expenses.AddCategory(r.Context(), category, budget); err != nil {
		if errors.Is(err, services.ErrDuplicateCategory) {
			UnprocessableEntityError("קטגוריה בשם זה כבר קיימת").Write(w)
			return
		}
		UnprocessableEntityError("פרטי הקטגוריה אינם תקינים").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerCategoriesChanged().
		TriggerFormReset().
		TriggerSuccessNotification("הקטגוריה נוספה").
		Write(w)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodPost, http.MethodDelete); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	name := formValue(r.Form, "name")
	if err := s.expenses.DeleteCategory(r.Context(), name); err != nil {
		switch {
		case errors.Is(err, services.ErrBuiltinCategory):
			UnprocessableEntityError("לא ניתן למחוק קטגוריה מובנית").Write(w)
		case errors.Is(err, services.ErrCategoryNotFound):
			NotFoundError("הקטגוריה לא נמצאה").Write(w)
		default:
			slog.ErrorContext(r.Context(), "Category delete error", "error", err, "category", name)
			InternalServerError("מחיקה נכשלה").Write(w)
		}
		return
	}

	NewHTMXResponse().
		TriggerCategoriesChanged().
		TriggerSuccessNotification("הקטגוריה נמחקה").
		Write(w)
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	name := formValue(r.Form, "category")
	amountStr := formValue(r.Form, "amount")
	var amount core.Money
	if amountStr != "" && amountStr != "0" {
		cents, err := core.ParseDecimalToCents(amountStr)
		if err != nil {
			UnprocessableEntityError("סכום לא תקין").Write(w)
			return
		}
		amount = core.Money{Cents: cents}
	}

	if err := s.expenses.SetBudget(r.Context(), name, amount); err != nil {
		UnprocessableEntityError("עדכון התקציב נכשל").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerCategoriesChanged().
		TriggerSuccessNotification("התקציב עודכן").
		Write(w)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	settings := s.state.Settings()
	if v := formValue(r.Form, "monthlyBudget"); v != "" {
		cents, err := core.ParseDecimalToCents(v)
		if err != nil {
			UnprocessableEntityError("תקציב חודשי לא תקין").Write(w)
			return
		}
		settings.MonthlyBudget = core.Money{Cents: cents}
	}
	if v := formValue(r.Form, "currency"); v != "" {
		settings.Currency = v
	}
	if v := formValue(r.Form, "language"); v != "" {
		settings.Language = core.Language(v)
	}

	if err := s.expenses.UpdateSettings(r.Context(), settings); err != nil {
		UnprocessableEntityError("ההגדרות אינן תקינות").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerSettingsChanged().
		TriggerSuccessNotification("ההגדרות נשמרו").
		Write(w)
}

// handleCategoryList renders the category management partial: every
// category with its effective budget and whether it can be removed.
func (s *Server) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	type row struct {
		Name     string
		Emoji    string
		Color    string
		Budget   string
		IsCustom bool
	}
	data := struct {
		Rows   []row
		Emojis []string
		Colors []string
	}{
		Emojis: core.AvailableEmojis,
		Colors: core.AvailableColors,
	}
	for _, c := range s.state.AllCategories() {
		data.Rows = append(data.Rows, row{
			Name:     c.Name,
			Emoji:    c.Emoji,
			Color:    c.Color,
			Budget:   s.state.FormatCurrency(s.state.BudgetFor(c.Name)),
			IsCustom: c.IsCustom,
		})
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<div class="placeholder">רשימת קטגוריות אינה זמינה</div>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "categories.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "categories.html")
		_, _ = w.Write([]byte(`<div class="error">שגיאה בטעינת הקטגוריות</div>`))
	}
}
