package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"hotzaot/internal/core"
	"hotzaot/internal/services"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	amountStr := formValue(r.Form, "amount")
	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		UnprocessableEntityError("סכום לא תקין").Write(w)
		return
	}

	input := services.AddExpenseInput{
		Amount:      core.Money{Cents: cents},
		Category:    formValue(r.Form, "category"),
		Description: formValue(r.Form, "description"),
		Date:        formValue(r.Form, "date"),
	}
	expense, err := s.expenses.AddExpense(r.Context(), input)
	if err != nil {
		UnprocessableEntityError(expenseErrorMessage(err)).Write(w)
		return
	}

	NewHTMXResponse().
		TriggerExpenseChanged().
		TriggerFormReset().
		TriggerSuccessNotification("ההוצאה נשמרה").
		BodyHTML(`<div class="success">` + template.HTMLEscapeString(expense.Description) +
			` — ` + template.HTMLEscapeString(s.state.FormatCurrency(expense.Amount)) + `</div>`).
		Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodPost, http.MethodDelete); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	id := formValue(r.Form, "id")
	if id == "" {
		BadRequestError("מזהה הוצאה חסר").Write(w)
		return
	}
	if err := s.expenses.DeleteExpense(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrExpenseNotFound) {
			NotFoundError("ההוצאה לא נמצאה").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Expense delete error", "error", err, "expense_id", id)
		InternalServerError("מחיקה נכשלה").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerExpenseChanged().
		TriggerSuccessNotification("ההוצאה נמחקה").
		Write(w)
}

// handleExpenseList renders the filtered, sorted expense list partial.
func (s *Server) handleExpenseList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	filter := parseFilterParams(r.URL.Query())
	expenses := filter.Apply(s.state.Expenses())

	type row struct {
		ID          string
		Description string
		Amount      string
		Date        string
		Category    string
		Emoji       string
		Color       string
	}
	data := struct {
		Filter     services.ExpenseFilter
		Categories []core.UserCategory
		Rows       []row
		Total      int
	}{
		Filter:     filter,
		Categories: s.state.AllCategories(),
		Total:      len(expenses),
	}
	for _, e := range expenses {
		item := row{
			ID:          e.ID,
			Description: e.Description,
			Amount:      s.state.FormatCurrency(e.Amount),
			Date:        e.Date,
			Category:    e.Category,
			Emoji:       "💰",
		}
		if info, ok := s.state.CategoryInfo(e.Category); ok {
			item.Emoji = info.Emoji
			item.Color = info.Color
		}
		data.Rows = append(data.Rows, item)
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<div class="placeholder">רשימת הוצאות אינה זמינה</div>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "expenses.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "expenses.html")
		_, _ = w.Write([]byte(`<div class="error">שגיאה בטעינת הרשימה</div>`))
	}
}

// expenseErrorMessage maps validation errors to user-facing Hebrew text.
func expenseErrorMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return "סכום לא תקין"
	case errors.Is(err, core.ErrEmptyDescription):
		return "חסר תיאור"
	case errors.Is(err, core.ErrEmptyCategory):
		return "יש לבחור קטגוריה"
	case errors.Is(err, core.ErrInvalidDate):
		return "תאריך לא תקין"
	case errors.Is(err, core.ErrFutureDate):
		return "לא ניתן לרשום הוצאה עתידית"
	default:
		return "שמירת ההוצאה נכשלה"
	}
}
