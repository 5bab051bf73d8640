package core

import "testing"

func TestAllCategoriesOrder(t *testing.T) {
	user := []UserCategory{
		{Name: "חיות", Emoji: "🐕", Color: "#14b8a6", IsCustom: true},
		{Name: "ספרים", Emoji: "📚", Color: "#6366f1", IsCustom: true},
	}
	all := AllCategories(user)
	if len(all) != len(BuiltinCategories)+2 {
		t.Fatalf("expected %d categories, got %d", len(BuiltinCategories)+2, len(all))
	}
	for i, c := range BuiltinCategories {
		if all[i].Name != c.Name || all[i].IsCustom {
			t.Fatalf("built-in %q expected at position %d, got %+v", c.Name, i, all[i])
		}
	}
	if all[len(all)-2].Name != "חיות" || all[len(all)-1].Name != "ספרים" {
		t.Fatal("user categories must keep insertion order after built-ins")
	}
}

func TestBudgetFor(t *testing.T) {
	if got := BudgetFor("אוכל", UserBudgets{}); got.Cents != 150000 {
		t.Fatalf("expected built-in default 150000, got %d", got.Cents)
	}
	budgets := UserBudgets{"אוכל": Money{Cents: 200000}}
	if got := BudgetFor("אוכל", budgets); got.Cents != 200000 {
		t.Fatalf("expected user override 200000, got %d", got.Cents)
	}
	// A zero user entry is treated as unset and falls back to the default.
	budgets["אוכל"] = Money{}
	if got := BudgetFor("אוכל", budgets); got.Cents != 150000 {
		t.Fatalf("expected fallback to 150000 for zero entry, got %d", got.Cents)
	}
	if got := BudgetFor("לא קיים", budgets); got.Cents != 0 {
		t.Fatalf("expected 0 for unknown category, got %d", got.Cents)
	}
}

func TestCategoryInfo(t *testing.T) {
	user := []UserCategory{{Name: "אוכל", Emoji: "🍔", Color: "#ec4899", IsCustom: true}}

	// User categories shadow a built-in of the same name.
	c, ok := CategoryInfo("אוכל", user)
	if !ok || c.Emoji != "🍔" || !c.IsCustom {
		t.Fatalf("expected shadowing user category, got %+v ok=%v", c, ok)
	}

	c, ok = CategoryInfo("תחבורה", nil)
	if !ok || c.Emoji != "⛽" || c.IsCustom {
		t.Fatalf("expected built-in category, got %+v ok=%v", c, ok)
	}

	if _, ok := CategoryInfo("לא קיים", user); ok {
		t.Fatal("unknown category must report absence, not a match")
	}
}

func TestCategoryInfoIdempotent(t *testing.T) {
	user := []UserCategory{{Name: "חיות", Emoji: "🐕", Color: "#14b8a6", IsCustom: true}}
	a, okA := CategoryInfo("חיות", user)
	b, okB := CategoryInfo("חיות", user)
	if okA != okB || a != b {
		t.Fatalf("repeated lookups diverged: %+v vs %+v", a, b)
	}
}
