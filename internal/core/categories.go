package core

// BuiltinCategories is the fixed, compiled-in category set. Built-ins
// always rank first in listings regardless of when user categories were
// added.
var BuiltinCategories = []Category{
	{Name: "אוכל", Emoji: "🍕", Color: "#ef4444", Budget: Money{Cents: 150000}},
	{Name: "תחבורה", Emoji: "⛽", Color: "#3b82f6", Budget: Money{Cents: 80000}},
	{Name: "בילויים", Emoji: "🎬", Color: "#8b5cf6", Budget: Money{Cents: 60000}},
	{Name: "קניות", Emoji: "🛍️", Color: "#f59e0b", Budget: Money{Cents: 100000}},
	{Name: "בריאות", Emoji: "💊", Color: "#10b981", Budget: Money{Cents: 40000}},
	{Name: "אחר", Emoji: "💰", Color: "#6b7280", Budget: Money{Cents: 50000}},
}

// Palette offered when creating a custom category.
var AvailableColors = []string{
	"#ef4444", "#f59e0b", "#10b981", "#3b82f6",
	"#8b5cf6", "#ec4899", "#14b8a6", "#f97316",
	"#84cc16", "#6366f1", "#a855f7", "#06b6d4",
}

var AvailableEmojis = []string{
	"🍕", "⛽", "🎬", "🛍️", "💊", "💰", "🏠", "📱",
	"✈️", "🎮", "📚", "🏃", "🐕", "🚗", "💡", "🎵",
}

// AllCategories concatenates the built-in set (projected to the user
// shape) with the user-defined categories in their storage insertion
// order.
func AllCategories(userCategories []UserCategory) []UserCategory {
	out := make([]UserCategory, 0, len(BuiltinCategories)+len(userCategories))
	for _, c := range BuiltinCategories {
		out = append(out, UserCategory{Name: c.Name, Emoji: c.Emoji, Color: c.Color})
	}
	return append(out, userCategories...)
}

// BudgetFor resolves the monthly budget for a category: a non-zero user
// entry wins, then the built-in default, then zero. A user budget of
// exactly zero is indistinguishable from "unset" under this rule; that
// ambiguity is long-standing observed behavior and is kept.
func BudgetFor(name string, budgets UserBudgets) Money {
	if b, ok := budgets[name]; ok && b.Cents != 0 {
		return b
	}
	for _, c := range BuiltinCategories {
		if c.Name == name {
			return c.Budget
		}
	}
	return Money{}
}

// CategoryInfo looks a category up by name, user-defined categories first
// so they can shadow a built-in of the same name. Absence is a signal, not
// an error; callers render a fallback glyph.
func CategoryInfo(name string, userCategories []UserCategory) (UserCategory, bool) {
	for _, c := range userCategories {
		if c.Name == name {
			return c, true
		}
	}
	for _, c := range BuiltinCategories {
		if c.Name == name {
			return UserCategory{Name: c.Name, Emoji: c.Emoji, Color: c.Color}, true
		}
	}
	return UserCategory{}, false
}
