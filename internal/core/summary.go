package core

// CategoryAmount is an amount aggregated under one category key, carrying
// the display fields resolved through the category lookup. When the key
// resolves to no known category the display fields stay empty; callers
// render a fallback glyph instead of failing.
type CategoryAmount struct {
	Key    string // raw category value on the expenses
	Name   string
	Emoji  string
	Color  string
	Amount Money
}

// DayAmount is one point of the daily trend series.
type DayAmount struct {
	Day    string // calendar day, 2006-01-02
	Amount Money
}
