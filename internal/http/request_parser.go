package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hotzaot/internal/services"
)

// RequireMethod checks if the request method matches the expected
// method(s). Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// ParseFormOrFail parses the request form and returns an error response on
// failure. Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("הבקשה אינה תקינה")
	}
	return nil
}

// formValue reads a sanitized, trimmed form field.
func formValue(form url.Values, key string) string {
	return sanitizeInput(form.Get(key))
}

// parsePeriodParam reads the dashboard period from the query string.
func parsePeriodParam(query url.Values) services.Period {
	return services.ParsePeriod(strings.TrimSpace(query.Get("period")))
}

// parseFilterParams reads the expense list query: search, category filter,
// sort key and direction.
func parseFilterParams(query url.Values) services.ExpenseFilter {
	return services.ParseExpenseFilter(
		query.Get("search"),
		strings.TrimSpace(query.Get("category")),
		strings.TrimSpace(query.Get("sortBy")),
		strings.TrimSpace(query.Get("order")),
	)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
