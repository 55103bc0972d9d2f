package agent

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// formatFieldName turns a camelCase field name into its display form,
// e.g. "deductibleAmount" becomes "Deductible Amount".
func formatFieldName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// formatCurrency renders a whole-dollar amount as "$5,000".
func formatCurrency(v float64) string {
	return "$" + formatNumber(v)
}

// formatNumber renders with thousands separators and no decimals.
func formatNumber(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.0f", v)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// formatDate renders an ISO date in long form, "January 2, 2006". Values that
// fail to parse come back unchanged.
func formatDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("January 2, 2006")
}

// dateLayouts are the shapes normalizeDate will reparse, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
}

// normalizeDate best-effort reparses a date string to YYYY-MM-DD. Values that
// match no known layout are returned as-is rather than rejected.
func normalizeDate(value string) string {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return value
}

// formatValue renders one update value for a confirmation sentence, applying
// currency and long-date formatting by field type.
func formatValue(field string, value any) string {
	if currencyFields[field] {
		if n, ok := asNumber(value); ok {
			return formatCurrency(n)
		}
	}
	if numericFields[field] {
		if n, ok := asNumber(value); ok {
			return formatNumber(n)
		}
	}
	if dateFields[field] {
		if s, ok := value.(string); ok {
			return formatDate(s)
		}
	}
	return fmt.Sprintf("%v", value)
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}
