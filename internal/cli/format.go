// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/moolah/internal/calendar"

	"cloud.google.com/go/civil"
)

// FormatMoney formats a dollar amount with separators and cents.
// e.g., 1234.5 -> "$1,234.50", -12 -> "-$12.00"
func FormatMoney(v float64) string {
	cents := int64(math.Round(math.Abs(v) * 100))
	s := fmt.Sprintf("$%s.%02d", FormatNumber(cents/100), cents%100)
	if v < 0 && cents != 0 {
		return "-" + s
	}
	return s
}

// FormatSignedMoney is FormatMoney with an explicit "+" on gains.
func FormatSignedMoney(v float64) string {
	if v > 0 {
		return "+" + FormatMoney(v)
	}
	return FormatMoney(v)
}

// FormatCompactMoney abbreviates large amounts for narrow columns.
// e.g., 1234 -> "$1.2K", -2500000 -> "-$2.5M"
func FormatCompactMoney(v float64) string {
	abs := math.Abs(v)
	sign := ""
	if v < 0 {
		sign = "-"
	}

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%s$%.1fB", sign, abs/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", sign, abs/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%s$%.1fK", sign, abs/1_000)
	default:
		return fmt.Sprintf("%s$%.0f", sign, abs)
	}
}

// FormatRange formats a min/max pair.
func FormatRange(lo, hi float64) string {
	if lo == hi {
		return FormatMoney(lo)
	}
	return FormatMoney(lo) + " … " + FormatMoney(hi)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatDate formats a date as YYYY-MM-DD, or "-" for the zero date.
func FormatDate(d civil.Date) string {
	if d == (civil.Date{}) {
		return "-"
	}
	return d.String()
}

// FormatDayOfWeek returns a 3-letter day abbreviation for a date.
func FormatDayOfWeek(d civil.Date) string {
	if !d.IsValid() {
		return "???"
	}
	return calendar.Weekday(d).String()[:3]
}

// FormatNames joins delta names for a table cell, truncating long lists.
func FormatNames(names []string, limit int) string {
	if len(names) == 0 {
		return ""
	}
	if limit <= 0 || len(names) <= limit {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s +%d more", strings.Join(names[:limit], ", "), len(names)-limit)
}
