// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/theirongolddev/burnrate/internal/model"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency formats a dollar amount with grouping and no cents,
// rounding half away from zero. Negative amounts keep their sign even when
// they round to zero.
// e.g., 4150 -> "$4,150", -200 -> "-$200", 1819.5 -> "$1,820", -0.4 -> "-$0"
func FormatCurrency(amount float64) string {
	n := int64(math.Abs(math.Round(amount)))
	if amount < 0 {
		return "-$" + printer.Sprintf("%d", n)
	}
	return "$" + printer.Sprintf("%d", n)
}

// FormatPercent formats a value that is already a percentage with one
// decimal place. Exact ties of the stored binary value round away from
// zero, and small negatives keep their sign.
// e.g., 83 -> "83.0%", 77.25 -> "77.3%", 54.55 -> "54.5%", -0.04 -> "-0.0%"
func FormatPercent(value float64) string {
	// 30 places is enough to tell a float64 percentage from a tie.
	d, err := decimal.NewFromString(strconv.FormatFloat(value, 'f', 30, 64))
	if err != nil {
		return fmt.Sprintf("%.1f%%", value)
	}
	s := d.StringFixed(1)
	if value < 0 && s[0] != '-' {
		s = "-" + s
	}
	return s + "%"
}

// FormatHours formats logged hours with one decimal place.
// e.g., 28 -> "28.0h"
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.1fh", hours)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatDate renders a calendar day the way entry lists show it.
// e.g., "Jun 3, 2025"
func FormatDate(d model.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format("Jan 2, 2006")
}

// FormatMonth renders a month heading. e.g., "June 2025"
func FormatMonth(t time.Time) string {
	return t.Format("January 2006")
}

// FormatMonthKey turns a YYYY-MM bucket into a month heading, returning the
// key unchanged when it does not parse.
func FormatMonthKey(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return FormatMonth(t)
}

// FormatDelta formats a signed change in dollars. e.g., "+$120", "-$45"
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatCurrency(delta)
	}
	return FormatCurrency(delta)
}
