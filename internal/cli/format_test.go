package cli

import (
	"testing"
	"time"

	"github.com/theirongolddev/burnrate/internal/model"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{4150, "$4,150"},
		{-200, "-$200"},
		{1819.5, "$1,820"},
		{1819.49, "$1,819"},
		{-1819.5, "-$1,820"},
		{999.99, "$1,000"},
		{1234567.4, "$1,234,567"},
		{-0.4, "-$0"},
		{-0.5, "-$1"},
		{0.4, "$0"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{83, "83.0%"},
		{0, "0.0%"},
		{-0.04, "-0.0%"},
		{-26, "-26.0%"},
		{54.54, "54.5%"},
		{100, "100.0%"},
		{77.25, "77.3%"},
		{-77.25, "-77.3%"},
		{12.25, "12.3%"},
		{54.55, "54.5%"},
		{0.05, "0.1%"},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.in); got != tt.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatHoursAndNumber(t *testing.T) {
	if got := FormatHours(28); got != "28.0h" {
		t.Fatalf("FormatHours(28) = %q, want 28.0h", got)
	}
	if got := FormatHours(7.5); got != "7.5h" {
		t.Fatalf("FormatHours(7.5) = %q, want 7.5h", got)
	}
	if got := FormatNumber(1234567); got != "1,234,567" {
		t.Fatalf("FormatNumber = %q, want 1,234,567", got)
	}
	if got := FormatNumber(-4150); got != "-4,150" {
		t.Fatalf("FormatNumber(-4150) = %q, want -4,150", got)
	}
}

func TestFormatDates(t *testing.T) {
	if got := FormatDate(model.NewDate(2025, time.June, 3)); got != "Jun 3, 2025" {
		t.Fatalf("FormatDate = %q, want Jun 3, 2025", got)
	}
	if got := FormatDate(model.Date{}); got != "-" {
		t.Fatalf("FormatDate(zero) = %q, want -", got)
	}
	if got := FormatMonthKey("2025-06"); got != "June 2025" {
		t.Fatalf("FormatMonthKey = %q, want June 2025", got)
	}
	if got := FormatMonthKey("junk"); got != "junk" {
		t.Fatalf("FormatMonthKey(junk) = %q, want passthrough", got)
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(1200, 1080); got != "+$120" {
		t.Fatalf("FormatDelta up = %q, want +$120", got)
	}
	if got := FormatDelta(1000, 1045); got != "-$45" {
		t.Fatalf("FormatDelta down = %q, want -$45", got)
	}
}
