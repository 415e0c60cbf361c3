package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.June || d.Day() != 15 {
		t.Fatalf("ParseDate = %v, want 2025-06-15", d)
	}
	if d.Hour() != 0 || d.Location() != time.UTC {
		t.Fatalf("ParseDate = %v, want midnight UTC", d.Time)
	}

	for _, bad := range []string{"", "2025-6-15", "15/06/2025", "2025-02-30"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) succeeded, want error", bad)
		}
	}
}

func TestDateOf(t *testing.T) {
	tz := time.FixedZone("UTC+10", 10*60*60)
	got := DateOf(time.Date(2025, time.June, 1, 6, 30, 0, 0, tz))
	if got.String() != "2025-06-01" {
		t.Fatalf("DateOf = %s, want 2025-06-01", got)
	}
}

func TestDate_Helpers(t *testing.T) {
	d := NewDate(2025, time.January, 31)
	if got := d.AddDays(1).String(); got != "2025-02-01" {
		t.Fatalf("AddDays(1) = %s, want 2025-02-01", got)
	}
	if got := d.AddDays(-31).String(); got != "2024-12-31" {
		t.Fatalf("AddDays(-31) = %s, want 2024-12-31", got)
	}
	if got := d.MonthKey(); got != "2025-01" {
		t.Fatalf("MonthKey = %s, want 2025-01", got)
	}
	if got := (Date{}).String(); got != "" {
		t.Fatalf("zero Date String = %q, want empty", got)
	}
}

func TestDate_JSON(t *testing.T) {
	e := TimeEntry{ID: "e1", Date: NewDate(2025, time.June, 9), Hours: 2.5}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal raw: %v", err)
	}
	if raw["date"] != "2025-06-09" {
		t.Fatalf("date field = %v, want 2025-06-09", raw["date"])
	}

	var back TimeEntry
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Date.Equal(e.Date.Time) {
		t.Fatalf("round-trip date = %s, want %s", back.Date, e.Date)
	}

	var d Date
	if err := json.Unmarshal([]byte(`"June 9"`), &d); err == nil {
		t.Fatal("Unmarshal of malformed date succeeded, want error")
	}
}
