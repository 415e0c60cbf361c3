package cmd

import (
	"errors"
	"testing"

	"github.com/theirongolddev/burnrate/internal/model"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"8000", 8000, false},
		{"$8,000", 8000, false},
		{" 65.505 ", 65.51, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseMoney(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseMoney(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("parseMoney(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseHours(t *testing.T) {
	got, err := parseHours("2.5h")
	if err != nil || got != 2.5 {
		t.Fatalf("parseHours(2.5h) = %v, %v", got, err)
	}
	if _, err := parseHours("0.001"); err == nil {
		t.Error("hours rounding to zero should be rejected")
	}
}

func TestResolveRef(t *testing.T) {
	clients := []model.Client{
		{ID: "abc123", Name: "Acme Corp"},
		{ID: "abd456", Name: "Bistro"},
		{ID: "xyz789", Name: "bistro"},
	}
	id := func(c model.Client) string { return c.ID }
	name := func(c model.Client) string { return c.Name }

	tests := []struct {
		ref    string
		wantID string
		err    error
	}{
		{"abc123", "abc123", nil},
		{"xyz", "xyz789", nil},
		{"ACME CORP", "abc123", nil},
		{"ab", "", errAmbiguous},
		{"BISTRO", "", errAmbiguous},
		{"nope", "", errNoMatch},
		{"  ", "", errNoMatch},
	}
	for _, tt := range tests {
		got, err := resolveRef(clients, tt.ref, id, name)
		if tt.err != nil {
			if !errors.Is(err, tt.err) {
				t.Errorf("resolveRef(%q) err = %v, want %v", tt.ref, err, tt.err)
			}
			continue
		}
		if err != nil || got.ID != tt.wantID {
			t.Errorf("resolveRef(%q) = %q, %v, want %q", tt.ref, got.ID, err, tt.wantID)
		}
	}
}
