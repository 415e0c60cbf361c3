package model

import (
	"errors"
	"testing"
	"time"
)

func TestClientValidate(t *testing.T) {
	valid := Client{OwnerID: "o", Name: "Acme Corp", MonthlyRetainer: 8000}

	tests := []struct {
		name   string
		mutate func(*Client)
		want   error
	}{
		{"valid", func(*Client) {}, nil},
		{"no owner", func(c *Client) { c.OwnerID = "" }, ErrEmptyOwner},
		{"blank name", func(c *Client) { c.Name = "   " }, ErrEmptyName},
		{"zero retainer", func(c *Client) { c.MonthlyRetainer = 0 }, ErrInvalidRetainer},
		{"negative retainer", func(c *Client) { c.MonthlyRetainer = -1 }, ErrInvalidRetainer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTeamMemberValidate(t *testing.T) {
	valid := TeamMember{OwnerID: "o", Name: "Sarah Chen", CostRate: 85}

	tests := []struct {
		name   string
		mutate func(*TeamMember)
		want   error
	}{
		{"valid", func(*TeamMember) {}, nil},
		{"no owner", func(m *TeamMember) { m.OwnerID = "" }, ErrEmptyOwner},
		{"no name", func(m *TeamMember) { m.Name = "" }, ErrEmptyName},
		{"zero rate", func(m *TeamMember) { m.CostRate = 0 }, ErrInvalidCostRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			if err := m.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTimeEntryValidate(t *testing.T) {
	valid := TimeEntry{
		OwnerID:      "o",
		ClientID:     "c",
		TeamMemberID: "m",
		Date:         NewDate(2025, time.June, 3),
		Hours:        0.25,
	}

	tests := []struct {
		name   string
		mutate func(*TimeEntry)
		want   error
	}{
		{"valid", func(*TimeEntry) {}, nil},
		{"dangling ids are fine", func(e *TimeEntry) { e.ClientID = "deleted-client" }, nil},
		{"no owner", func(e *TimeEntry) { e.OwnerID = "" }, ErrEmptyOwner},
		{"no client", func(e *TimeEntry) { e.ClientID = "" }, ErrMissingClient},
		{"no member", func(e *TimeEntry) { e.TeamMemberID = "" }, ErrMissingMember},
		{"no date", func(e *TimeEntry) { e.Date = Date{} }, ErrInvalidDate},
		{"zero hours", func(e *TimeEntry) { e.Hours = 0 }, ErrInvalidHours},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			if err := e.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
