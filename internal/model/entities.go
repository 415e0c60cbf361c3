// Package model defines the burnrate domain types: the persisted agency
// records and the derived profitability figures computed from them.
package model

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyName       = errors.New("name must not be empty")
	ErrEmptyOwner      = errors.New("owner must not be empty")
	ErrInvalidRetainer = errors.New("monthly retainer must be positive")
	ErrInvalidCostRate = errors.New("cost rate must be positive")
	ErrInvalidHours    = errors.New("hours must be positive")
	ErrMissingClient   = errors.New("time entry needs a client")
	ErrMissingMember   = errors.New("time entry needs a team member")
	ErrInvalidDate     = errors.New("time entry needs a date")
)

// Client is an agency customer paying a flat monthly retainer.
type Client struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	Name            string    `json:"name"`
	MonthlyRetainer float64   `json:"monthly_retainer"`
	Color           string    `json:"color"` // display only
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// TeamMember is someone whose logged hours cost the agency money.
// CostRate is the blended all-in hourly cost, not a billing rate.
type TeamMember struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	CostRate  float64   `json:"cost_rate"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// TimeEntry records hours a team member spent on a client on one day.
// ClientID and TeamMemberID are not guaranteed to resolve.
type TimeEntry struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	ClientID     string    `json:"client_id"`
	TeamMemberID string    `json:"team_member_id"`
	Date         Date      `json:"date"`
	Hours        float64   `json:"hours"`
	Note         string    `json:"note"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks the fields a client needs before it is stored.
func (c Client) Validate() error {
	if strings.TrimSpace(c.OwnerID) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.MonthlyRetainer <= 0 {
		return ErrInvalidRetainer
	}
	return nil
}

// Validate checks the fields a team member needs before it is stored.
func (m TeamMember) Validate() error {
	if strings.TrimSpace(m.OwnerID) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if m.CostRate <= 0 {
		return ErrInvalidCostRate
	}
	return nil
}

// Validate checks the fields a time entry needs before it is stored.
// It does not check that the referenced client or member exist.
func (e TimeEntry) Validate() error {
	if strings.TrimSpace(e.OwnerID) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(e.ClientID) == "" {
		return ErrMissingClient
	}
	if strings.TrimSpace(e.TeamMemberID) == "" {
		return ErrMissingMember
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if e.Hours <= 0 {
		return ErrInvalidHours
	}
	return nil
}
