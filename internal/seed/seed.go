// Package seed builds and stores the demo agency dataset.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/burnrate/internal/model"
	"github.com/theirongolddev/burnrate/internal/pipeline"

	"github.com/google/uuid"
)

// Days of the month on which demo time is logged.
var Days = []int{3, 5, 7, 9, 11, 13, 15}

type demoClient struct {
	name     string
	retainer float64
	color    string
}

type demoMember struct {
	name string
	rate float64
}

type demoTask struct {
	hours float64
	note  string
}

var (
	demoClients = []demoClient{
		{"Acme Corp", 8000, "#6366f1"},
		{"TechStart Inc", 5000, "#10b981"},
		{"Local Bistro", 2500, "#f59e0b"},
	}
	demoMembers = []demoMember{
		{"Alex Rivera", 65},
		{"Sam Chen", 85},
		{"Jordan Blake", 45},
	}
	// demoWork[i] is what demoMembers[i] does for demoClients[i] on each day.
	demoWork = []demoTask{
		{4, "SEO optimization"},
		{3, "PPC campaign management"},
		{5, "Social media content"},
	}
)

// DemoData returns three clients, three team members and 21 time entries
// dated in now's month, all owned by ownerID and carrying fresh IDs.
func DemoData(ownerID string, now time.Time) pipeline.Dataset {
	ds := pipeline.Dataset{OwnerID: ownerID}
	stamp := now.UTC()
	next := func() time.Time {
		stamp = stamp.Add(time.Millisecond)
		return stamp
	}

	for _, c := range demoClients {
		ds.Clients = append(ds.Clients, model.Client{
			ID:              uuid.NewString(),
			OwnerID:         ownerID,
			Name:            c.name,
			MonthlyRetainer: c.retainer,
			Color:           c.color,
			IsActive:        true,
			CreatedAt:       next(),
		})
	}
	for _, m := range demoMembers {
		ds.Members = append(ds.Members, model.TeamMember{
			ID:        uuid.NewString(),
			OwnerID:   ownerID,
			Name:      m.name,
			CostRate:  m.rate,
			IsActive:  true,
			CreatedAt: next(),
		})
	}

	y, mon, _ := now.Date()
	first := model.NewDate(y, mon, 1)
	for _, day := range Days {
		for i, w := range demoWork {
			ds.Entries = append(ds.Entries, model.TimeEntry{
				ID:           uuid.NewString(),
				OwnerID:      ownerID,
				ClientID:     ds.Clients[i].ID,
				TeamMemberID: ds.Members[i].ID,
				Date:         first.AddDays(day - 1),
				Hours:        w.hours,
				Note:         w.note,
				CreatedAt:    next(),
			})
		}
	}
	return ds
}

// Writer persists records. The store implements it.
type Writer interface {
	SaveClient(ctx context.Context, c model.Client) (model.Client, error)
	SaveTeamMember(ctx context.Context, m model.TeamMember) (model.TeamMember, error)
	SaveTimeEntry(ctx context.Context, e model.TimeEntry) (model.TimeEntry, error)
}

// Seed writes the demo dataset through w and returns it. Clients and members
// are written before entries. Seeding twice creates a second copy.
func Seed(ctx context.Context, w Writer, ownerID string, now time.Time) (pipeline.Dataset, error) {
	ds := DemoData(ownerID, now)

	for _, c := range ds.Clients {
		if _, err := w.SaveClient(ctx, c); err != nil {
			return pipeline.Dataset{}, fmt.Errorf("seeding client %s: %w", c.Name, err)
		}
	}
	for _, m := range ds.Members {
		if _, err := w.SaveTeamMember(ctx, m); err != nil {
			return pipeline.Dataset{}, fmt.Errorf("seeding team member %s: %w", m.Name, err)
		}
	}
	for _, e := range ds.Entries {
		if _, err := w.SaveTimeEntry(ctx, e); err != nil {
			return pipeline.Dataset{}, fmt.Errorf("seeding time entry: %w", err)
		}
	}
	return ds, nil
}
