package pipeline

import (
	"context"
	"fmt"

	"github.com/theirongolddev/burnrate/internal/model"

	"golang.org/x/sync/errgroup"
)

// Source supplies an owner's records. The store implements it.
type Source interface {
	ListClients(ctx context.Context, ownerID string) ([]model.Client, error)
	ListTeamMembers(ctx context.Context, ownerID string) ([]model.TeamMember, error)
	ListTimeEntries(ctx context.Context, ownerID string) ([]model.TimeEntry, error)
}

// Dataset is a consistent, fully materialized snapshot of one owner's data.
type Dataset struct {
	OwnerID string
	Clients []model.Client
	Members []model.TeamMember
	Entries []model.TimeEntry
}

// Load fetches the three collections for ownerID concurrently and returns
// once all of them have resolved. The first failure cancels the others.
func Load(ctx context.Context, src Source, ownerID string) (Dataset, error) {
	ds := Dataset{OwnerID: ownerID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		clients, err := src.ListClients(gctx, ownerID)
		if err != nil {
			return fmt.Errorf("loading clients: %w", err)
		}
		ds.Clients = clients
		return nil
	})
	g.Go(func() error {
		members, err := src.ListTeamMembers(gctx, ownerID)
		if err != nil {
			return fmt.Errorf("loading team members: %w", err)
		}
		ds.Members = members
		return nil
	})
	g.Go(func() error {
		entries, err := src.ListTimeEntries(gctx, ownerID)
		if err != nil {
			return fmt.Errorf("loading time entries: %w", err)
		}
		ds.Entries = entries
		return nil
	})

	if err := g.Wait(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}
