package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/theirongolddev/burnrate/internal/model"

	"github.com/google/uuid"
)

type entryRow struct {
	ID           string  `db:"id"`
	OwnerID      string  `db:"owner_id"`
	ClientID     string  `db:"client_id"`
	TeamMemberID string  `db:"team_member_id"`
	Date         string  `db:"date"`
	Hours        float64 `db:"hours"`
	Note         string  `db:"note"`
	CreatedAt    string  `db:"created_at"`
}

func (r entryRow) toModel() (model.TimeEntry, error) {
	d, err := model.ParseDate(r.Date)
	if err != nil {
		return model.TimeEntry{}, fmt.Errorf("time entry %s: %w", r.ID, err)
	}
	return model.TimeEntry{
		ID:           r.ID,
		OwnerID:      r.OwnerID,
		ClientID:     r.ClientID,
		TeamMemberID: r.TeamMemberID,
		Date:         d,
		Hours:        r.Hours,
		Note:         r.Note,
		CreatedAt:    parseTimestamp(r.CreatedAt),
	}, nil
}

const entryColumns = `id, owner_id, client_id, team_member_id, date, hours, note, created_at`

// ListTimeEntries returns the owner's time entries, newest day first and
// newest record first within a day.
func (s *Store) ListTimeEntries(ctx context.Context, ownerID string) ([]model.TimeEntry, error) {
	return s.selectEntries(ctx,
		`SELECT `+entryColumns+` FROM time_entries WHERE owner_id = ?
		 ORDER BY date DESC, created_at DESC`,
		ownerID)
}

// ListTimeEntriesByClient is ListTimeEntries restricted to one client.
func (s *Store) ListTimeEntriesByClient(ctx context.Context, ownerID, clientID string) ([]model.TimeEntry, error) {
	return s.selectEntries(ctx,
		`SELECT `+entryColumns+` FROM time_entries WHERE owner_id = ? AND client_id = ?
		 ORDER BY date DESC, created_at DESC`,
		ownerID, clientID)
}

// GetTimeEntry returns one of the owner's time entries.
func (s *Store) GetTimeEntry(ctx context.Context, ownerID, id string) (model.TimeEntry, error) {
	var r entryRow
	err := s.db.GetContext(ctx, &r,
		`SELECT `+entryColumns+` FROM time_entries WHERE owner_id = ? AND id = ?`,
		ownerID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TimeEntry{}, fmt.Errorf("time entry %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.TimeEntry{}, fmt.Errorf("getting time entry %s: %w", id, err)
	}
	return r.toModel()
}

func (s *Store) selectEntries(ctx context.Context, query string, args ...any) ([]model.TimeEntry, error) {
	var rows []entryRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}

	entries := make([]model.TimeEntry, 0, len(rows))
	for _, r := range rows {
		e, err := r.toModel()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// SaveTimeEntry inserts or replaces a time entry. The referenced client and
// member are not checked.
func (s *Store) SaveTimeEntry(ctx context.Context, e model.TimeEntry) (model.TimeEntry, error) {
	if err := e.Validate(); err != nil {
		return model.TimeEntry{}, err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO time_entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			client_id = excluded.client_id,
			team_member_id = excluded.team_member_id,
			date = excluded.date,
			hours = excluded.hours,
			note = excluded.note
		WHERE time_entries.owner_id = excluded.owner_id`,
		e.ID, e.OwnerID, e.ClientID, e.TeamMemberID, e.Date.String(), e.Hours, e.Note, formatTimestamp(e.CreatedAt),
	)
	if err != nil {
		return model.TimeEntry{}, fmt.Errorf("saving time entry %s: %w", e.ID, err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return model.TimeEntry{}, fmt.Errorf("saving time entry %s: %w", e.ID, err)
	}
	return s.GetTimeEntry(ctx, e.OwnerID, e.ID)
}

// DeleteTimeEntry removes a time entry.
func (s *Store) DeleteTimeEntry(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM time_entries WHERE owner_id = ? AND id = ?`, ownerID, id)
	if err != nil {
		return fmt.Errorf("deleting time entry %s: %w", id, err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return fmt.Errorf("deleting time entry %s: %w", id, err)
	}
	return nil
}
