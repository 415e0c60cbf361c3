package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/theirongolddev/burnrate/internal/model"

	"github.com/google/uuid"
)

type memberRow struct {
	ID        string  `db:"id"`
	OwnerID   string  `db:"owner_id"`
	Name      string  `db:"name"`
	CostRate  float64 `db:"cost_rate"`
	IsActive  bool    `db:"is_active"`
	CreatedAt string  `db:"created_at"`
}

func (r memberRow) toModel() model.TeamMember {
	return model.TeamMember{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Name:      r.Name,
		CostRate:  r.CostRate,
		IsActive:  r.IsActive,
		CreatedAt: parseTimestamp(r.CreatedAt),
	}
}

const memberColumns = `id, owner_id, name, cost_rate, is_active, created_at`

// ListTeamMembers returns the owner's team members, oldest first.
func (s *Store) ListTeamMembers(ctx context.Context, ownerID string) ([]model.TeamMember, error) {
	var rows []memberRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+memberColumns+` FROM team_members WHERE owner_id = ? ORDER BY created_at ASC, id ASC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}

	members := make([]model.TeamMember, 0, len(rows))
	for _, r := range rows {
		members = append(members, r.toModel())
	}
	return members, nil
}

// GetTeamMember returns one of the owner's team members.
func (s *Store) GetTeamMember(ctx context.Context, ownerID, id string) (model.TeamMember, error) {
	var r memberRow
	err := s.db.GetContext(ctx, &r,
		`SELECT `+memberColumns+` FROM team_members WHERE owner_id = ? AND id = ?`,
		ownerID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TeamMember{}, fmt.Errorf("team member %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.TeamMember{}, fmt.Errorf("getting team member %s: %w", id, err)
	}
	return r.toModel(), nil
}

// SaveTeamMember inserts or replaces a team member and returns the stored record.
func (s *Store) SaveTeamMember(ctx context.Context, m model.TeamMember) (model.TeamMember, error) {
	if err := m.Validate(); err != nil {
		return model.TeamMember{}, err
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO team_members (`+memberColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			cost_rate = excluded.cost_rate,
			is_active = excluded.is_active
		WHERE team_members.owner_id = excluded.owner_id`,
		m.ID, m.OwnerID, m.Name, m.CostRate, boolToInt(m.IsActive), formatTimestamp(m.CreatedAt),
	)
	if err != nil {
		return model.TeamMember{}, fmt.Errorf("saving team member %s: %w", m.ID, err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return model.TeamMember{}, fmt.Errorf("saving team member %s: %w", m.ID, err)
	}
	return s.GetTeamMember(ctx, m.OwnerID, m.ID)
}

// DeleteTeamMember removes a team member. Entries they logged are kept and
// stop contributing cost.
func (s *Store) DeleteTeamMember(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM team_members WHERE owner_id = ? AND id = ?`, ownerID, id)
	if err != nil {
		return fmt.Errorf("deleting team member %s: %w", id, err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return fmt.Errorf("deleting team member %s: %w", id, err)
	}
	return nil
}
