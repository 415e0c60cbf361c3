package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/theirongolddev/burnrate/internal/model"

	"github.com/google/uuid"
)

type clientRow struct {
	ID              string  `db:"id"`
	OwnerID         string  `db:"owner_id"`
	Name            string  `db:"name"`
	MonthlyRetainer float64 `db:"monthly_retainer"`
	Color           string  `db:"color"`
	IsActive        bool    `db:"is_active"`
	CreatedAt       string  `db:"created_at"`
}

func (r clientRow) toModel() model.Client {
	return model.Client{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		Name:            r.Name,
		MonthlyRetainer: r.MonthlyRetainer,
		Color:           r.Color,
		IsActive:        r.IsActive,
		CreatedAt:       parseTimestamp(r.CreatedAt),
	}
}

const clientColumns = `id, owner_id, name, monthly_retainer, color, is_active, created_at`

// ListClients returns the owner's clients, oldest first.
func (s *Store) ListClients(ctx context.Context, ownerID string) ([]model.Client, error) {
	var rows []clientRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+clientColumns+` FROM clients WHERE owner_id = ? ORDER BY created_at ASC, id ASC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}

	clients := make([]model.Client, 0, len(rows))
	for _, r := range rows {
		clients = append(clients, r.toModel())
	}
	return clients, nil
}

// GetClient returns one of the owner's clients.
func (s *Store) GetClient(ctx context.Context, ownerID, id string) (model.Client, error) {
	var r clientRow
	err := s.db.GetContext(ctx, &r,
		`SELECT `+clientColumns+` FROM clients WHERE owner_id = ? AND id = ?`,
		ownerID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Client{}, fmt.Errorf("client %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Client{}, fmt.Errorf("getting client %s: %w", id, err)
	}
	return r.toModel(), nil
}

// SaveClient inserts c, or replaces the stored client with the same ID.
// An empty ID or CreatedAt is filled in. The saved record is returned.
func (s *Store) SaveClient(ctx context.Context, c model.Client) (model.Client, error) {
	if err := c.Validate(); err != nil {
		return model.Client{}, err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO clients (`+clientColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			monthly_retainer = excluded.monthly_retainer,
			color = excluded.color,
			is_active = excluded.is_active
		WHERE clients.owner_id = excluded.owner_id`,
		c.ID, c.OwnerID, c.Name, c.MonthlyRetainer, c.Color, boolToInt(c.IsActive), formatTimestamp(c.CreatedAt),
	)
	if err != nil {
		return model.Client{}, fmt.Errorf("saving client %s: %w", c.ID, err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return model.Client{}, fmt.Errorf("saving client %s: %w", c.ID, err)
	}
	return s.GetClient(ctx, c.OwnerID, c.ID)
}

// DeleteClient removes a client. Its time entries are left in place.
func (s *Store) DeleteClient(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM clients WHERE owner_id = ? AND id = ?`, ownerID, id)
	if err != nil {
		return fmt.Errorf("deleting client %s: %w", id, err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return fmt.Errorf("deleting client %s: %w", id, err)
	}
	return nil
}
