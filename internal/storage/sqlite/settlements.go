package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitfool/splitfool/internal/models"
)

// CreateSettlement persists a new settlement record. Settlements are
// append-only; there is no update or delete path.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.SettledAt == 0 {
		settlement.SettledAt = time.Now().UnixNano()
	}

	var note interface{} = nil
	if settlement.Note != "" {
		note = settlement.Note
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO settlements (id, settled_at, note) VALUES (?, ?, ?)",
		settlement.ID, settlement.SettledAt, note,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}
	return nil
}

// LatestSettlement returns the most recent settlement, or (nil, nil) if the
// ledger has never been settled.
func (s *SQLiteStore) LatestSettlement(ctx context.Context) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	var note sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT id, settled_at, note FROM settlements ORDER BY settled_at DESC LIMIT 1",
	).Scan(&settlement.ID, &settlement.SettledAt, &note)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest settlement: %w", err)
	}

	if note.Valid {
		settlement.Note = note.String
	}
	return settlement, nil
}

// ListSettlements returns all settlements, newest first.
func (s *SQLiteStore) ListSettlements(ctx context.Context) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, settled_at, note FROM settlements ORDER BY settled_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement := &models.Settlement{}
		var note sql.NullString
		if err := rows.Scan(&settlement.ID, &settlement.SettledAt, &note); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		if note.Valid {
			settlement.Note = note.String
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	return settlements, nil
}
