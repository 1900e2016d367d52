package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitfool/splitfool/internal/models"
	"github.com/splitfool/splitfool/internal/money"
	"github.com/splitfool/splitfool/internal/storage"
)

// CreateBill persists a bill with its items and assignments in a single
// transaction. Either everything lands or nothing does, so a concurrent
// balance query never sees a half-written bill.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().UnixNano()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO bills (id, payer_id, description, tax, created_at) VALUES (?, ?, ?, ?, ?)",
		bill.ID, bill.PayerID, bill.Description, bill.Tax.String(), bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	for i := range bill.Items {
		item := &bill.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO items (id, bill_id, position, description, cost) VALUES (?, ?, ?, ?, ?)",
			item.ID, bill.ID, i, item.Description, item.Cost.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for _, a := range item.Assignments {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO assignments (item_id, user_id, fraction) VALUES (?, ?, ?)",
				item.ID, a.UserID, a.Fraction.String(),
			)
			if err != nil {
				return fmt.Errorf("failed to insert assignment: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetBill retrieves a bill by ID with all items and assignments populated.
func (s *SQLiteStore) GetBill(ctx context.Context, id string) (*models.Bill, error) {
	bill := &models.Bill{}
	var tax string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, payer_id, description, tax, created_at FROM bills WHERE id = ?",
		id,
	).Scan(&bill.ID, &bill.PayerID, &bill.Description, &tax, &bill.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bill %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	if bill.Tax, err = money.Parse(tax); err != nil {
		return nil, fmt.Errorf("failed to parse bill tax: %w", err)
	}
	if bill.Items, err = s.loadItems(ctx, bill.ID); err != nil {
		return nil, err
	}
	return bill, nil
}

// ListBills returns all bills, newest first, fully populated.
func (s *SQLiteStore) ListBills(ctx context.Context) ([]*models.Bill, error) {
	return s.queryBills(ctx,
		"SELECT id, payer_id, description, tax, created_at FROM bills ORDER BY created_at DESC",
	)
}

// ListBillsSince returns bills created strictly after the given Unix
// nanosecond timestamp, oldest first.
func (s *SQLiteStore) ListBillsSince(ctx context.Context, after int64) ([]*models.Bill, error) {
	return s.queryBills(ctx,
		"SELECT id, payer_id, description, tax, created_at FROM bills WHERE created_at > ? ORDER BY created_at ASC",
		after,
	)
}

func (s *SQLiteStore) queryBills(ctx context.Context, query string, args ...any) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		bill := &models.Bill{}
		var tax string
		if err := rows.Scan(&bill.ID, &bill.PayerID, &bill.Description, &tax, &bill.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		if bill.Tax, err = money.Parse(tax); err != nil {
			return nil, fmt.Errorf("failed to parse bill tax: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	for _, bill := range bills {
		if bill.Items, err = s.loadItems(ctx, bill.ID); err != nil {
			return nil, err
		}
	}
	return bills, nil
}

// loadItems fetches a bill's items in entry order, each with its
// assignments.
func (s *SQLiteStore) loadItems(ctx context.Context, billID string) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, description, cost FROM items WHERE bill_id = ? ORDER BY position",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		var cost string
		if err := rows.Scan(&item.ID, &item.Description, &cost); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if item.Cost, err = money.Parse(cost); err != nil {
			return nil, fmt.Errorf("failed to parse item cost: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	for i := range items {
		if items[i].Assignments, err = s.loadAssignments(ctx, items[i].ID); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *SQLiteStore) loadAssignments(ctx context.Context, itemID string) ([]models.Assignment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, fraction FROM assignments WHERE item_id = ? ORDER BY user_id",
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		var a models.Assignment
		var fraction string
		if err := rows.Scan(&a.UserID, &fraction); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		if a.Fraction, err = decimal.NewFromString(fraction); err != nil {
			return nil, fmt.Errorf("failed to parse assignment fraction: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}
	return assignments, nil
}
