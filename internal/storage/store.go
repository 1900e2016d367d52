// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splitfool/splitfool/internal/models"
)

// Errors returned by Store implementations for caller-distinguishable
// failures.
var (
	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName means a user with the same name already exists.
	ErrDuplicateName = errors.New("name already exists")
)

// Store defines the persistence gateway the services call out to.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// Implementations must write bills atomically: the bill row, its items, and
// its assignments land together or not at all, so a balance query never
// observes a partially written bill.
type Store interface {
	// CreateUser persists a new user. The ID and CreatedAt fields are
	// populated by the store if unset. Returns ErrDuplicateName if the
	// name is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID. Returns ErrNotFound if absent.
	GetUser(ctx context.Context, id string) (*models.User, error)

	// GetUserByName retrieves a user by exact name. Returns ErrNotFound
	// if absent.
	GetUserByName(ctx context.Context, name string) (*models.User, error)

	// ListUsers returns all users ordered by name.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// UpdateUser replaces a user's stored fields. Returns ErrNotFound if
	// absent and ErrDuplicateName if the new name is taken.
	UpdateUser(ctx context.Context, user *models.User) error

	// DeleteUser removes a user by ID. Returns ErrNotFound if absent.
	// Balance guards belong to the service layer, not here.
	DeleteUser(ctx context.Context, id string) error

	// CreateBill persists a fully validated bill atomically, populating
	// ID and CreatedAt if unset.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill with all items and assignments populated.
	// Returns ErrNotFound if absent.
	GetBill(ctx context.Context, id string) (*models.Bill, error)

	// ListBills returns all bills, newest first, fully populated.
	ListBills(ctx context.Context) ([]*models.Bill, error)

	// ListBillsSince returns bills created strictly after the given Unix
	// nanosecond timestamp, oldest first, fully populated.
	ListBillsSince(ctx context.Context, after int64) ([]*models.Bill, error)

	// CreateSettlement persists a settlement record, populating ID and
	// SettledAt if unset.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// LatestSettlement returns the most recent settlement, or (nil, nil)
	// if the ledger has never been settled.
	LatestSettlement(ctx context.Context) (*models.Settlement, error)

	// ListSettlements returns all settlements, newest first.
	ListSettlements(ctx context.Context) ([]*models.Settlement, error)

	// Close releases any resources held by the store.
	Close() error
}
