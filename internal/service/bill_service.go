// Package service wires the calculation engine to the persistence gateway.
// Services own the read-validate-compute-store sequencing; all arithmetic
// lives in the calculator package and all I/O behind storage.Store.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/splitfool/splitfool/internal/calculator"
	"github.com/splitfool/splitfool/internal/models"
	"github.com/splitfool/splitfool/internal/money"
	"github.com/splitfool/splitfool/internal/storage"
)

// BillPreview is the calculated outcome of a bill draft, rendered before
// the user commits it. Producing a preview has no side effects, so the
// presentation layer can call it repeatedly on draft edits.
type BillPreview struct {
	Description string
	PayerID     string
	Subtotal    money.Money
	Tax         money.Money
	Total       money.Money
	Shares      map[string]money.Money
}

// BillService handles bill validation, preview, and finalization.
type BillService struct {
	store storage.Store
}

// NewBillService creates a BillService with the given storage backend.
func NewBillService(store storage.Store) *BillService {
	return &BillService{store: store}
}

// userLookup loads the user roster once and returns a membership check for
// the validator.
func (s *BillService) userLookup(ctx context.Context) (func(string) bool, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	known := make(map[string]bool, len(users))
	for _, u := range users {
		known[u.ID] = true
	}
	return func(id string) bool { return known[id] }, nil
}

// Preview validates a bill draft and computes its per-user shares without
// persisting anything.
func (s *BillService) Preview(ctx context.Context, bill *models.Bill) (*BillPreview, error) {
	userExists, err := s.userLookup(ctx)
	if err != nil {
		return nil, err
	}
	if err := calculator.ValidateBill(bill, userExists); err != nil {
		return nil, err
	}

	shares, err := calculator.ComputeShares(bill)
	if err != nil {
		return nil, err
	}

	subtotal := bill.Subtotal()
	return &BillPreview{
		Description: bill.Description,
		PayerID:     bill.PayerID,
		Subtotal:    subtotal.Round(),
		Tax:         bill.Tax.Round(),
		Total:       subtotal.Add(bill.Tax).Round(),
		Shares:      shares,
	}, nil
}

// Create validates a bill draft and persists it atomically. The stored bill
// is immutable; there is no update path.
func (s *BillService) Create(ctx context.Context, bill *models.Bill) (*models.Bill, error) {
	userExists, err := s.userLookup(ctx)
	if err != nil {
		return nil, err
	}
	if err := calculator.ValidateBill(bill, userExists); err != nil {
		return nil, err
	}

	if err := s.store.CreateBill(ctx, bill); err != nil {
		return nil, err
	}
	billsCreated.Inc()
	slog.Info("Bill created",
		"bill_id", bill.ID,
		"payer_id", bill.PayerID,
		"items", len(bill.Items),
		"total", bill.Total().String(),
	)
	return bill, nil
}

// Get returns a stored bill together with its computed per-user shares.
func (s *BillService) Get(ctx context.Context, id string) (*models.Bill, map[string]money.Money, error) {
	bill, err := s.store.GetBill(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	shares, err := calculator.ComputeShares(bill)
	if err != nil {
		return nil, nil, err
	}
	return bill, shares, nil
}

// List returns all bills, newest first.
func (s *BillService) List(ctx context.Context) ([]*models.Bill, error) {
	return s.store.ListBills(ctx)
}
