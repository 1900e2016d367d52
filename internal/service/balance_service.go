package service

import (
	"context"
	"log/slog"

	"github.com/splitfool/splitfool/internal/calculator"
	"github.com/splitfool/splitfool/internal/models"
	"github.com/splitfool/splitfool/internal/storage"
)

// BalanceService computes outstanding balances and records settlements.
//
// Balances are derived fresh on every query from the bills created strictly
// after the latest settlement; nothing is cached. Settling never touches
// historical bills, it only moves the cutoff.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a BalanceService with the given storage backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// Outstanding returns the current net pairwise balances over the
// outstanding bill window.
func (s *BalanceService) Outstanding(ctx context.Context) ([]models.Balance, error) {
	var cutoff int64
	latest, err := s.store.LatestSettlement(ctx)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		cutoff = latest.SettledAt
	}

	bills, err := s.store.ListBillsSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	return calculator.NetBalances(bills)
}

// ForUser splits the outstanding balances into the ones the user owes
// (debts) and the ones owed to them (credits).
func (s *BalanceService) ForUser(ctx context.Context, userID string) (debts, credits []models.Balance, err error) {
	all, err := s.Outstanding(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, b := range all {
		switch userID {
		case b.DebtorID:
			debts = append(debts, b)
		case b.CreditorID:
			credits = append(credits, b)
		}
	}
	return debts, credits, nil
}

// UserHasBalances reports whether the user appears on either side of any
// outstanding balance. The user service consults this before allowing a
// deletion.
func (s *BalanceService) UserHasBalances(ctx context.Context, userID string) (bool, error) {
	debts, credits, err := s.ForUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return len(debts) > 0 || len(credits) > 0, nil
}

// SettleAll records a settlement cutoff stamped with the current time.
// Bills are never deleted or altered; balance queries simply stop counting
// anything at or before the new cutoff. Settling with nothing outstanding
// is a legal no-op in effect but still appends a record.
func (s *BalanceService) SettleAll(ctx context.Context, note string) (*models.Settlement, error) {
	settlement := &models.Settlement{Note: note}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, err
	}
	settlementsCreated.Inc()
	slog.Info("Balances settled", "settlement_id", settlement.ID, "note", note)
	return settlement, nil
}

// Settlements returns the settlement history, newest first.
func (s *BalanceService) Settlements(ctx context.Context) ([]*models.Settlement, error) {
	return s.store.ListSettlements(ctx)
}
