package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/splitfool/splitfool/internal/models"
	"github.com/splitfool/splitfool/internal/money"
	"github.com/splitfool/splitfool/internal/storage/sqlite"
)

type testEnv struct {
	bills    *BillService
	balances *BalanceService
	users    *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "splitfool-service-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	balances := NewBalanceService(store)
	return &testEnv{
		bills:    NewBillService(store),
		balances: balances,
		users:    NewUserService(store, balances),
	}
}

func (e *testEnv) mustCreateUser(t *testing.T, name string) *models.User {
	t.Helper()
	user, err := e.users.Create(context.Background(), name)
	if err != nil {
		t.Fatalf("Create user %s failed: %v", name, err)
	}
	return user
}

// oneItemBill builds a draft with a single item split by the given
// (userID, fraction) pairs.
func oneItemBill(payerID, cost, tax string, splits map[string]string) *models.Bill {
	var assignments []models.Assignment
	for userID, fraction := range splits {
		assignments = append(assignments, models.Assignment{
			UserID:   userID,
			Fraction: decimal.RequireFromString(fraction),
		})
	}
	return &models.Bill{
		PayerID: payerID,
		Tax:     money.MustParse(tax),
		Items: []models.Item{{
			Description: "Item",
			Cost:        money.MustParse(cost),
			Assignments: assignments,
		}},
	}
}
