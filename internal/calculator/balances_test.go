package calculator

import (
	"testing"

	"github.com/splitfool/splitfool/internal/models"
	"github.com/splitfool/splitfool/internal/money"
)

// singleItemBill builds a bill with one item fully assigned by the given
// fractions.
func singleItemBill(payerID, cost, tax string, assignments ...models.Assignment) *models.Bill {
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

// balanceSet indexes balances by debtor->creditor for order-independent
// comparison.
func balanceSet(balances []models.Balance) map[[2]string]string {
	set := make(map[[2]string]string, len(balances))
	for _, b := range balances {
		set[[2]string{b.DebtorID, b.CreditorID}] = b.Amount.String()
	}
	return set
}

func TestNetBalances(t *testing.T) {
	tests := []struct {
		name  string
		bills []*models.Bill
		want  map[[2]string]string // (debtor, creditor) -> amount
	}{
		{
			name:  "no bills",
			bills: nil,
			want:  map[[2]string]string{},
		},
		{
			name: "pizza three ways, payer consumes too",
			bills: []*models.Bill{
				singleItemBill("alice", "30.00", "12.00",
					models.Assignment{UserID: "alice", Fraction: frac("0.3333")},
					models.Assignment{UserID: "bob", Fraction: frac("0.3333")},
					models.Assignment{UserID: "carol", Fraction: frac("0.3334")},
				),
			},
			want: map[[2]string]string{
				{"bob", "alice"}:   "14.00",
				{"carol", "alice"}: "14.00",
			},
		},
		{
			name: "mutual debts net to a single entry",
			bills: []*models.Bill{
				// Bob owes Alice $50.
				singleItemBill("alice", "50.00", "0",
					models.Assignment{UserID: "bob", Fraction: frac("1")},
				),
				// Alice owes Bob $30.
				singleItemBill("bob", "30.00", "0",
					models.Assignment{UserID: "alice", Fraction: frac("1")},
				),
			},
			want: map[[2]string]string{
				{"bob", "alice"}: "20.00",
			},
		},
		{
			name: "exactly offsetting debts vanish",
			bills: []*models.Bill{
				singleItemBill("alice", "25.00", "0",
					models.Assignment{UserID: "bob", Fraction: frac("1")},
				),
				singleItemBill("bob", "25.00", "0",
					models.Assignment{UserID: "alice", Fraction: frac("1")},
				),
			},
			want: map[[2]string]string{},
		},
		{
			name: "one cent net is suppressed",
			bills: []*models.Bill{
				singleItemBill("alice", "10.01", "0",
					models.Assignment{UserID: "bob", Fraction: frac("1")},
				),
				singleItemBill("bob", "10.00", "0",
					models.Assignment{UserID: "alice", Fraction: frac("1")},
				),
			},
			want: map[[2]string]string{},
		},
		{
			name: "two cents net survives",
			bills: []*models.Bill{
				singleItemBill("alice", "10.02", "0",
					models.Assignment{UserID: "bob", Fraction: frac("1")},
				),
				singleItemBill("bob", "10.00", "0",
					models.Assignment{UserID: "alice", Fraction: frac("1")},
				),
			},
			want: map[[2]string]string{
				{"bob", "alice"}: "0.02",
			},
		},
		{
			name: "no transitive simplification across a chain",
			bills: []*models.Bill{
				// A owes B, B owes C; both edges must survive as-is.
				singleItemBill("b", "10.00", "0",
					models.Assignment{UserID: "a", Fraction: frac("1")},
				),
				singleItemBill("c", "10.00", "0",
					models.Assignment{UserID: "b", Fraction: frac("1")},
				),
			},
			want: map[[2]string]string{
				{"a", "b"}: "10.00",
				{"b", "c"}: "10.00",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances, err := NetBalances(tt.bills)
			if err != nil {
				t.Fatalf("NetBalances() error = %v", err)
			}
			got := balanceSet(balances)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d balances %v, want %d", len(got), got, len(tt.want))
			}
			for pair, amount := range tt.want {
				if got[pair] != amount {
					t.Errorf("balance %s->%s = %s, want %s", pair[0], pair[1], got[pair], amount)
				}
			}
		})
	}
}

func TestNetBalancesSymmetry(t *testing.T) {
	bills := []*models.Bill{
		singleItemBill("alice", "42.00", "3.50",
			models.Assignment{UserID: "bob", Fraction: frac("0.6")},
			models.Assignment{UserID: "alice", Fraction: frac("0.4")},
		),
		singleItemBill("bob", "19.00", "0",
			models.Assignment{UserID: "alice", Fraction: frac("1")},
		),
	}

	balances, err := NetBalances(bills)
	if err != nil {
		t.Fatalf("NetBalances() error = %v", err)
	}

	seen := make(map[[2]string]bool)
	for _, b := range balances {
		if !b.Amount.IsPositive() {
			t.Errorf("balance %s->%s has non-positive amount %s", b.DebtorID, b.CreditorID, b.Amount)
		}
		if b.DebtorID == b.CreditorID {
			t.Errorf("balance with identical debtor and creditor %s", b.DebtorID)
		}
		if seen[[2]string{b.CreditorID, b.DebtorID}] {
			t.Errorf("both directions emitted for pair %s/%s", b.DebtorID, b.CreditorID)
		}
		seen[[2]string{b.DebtorID, b.CreditorID}] = true
	}
}

func TestNetBalancesDeterministicOrder(t *testing.T) {
	bills := []*models.Bill{
		singleItemBill("carol", "30.00", "0",
			models.Assignment{UserID: "alice", Fraction: frac("0.5")},
			models.Assignment{UserID: "bob", Fraction: frac("0.5")},
		),
		singleItemBill("alice", "12.00", "0",
			models.Assignment{UserID: "dave", Fraction: frac("1")},
		),
	}

	first, err := NetBalances(bills)
	if err != nil {
		t.Fatalf("NetBalances() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := NetBalances(bills)
		if err != nil {
			t.Fatalf("NetBalances() error = %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: %d balances, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j].DebtorID != first[j].DebtorID ||
				again[j].CreditorID != first[j].CreditorID ||
				!again[j].Amount.Equal(first[j].Amount) {
				t.Fatalf("run %d: balance %d = %+v, want %+v", i, j, again[j], first[j])
			}
		}
	}
}
