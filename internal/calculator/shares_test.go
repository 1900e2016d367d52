package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/splitfool/splitfool/internal/models"
	"github.com/splitfool/splitfool/internal/money"
)

func TestComputeShares(t *testing.T) {
	third := decimal.NewFromInt(1).Div(decimal.NewFromInt(3))

	tests := []struct {
		name         string
		bill         *models.Bill
		want         map[string]string // user -> rounded owed amount
		validateFunc func(t *testing.T, shares map[string]money.Money)
	}{
		{
			name: "pizza three ways with tax",
			bill: &models.Bill{
				PayerID: "alice",
				Tax:     money.MustParse("12.00"),
				Items: []models.Item{{
					Description: "Pizza",
					Cost:        money.MustParse("30.00"),
					Assignments: []models.Assignment{
						{UserID: "alice", Fraction: third},
						{UserID: "bob", Fraction: third},
						{UserID: "carol", Fraction: third},
					},
				}},
			},
			// $10 consumption + $4 proportional tax each.
			want: map[string]string{"alice": "14.00", "bob": "14.00", "carol": "14.00"},
		},
		{
			name: "uneven consumption gets uneven tax",
			bill: &models.Bill{
				PayerID: "alice",
				Tax:     money.MustParse("10.00"),
				Items: []models.Item{
					{
						Description: "Item A",
						Cost:        money.MustParse("60.00"),
						Assignments: []models.Assignment{
							{UserID: "alice", Fraction: frac("0.5")},
							{UserID: "bob", Fraction: frac("0.5")},
						},
					},
					{
						Description: "Item B",
						Cost:        money.MustParse("40.00"),
						Assignments: []models.Assignment{
							{UserID: "bob", Fraction: frac("1.0")},
						},
					},
				},
			},
			// Alice: $30 + $3 tax; Bob: $70 + $7 tax.
			want: map[string]string{"alice": "33.00", "bob": "77.00"},
		},
		{
			name: "no tax",
			bill: &models.Bill{
				PayerID: "bob",
				Items: []models.Item{{
					Description: "Coffee",
					Cost:        money.MustParse("7.50"),
					Assignments: []models.Assignment{
						{UserID: "alice", Fraction: frac("0.5")},
						{UserID: "bob", Fraction: frac("0.5")},
					},
				}},
			},
			want: map[string]string{"alice": "3.75", "bob": "3.75"},
		},
		{
			name: "unassigned user absent from result",
			bill: &models.Bill{
				PayerID: "carol",
				Tax:     money.MustParse("2.00"),
				Items: []models.Item{{
					Description: "Cake",
					Cost:        money.MustParse("20.00"),
					Assignments: []models.Assignment{{UserID: "alice", Fraction: frac("1")}},
				}},
			},
			validateFunc: func(t *testing.T, shares map[string]money.Money) {
				if _, ok := shares["carol"]; ok {
					t.Error("payer with no assignment must not appear in shares")
				}
				if got := shares["alice"].String(); got != "22.00" {
					t.Errorf("alice share = %s, want 22.00", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := ComputeShares(tt.bill)
			if err != nil {
				t.Fatalf("ComputeShares() error = %v", err)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, shares)
				return
			}
			if len(shares) != len(tt.want) {
				t.Fatalf("got %d shares, want %d", len(shares), len(tt.want))
			}
			for userID, want := range tt.want {
				got, ok := shares[userID]
				if !ok {
					t.Fatalf("no share for %s", userID)
				}
				if got.String() != want {
					t.Errorf("%s share = %s, want %s", userID, got, want)
				}
			}
		})
	}
}

func TestComputeSharesInvariant(t *testing.T) {
	// A bill with no items never passes validation; if one reaches the
	// calculator anyway, that is a defect signal, not a validation error.
	_, err := ComputeShares(&models.Bill{PayerID: "alice"})
	if !errors.Is(err, ErrInvariant) {
		t.Fatalf("ComputeShares() error = %v, want ErrInvariant", err)
	}
}

func TestComputeSharesRoundingDrift(t *testing.T) {
	// Independent per-participant rounding may leave the sum of shares off
	// the true bill total, but only by a bounded couple of cents.
	third := decimal.NewFromInt(1).Div(decimal.NewFromInt(3))
	bill := &models.Bill{
		PayerID: "alice",
		Tax:     money.MustParse("0.01"),
		Items: []models.Item{{
			Description: "Oddly priced",
			Cost:        money.MustParse("10.00"),
			Assignments: []models.Assignment{
				{UserID: "alice", Fraction: third},
				{UserID: "bob", Fraction: third},
				{UserID: "carol", Fraction: third},
			},
		}},
	}

	shares, err := ComputeShares(bill)
	if err != nil {
		t.Fatalf("ComputeShares() error = %v", err)
	}

	sum := money.Zero
	for _, s := range shares {
		sum = sum.Add(s)
	}
	drift := sum.Sub(bill.Total()).Abs()
	if drift.Cmp(money.MustParse("0.02")) > 0 {
		t.Errorf("share sum %s drifts %s from bill total %s, want <= 0.02",
			sum, drift, bill.Total())
	}
}

func TestComputeSharesDeterministic(t *testing.T) {
	bill := &models.Bill{
		PayerID: "alice",
		Tax:     money.MustParse("3.33"),
		Items: []models.Item{{
			Description: "Tapas",
			Cost:        money.MustParse("41.70"),
			Assignments: []models.Assignment{
				{UserID: "alice", Fraction: frac("0.25")},
				{UserID: "bob", Fraction: frac("0.75")},
			},
		}},
	}

	first, err := ComputeShares(bill)
	if err != nil {
		t.Fatalf("ComputeShares() error = %v", err)
	}
	second, err := ComputeShares(bill)
	if err != nil {
		t.Fatalf("ComputeShares() error = %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("result sizes differ: %d vs %d", len(first), len(second))
	}
	for userID, share := range first {
		if !share.Equal(second[userID]) {
			t.Errorf("%s share differs between runs: %s vs %s", userID, share, second[userID])
		}
	}
}
