package calculator

import (
	"fmt"
	"sort"

	"github.com/splitfool/splitfool/internal/models"
	"github.com/splitfool/splitfool/internal/money"
)

// noiseFloor is the sub-cent threshold below which a netted balance is
// treated as settled and suppressed.
var noiseFloor = money.MustParse("0.01")

type debtKey struct {
	debtor   string
	creditor string
}

// NetBalances aggregates a set of bills into net pairwise debts. The caller
// passes exactly the outstanding window: bills created strictly after the
// latest settlement, or all bills if none exists.
//
// For each bill, every non-payer participant owes their computed share to
// the payer. Directed debts accumulate across bills, then mutual pairs are
// netted: if X owes Y and Y owes X, only the difference survives, in the
// direction of the larger total. Netting is pairwise only — "A owes B, B
// owes C" is never collapsed into "A owes C".
//
// Balances that round to a cent or less are suppressed. Output order is
// debtor then creditor, purely so repeated renders are stable.
func NetBalances(bills []*models.Bill) ([]models.Balance, error) {
	gross := make(map[debtKey]money.Money)

	for _, bill := range bills {
		shares, err := ComputeShares(bill)
		if err != nil {
			return nil, fmt.Errorf("bill %s: %w", bill.ID, err)
		}
		for userID, share := range shares {
			if userID == bill.PayerID {
				// The payer owes nothing to themselves.
				continue
			}
			if !share.IsPositive() {
				continue
			}
			key := debtKey{debtor: userID, creditor: bill.PayerID}
			gross[key] = gross[key].Add(share)
		}
	}

	return netMutualPairs(gross), nil
}

// netMutualPairs offsets each pair's mutual debts and keeps the positive
// remainder.
func netMutualPairs(gross map[debtKey]money.Money) []models.Balance {
	processed := make(map[debtKey]bool, len(gross))
	var balances []models.Balance

	for key, amount := range gross {
		if processed[key] {
			continue
		}
		reverse := debtKey{debtor: key.creditor, creditor: key.debtor}
		processed[key] = true
		processed[reverse] = true

		net := amount.Sub(gross[reverse])
		debtor, creditor := key.debtor, key.creditor
		if net.IsNegative() {
			debtor, creditor = creditor, debtor
			net = net.Abs()
		}

		rounded := net.Round()
		if rounded.Cmp(noiseFloor) <= 0 {
			continue
		}
		balances = append(balances, models.Balance{
			DebtorID:   debtor,
			CreditorID: creditor,
			Amount:     rounded,
		})
	}

	sort.Slice(balances, func(i, j int) bool {
		if balances[i].DebtorID != balances[j].DebtorID {
			return balances[i].DebtorID < balances[j].DebtorID
		}
		return balances[i].CreditorID < balances[j].CreditorID
	})
	return balances
}
