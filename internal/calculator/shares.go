// Package calculator implements the bill-calculation and balance-netting
// engine: validating bill drafts, computing each participant's owed share
// of a bill with proportional tax, and netting many bills into pairwise
// balances. Everything here is a pure, terminating computation over
// in-memory values; persistence belongs to the storage package.
package calculator

import (
	"fmt"

	"github.com/splitfool/splitfool/internal/models"
	"github.com/splitfool/splitfool/internal/money"
)

// ComputeShares computes each assigned participant's total owed amount for
// one validated bill.
//
// Tax is distributed proportionally to consumption, not equally:
//
//	Pizza $30 -> Alice 100% = $30.00
//	Salad $15 -> Bob 50%, Carol 50% = $7.50 each
//	Tax $12, subtotal $45
//	Alice: $30/$45 x $12 = $8.00 tax; Bob and Carol: $2.00 each
//
// All intermediate values are exact; rounding happens once per participant,
// on the final subtotal-plus-tax amount. The independent per-participant
// rounding can leave the sum of shares a cent or two off the true bill
// total; that remainder is deliberately not reassigned to anyone.
//
// The payer's own consumption is computed like anyone else's; netting it
// against "the payer paid in full" happens in NetBalances. Users with no
// assignment on the bill are absent from the result.
func ComputeShares(bill *models.Bill) (map[string]money.Money, error) {
	grand := bill.Subtotal()
	if !grand.IsPositive() {
		// Unreachable for a validated bill: at least one item with a
		// positive cost is guaranteed.
		return nil, fmt.Errorf("%w: bill subtotal %s is not positive", ErrInvariant, grand)
	}

	// Exact per-user consumption across all items.
	subtotals := make(map[string]money.Money)
	for _, item := range bill.Items {
		for _, a := range item.Assignments {
			contribution := item.Cost.MulFraction(a.Fraction)
			subtotals[a.UserID] = subtotals[a.UserID].Add(contribution)
		}
	}

	shares := make(map[string]money.Money, len(subtotals))
	for userID, subtotal := range subtotals {
		taxShare := bill.Tax.ProportionOf(subtotal, grand)
		shares[userID] = subtotal.Add(taxShare).Round()
	}
	return shares, nil
}
