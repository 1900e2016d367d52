package calculator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/splitfool/splitfool/internal/models"
)

// FractionSumTolerance is how far an item's fraction sum may deviate from
// 1.0 and still be accepted. It absorbs decimal representation artifacts
// from manual entry (0.33 + 0.33 + 0.34); sums outside it are rejected, not
// auto-corrected.
var FractionSumTolerance = decimal.RequireFromString("0.001")

var (
	decimalOne = decimal.NewFromInt(1)
)

// ValidateBill checks the structural invariants of a bill draft before it is
// accepted. userExists reports whether a user ID references an existing
// user.
//
// Checks run in a fixed order and fail on the first violation; surfacing all
// problems across repeated attempts is the caller's job. ValidateBill is a
// pure check with no side effects, safe to call repeatedly on draft edits.
func ValidateBill(bill *models.Bill, userExists func(id string) bool) error {
	if !userExists(bill.PayerID) {
		return fmt.Errorf("%w: %q", ErrUnknownPayer, bill.PayerID)
	}

	if len(bill.Items) == 0 {
		return ErrNoItems
	}

	if len(bill.Description) > models.MaxBillDescriptionLen {
		return fmt.Errorf("%w: bill description exceeds %d characters",
			ErrDescriptionTooLong, models.MaxBillDescriptionLen)
	}

	for _, item := range bill.Items {
		if err := validateItem(item, userExists); err != nil {
			return err
		}
	}

	if bill.Tax.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrNegativeTax, bill.Tax)
	}

	return nil
}

func validateItem(item models.Item, userExists func(id string) bool) error {
	if isBlank(item.Description) {
		return ErrEmptyItemDescription
	}
	if len(item.Description) > models.MaxItemDescriptionLen {
		return fmt.Errorf("%w: item description exceeds %d characters",
			ErrDescriptionTooLong, models.MaxItemDescriptionLen)
	}

	if !item.Cost.IsPositive() {
		return fmt.Errorf("%w: item %q costs %s", ErrNonPositiveCost, item.Description, item.Cost)
	}

	if len(item.Assignments) == 0 {
		return fmt.Errorf("%w: item %q", ErrNoAssignments, item.Description)
	}

	sum := decimal.Zero
	for _, a := range item.Assignments {
		if !a.Fraction.IsPositive() || a.Fraction.GreaterThan(decimalOne) {
			return fmt.Errorf("%w: got %s on item %q", ErrFractionRange, a.Fraction, item.Description)
		}
		sum = sum.Add(a.Fraction)
	}

	if sum.Sub(decimalOne).Abs().GreaterThan(FractionSumTolerance) {
		return fmt.Errorf("%w: item %q fractions sum to %s", ErrFractionSum, item.Description, sum)
	}

	for _, a := range item.Assignments {
		if !userExists(a.UserID) {
			return fmt.Errorf("%w: %q on item %q", ErrUnknownParticipant, a.UserID, item.Description)
		}
	}

	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
