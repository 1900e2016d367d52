package models

import (
	"github.com/shopspring/decimal"

	"github.com/splitfool/splitfool/internal/money"
)

// Description length limits.
const (
	MaxBillDescriptionLen = 500
	MaxItemDescriptionLen = 200
)

// Bill represents one finalized expense event.
//
// A bill is immutable once created. It must have at least one item, every
// item must have at least one assignment, and the payer must reference an
// existing user; the calculator package enforces those invariants before a
// bill is accepted.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// PayerID is the user who paid the bill in full.
	PayerID string

	// Description is a human-readable label, at most MaxBillDescriptionLen
	// characters.
	Description string

	// Tax is the extra amount (tax, tip, fees) on top of the item costs.
	// Non-negative. Distributed across participants proportionally to
	// their consumption.
	Tax money.Money

	// Items are the costed lines on the bill, in entry order.
	Items []Item

	// CreatedAt is the Unix nanosecond timestamp when the bill was
	// created. Balance queries compare it against the latest settlement
	// cutoff.
	CreatedAt int64
}

// Item represents a single costed line within a bill.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// Description is the item label, at most MaxItemDescriptionLen
	// characters.
	Description string

	// Cost is the price of the item. Strictly positive.
	Cost money.Money

	// Assignments attribute fractions of this item's cost to users.
	// The fractions must sum to 1.0 within FractionSumTolerance.
	Assignments []Assignment
}

// Assignment attributes a fraction of one item's cost to one user.
type Assignment struct {
	// UserID is the user this share belongs to.
	UserID string

	// Fraction is the portion of the item cost, in (0, 1].
	Fraction decimal.Decimal
}

// Subtotal returns the exact sum of all item costs on the bill.
func (b *Bill) Subtotal() money.Money {
	sum := money.Zero
	for _, item := range b.Items {
		sum = sum.Add(item.Cost)
	}
	return sum
}

// Total returns the exact bill total: item costs plus tax.
func (b *Bill) Total() money.Money {
	return b.Subtotal().Add(b.Tax)
}

// ParticipantIDs returns the set of users assigned to any item on the bill,
// as a membership map. The payer is included only if they consumed
// something.
func (b *Bill) ParticipantIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, item := range b.Items {
		for _, a := range item.Assignments {
			ids[a.UserID] = true
		}
	}
	return ids
}
