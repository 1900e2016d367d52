package calculator

import "errors"

// Validation error kinds. Each check in ValidateBill fails with exactly one
// of these, wrapped with the offending detail, so callers can match the kind
// with errors.Is and render a specific message.
var (
	// ErrUnknownPayer means the bill's payer is not an existing user.
	ErrUnknownPayer = errors.New("payer is not a known user")

	// ErrNoItems means the bill has no line items.
	ErrNoItems = errors.New("bill must have at least one item")

	// ErrDescriptionTooLong means a bill or item description exceeds its
	// length limit.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrEmptyItemDescription means an item has a blank description.
	ErrEmptyItemDescription = errors.New("item description cannot be empty")

	// ErrNonPositiveCost means an item's cost is zero or negative.
	ErrNonPositiveCost = errors.New("item cost must be positive")

	// ErrNoAssignments means an item has no share assignments.
	ErrNoAssignments = errors.New("item must have at least one assignment")

	// ErrFractionRange means an assignment's fraction is outside (0, 1].
	ErrFractionRange = errors.New("assignment fraction must be between 0 and 1")

	// ErrFractionSum means an item's fractions do not sum to 1.0 within
	// tolerance.
	ErrFractionSum = errors.New("item fractions must sum to 1.0")

	// ErrUnknownParticipant means an assignment references a user that
	// does not exist.
	ErrUnknownParticipant = errors.New("assigned user is not a known user")

	// ErrNegativeTax means the bill's extra/tax amount is negative.
	ErrNegativeTax = errors.New("tax must be non-negative")

	// ErrInvariant signals a broken computation invariant: a bill reached
	// the calculator without passing validation. It marks a programming
	// defect, not a user-correctable input problem.
	ErrInvariant = errors.New("calculation invariant violated")
)
