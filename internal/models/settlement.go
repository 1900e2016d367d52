package models

// Settlement represents a balance-reset cutoff.
//
// Settlements never delete or alter bills; they only move the window of
// bills the balance aggregator considers outstanding. Only bills created
// strictly after the latest settlement count. Settling with nothing
// outstanding is legal and still creates a record.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// SettledAt is the Unix nanosecond timestamp of the cutoff.
	SettledAt int64

	// Note is an optional free-text description.
	Note string
}
