package models

// MaxUserNameLen is the maximum length of a user's display name.
const MaxUserNameLen = 100

// User represents a participant in bill splitting.
//
// Users are created by explicit action and can only be deleted while they
// have no outstanding balance; that guard lives in the user service, which
// consults the balance aggregator.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the display name. Non-empty, at most MaxUserNameLen
	// characters, unique among users.
	Name string

	// CreatedAt is the Unix nanosecond timestamp when the user was created.
	CreatedAt int64
}
