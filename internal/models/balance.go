package models

import "github.com/splitfool/splitfool/internal/money"

// Balance represents the net debt remaining between two users after
// offsetting mutual amounts.
//
// Balance is derived, never persisted: it is recomputed on every query from
// the outstanding bills. Amount is always strictly positive and debtor and
// creditor are always different users; pairs that net to a cent or less are
// suppressed by the aggregator.
type Balance struct {
	// DebtorID is the user who owes money.
	DebtorID string

	// CreditorID is the user who is owed money.
	CreditorID string

	// Amount is the net amount owed, rounded to display scale.
	Amount money.Money
}
