package ledger

import "fmt"

// ValidationError rejects a mutation before any state change: missing
// required fields for the transaction type, identical source and destination
// pockets, non-positive amounts.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// InsufficientBalanceError rejects a withdrawal or transfer exceeding the
// source pocket's balance. It carries what the UI needs to explain the
// rejection. No mutation occurs.
type InsufficientBalanceError struct {
	PocketName string
	Balance    float64
	Required   float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("pocket %q has insufficient balance: have %.2f, need %.2f",
		e.PocketName, e.Balance, e.Required)
}

// NotFoundError means a referenced entity does not exist for the acting user.
// When it surfaces mid-cascade the primary write may already have committed;
// callers log and report it but do not roll the primary entity back.
type NotFoundError struct {
	Collection string
	ID         int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Collection, e.ID)
}
