package models

import "time"

const (
	IntentPending  = "pending"
	IntentComplete = "complete"
	IntentReversed = "reversed"
)

// TransferIntent is the write-ahead record for a two-leg pocket transfer. It
// is inserted as pending, marked complete in the same database transaction as
// the balance updates, and swept back by the recovery pass if it is still
// pending after a crash.
type TransferIntent struct {
	ID         int64     `json:"id"`
	Token      string    `json:"token"`
	UserID     int64     `json:"user_id"`
	FromPocket int64     `json:"from_pocket"`
	ToPocket   int64     `json:"to_pocket"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
