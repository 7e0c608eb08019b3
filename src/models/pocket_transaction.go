package models

import "time"

const (
	PocketTransfer = "transfer"
	PocketTopup    = "topup"
	PocketWithdraw = "withdraw"
)

// PocketTransaction is a movement of funds between pockets (or into/out of the
// pocket subsystem), distinct from income/expense transactions. The required
// pocket fields depend on TransactionType: transfer needs both, topup needs
// ToPocket, withdraw needs FromPocket.
type PocketTransaction struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	TransactionType    string    `json:"transaction_type"`
	FromPocket         *int64    `json:"from_pocket"`
	ToPocket           *int64    `json:"to_pocket"`
	Amount             float64   `json:"amount"`
	Date               time.Time `json:"date"`
	Description        *string   `json:"description"`
	Notes              *string   `json:"notes"`
	RelatedTransaction *int64    `json:"related_transaction"`
	CreatedAt          time.Time `json:"created_at"`
}
