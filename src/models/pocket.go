package models

import "time"

// Pocket is a named sub-account. Balance is a denormalized running total kept
// in sync by the ledger engine; it must never be written by any other path.
type Pocket struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Balance      float64   `json:"balance"`
	PocketType   string    `json:"pocket_type"`
	TargetAmount *float64  `json:"target_amount"`
	IsActive     bool      `json:"is_active"`
	Icon         string    `json:"icon"`
	Color        string    `json:"color"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
