package models

import "time"

// FinancialSnapshot is one point-in-time record of a user's financial position.
// Snapshots are append-only: every recalculation inserts a new row, and the
// "current" snapshot is the most recently created one for the user.
type FinancialSnapshot struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	MonthlyIncome    float64   `json:"monthly_income"`
	MonthlyExpenses  float64   `json:"monthly_expenses"`
	TotalAssets      float64   `json:"total_assets"`
	TotalLiabilities float64   `json:"total_liabilities"`
	NetWorth         float64   `json:"net_worth"`
	Score            int       `json:"score"`
	CreatedAt        time.Time `json:"created_at"`
}
