package models

import "time"

// FinancialScore is an immutable history row; one is appended per snapshot
// recalculation. Normal flow never updates or deletes these.
type FinancialScore struct {
	ID                    int64     `json:"id"`
	UserID                int64     `json:"user_id"`
	Score                 int       `json:"score"`
	EvaluatedAt           time.Time `json:"evaluated_at"`
	DebtToIncomeRatio     float64   `json:"debt_to_income_ratio"`
	SavingsToIncomeRatio  float64   `json:"savings_to_income_ratio"`
	ExpensesToIncomeRatio float64   `json:"expenses_to_income_ratio"`
	NetWorthRatio         float64   `json:"net_worth_ratio"`
}
