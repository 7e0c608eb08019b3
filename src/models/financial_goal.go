package models

import "time"

// FinancialGoal is a savings target. The GoalDerived fields stored on the row
// are a cache only; the live values are recomputed from the goal's sub-goals
// on every read.
type FinancialGoal struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	Name         string     `json:"name"`
	Description  *string    `json:"description"`
	TargetAmount float64    `json:"target_amount"`
	TargetDate   *time.Time `json:"target_date"`
	Priority     string     `json:"priority"`
	GoalDerived
	CreatedAt time.Time `json:"created_at"`
}

// GoalDerived holds the four never-authoritative fields projected from the
// goal's sub-goal allocations.
type GoalDerived struct {
	CurrentTotalAllocation  float64    `json:"current_total_allocation"`
	Progress                float64    `json:"progress"`
	RequiredMonthlySavings  *float64   `json:"required_monthly_savings"`
	EstimatedCompletionDate *time.Time `json:"estimated_completion_date"`
}

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
