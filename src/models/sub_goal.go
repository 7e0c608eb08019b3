package models

import "time"

// SubGoal is a named allocation bucket counting toward its parent goal's
// total. AllocatedAmount moves either by direct edit or by transactions that
// reference the sub-goal.
type SubGoal struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	GoalID          int64     `json:"goal_id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	AllocatedAmount float64   `json:"allocated_amount"`
	AssetType       string    `json:"asset_type"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}
