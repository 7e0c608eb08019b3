package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"saku-server/src/models"
)

const goalColumns = `id, user_id, name, description, target_amount, target_date, priority,
	current_total_allocation, progress, required_monthly_savings, estimated_completion_date, created_at`

func scanGoal(row pgx.Row) (*models.FinancialGoal, error) {
	var g models.FinancialGoal
	err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.Name,
		&g.Description,
		&g.TargetAmount,
		&g.TargetDate,
		&g.Priority,
		&g.CurrentTotalAllocation,
		&g.Progress,
		&g.RequiredMonthlySavings,
		&g.EstimatedCompletionDate,
		&g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func CreateGoal(ctx context.Context, pool *pgxpool.Pool, goal *models.FinancialGoal) (*models.FinancialGoal, error) {
	query := `
		INSERT INTO financial_goals (user_id, name, description, target_amount, target_date, priority)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + goalColumns
	return scanGoal(pool.QueryRow(ctx, query,
		goal.UserID, goal.Name, goal.Description, goal.TargetAmount, goal.TargetDate, goal.Priority))
}

func GetGoalByID(ctx context.Context, pool *pgxpool.Pool, userID, goalID int64) (*models.FinancialGoal, error) {
	query := `SELECT ` + goalColumns + ` FROM financial_goals WHERE id = $1 AND user_id = $2`
	return scanGoal(pool.QueryRow(ctx, query, goalID, userID))
}

func GetAllGoalsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.FinancialGoal, error) {
	query := `SELECT ` + goalColumns + ` FROM financial_goals WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.FinancialGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

func UpdateGoal(ctx context.Context, pool *pgxpool.Pool, goal *models.FinancialGoal) (*models.FinancialGoal, error) {
	query := `
		UPDATE financial_goals
		SET name = $1, description = $2, target_amount = $3, target_date = $4, priority = $5
		WHERE id = $6 AND user_id = $7
		RETURNING ` + goalColumns
	return scanGoal(pool.QueryRow(ctx, query,
		goal.Name, goal.Description, goal.TargetAmount, goal.TargetDate, goal.Priority, goal.ID, goal.UserID))
}

// UpdateGoalDerived refreshes the cached projection columns on the goal row.
func UpdateGoalDerived(ctx context.Context, pool *pgxpool.Pool, goalID int64, derived models.GoalDerived) error {
	query := `
		UPDATE financial_goals
		SET current_total_allocation = $1, progress = $2, required_monthly_savings = $3, estimated_completion_date = $4
		WHERE id = $5
	`
	_, err := pool.Exec(ctx, query,
		derived.CurrentTotalAllocation, derived.Progress, derived.RequiredMonthlySavings, derived.EstimatedCompletionDate, goalID)
	return err
}

func DeleteGoal(ctx context.Context, pool *pgxpool.Pool, userID, goalID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM financial_goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("goal not found")
	}
	return nil
}
