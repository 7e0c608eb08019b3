package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"saku-server/src/models"
)

const subGoalColumns = `id, user_id, goal_id, name, description, allocated_amount, asset_type, notes, created_at`

func scanSubGoal(row pgx.Row) (*models.SubGoal, error) {
	var sg models.SubGoal
	err := row.Scan(
		&sg.ID,
		&sg.UserID,
		&sg.GoalID,
		&sg.Name,
		&sg.Description,
		&sg.AllocatedAmount,
		&sg.AssetType,
		&sg.Notes,
		&sg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sg, nil
}

func CreateSubGoal(ctx context.Context, pool *pgxpool.Pool, subGoal *models.SubGoal) (*models.SubGoal, error) {
	query := `
		INSERT INTO sub_goals (user_id, goal_id, name, description, allocated_amount, asset_type, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + subGoalColumns
	return scanSubGoal(pool.QueryRow(ctx, query,
		subGoal.UserID, subGoal.GoalID, subGoal.Name, subGoal.Description,
		subGoal.AllocatedAmount, subGoal.AssetType, subGoal.Notes))
}

func GetSubGoalByID(ctx context.Context, pool *pgxpool.Pool, userID, subGoalID int64) (*models.SubGoal, error) {
	query := `SELECT ` + subGoalColumns + ` FROM sub_goals WHERE id = $1 AND user_id = $2`
	return scanSubGoal(pool.QueryRow(ctx, query, subGoalID, userID))
}

func GetSubGoalsForGoal(ctx context.Context, pool *pgxpool.Pool, goalID int64) ([]models.SubGoal, error) {
	query := `SELECT ` + subGoalColumns + ` FROM sub_goals WHERE goal_id = $1 ORDER BY created_at`
	rows, err := pool.Query(ctx, query, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subGoals []models.SubGoal
	for rows.Next() {
		sg, err := scanSubGoal(rows)
		if err != nil {
			return nil, err
		}
		subGoals = append(subGoals, *sg)
	}
	return subGoals, rows.Err()
}

func UpdateSubGoal(ctx context.Context, pool *pgxpool.Pool, subGoal *models.SubGoal) (*models.SubGoal, error) {
	query := `
		UPDATE sub_goals
		SET name = $1, description = $2, allocated_amount = $3, asset_type = $4, notes = $5
		WHERE id = $6 AND user_id = $7
		RETURNING ` + subGoalColumns
	return scanSubGoal(pool.QueryRow(ctx, query,
		subGoal.Name, subGoal.Description, subGoal.AllocatedAmount, subGoal.AssetType,
		subGoal.Notes, subGoal.ID, subGoal.UserID))
}

func UpdateSubGoalAllocation(ctx context.Context, pool *pgxpool.Pool, subGoalID int64, amount float64) error {
	cmd, err := pool.Exec(ctx, `UPDATE sub_goals SET allocated_amount = $1 WHERE id = $2`, amount, subGoalID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("sub-goal not found")
	}
	return nil
}

func DeleteSubGoal(ctx context.Context, pool *pgxpool.Pool, userID, subGoalID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM sub_goals WHERE id = $1 AND user_id = $2`, subGoalID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("sub-goal not found")
	}
	return nil
}
