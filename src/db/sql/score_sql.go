package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"saku-server/src/models"
)

const scoreColumns = `id, user_id, score, evaluated_at, debt_to_income_ratio, savings_to_income_ratio, expenses_to_income_ratio, net_worth_ratio`

func scanScore(row pgx.Row) (*models.FinancialScore, error) {
	var s models.FinancialScore
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Score,
		&s.EvaluatedAt,
		&s.DebtToIncomeRatio,
		&s.SavingsToIncomeRatio,
		&s.ExpensesToIncomeRatio,
		&s.NetWorthRatio,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateScore appends a score history row. Normal flow never updates or
// deletes these.
func CreateScore(ctx context.Context, pool *pgxpool.Pool, score *models.FinancialScore) (*models.FinancialScore, error) {
	query := `
		INSERT INTO financial_scores (user_id, score, evaluated_at, debt_to_income_ratio, savings_to_income_ratio, expenses_to_income_ratio, net_worth_ratio)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + scoreColumns
	return scanScore(pool.QueryRow(ctx, query,
		score.UserID, score.Score, score.EvaluatedAt, score.DebtToIncomeRatio,
		score.SavingsToIncomeRatio, score.ExpensesToIncomeRatio, score.NetWorthRatio))
}

func GetScoresForUser(ctx context.Context, pool *pgxpool.Pool, userID int64, limit int) ([]models.FinancialScore, error) {
	query := `SELECT ` + scoreColumns + ` FROM financial_scores WHERE user_id = $1 ORDER BY evaluated_at DESC LIMIT $2`
	rows, err := pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []models.FinancialScore
	for rows.Next() {
		s, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		scores = append(scores, *s)
	}
	return scores, rows.Err()
}

func GetLatestScore(ctx context.Context, pool *pgxpool.Pool, userID int64) (*models.FinancialScore, error) {
	query := `SELECT ` + scoreColumns + ` FROM financial_scores WHERE user_id = $1 ORDER BY evaluated_at DESC LIMIT 1`
	score, err := scanScore(pool.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return score, nil
}
