package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"saku-server/src/models"
)

const snapshotColumns = `id, user_id, monthly_income, monthly_expenses, total_assets, total_liabilities, net_worth, score, created_at`

func scanSnapshot(row pgx.Row) (*models.FinancialSnapshot, error) {
	var s models.FinancialSnapshot
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.MonthlyIncome,
		&s.MonthlyExpenses,
		&s.TotalAssets,
		&s.TotalLiabilities,
		&s.NetWorth,
		&s.Score,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSnapshot appends a new financial-data row. Snapshots are never
// updated in place.
func CreateSnapshot(ctx context.Context, pool *pgxpool.Pool, snapshot *models.FinancialSnapshot) (*models.FinancialSnapshot, error) {
	query := `
		INSERT INTO financial_data (user_id, monthly_income, monthly_expenses, total_assets, total_liabilities, net_worth, score)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + snapshotColumns
	return scanSnapshot(pool.QueryRow(ctx, query,
		snapshot.UserID, snapshot.MonthlyIncome, snapshot.MonthlyExpenses,
		snapshot.TotalAssets, snapshot.TotalLiabilities, snapshot.NetWorth, snapshot.Score))
}

// GetLatestSnapshot returns the most recently created snapshot for the user,
// or (nil, nil) when none exists.
func GetLatestSnapshot(ctx context.Context, pool *pgxpool.Pool, userID int64) (*models.FinancialSnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM financial_data WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`
	snapshot, err := scanSnapshot(pool.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}
