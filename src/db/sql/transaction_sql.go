package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"saku-server/src/models"
)

const transactionColumns = `id, user_id, type, category, amount, date, description, source_pocket, related_goal, related_sub_goal, created_at`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Type,
		&t.Category,
		&t.Amount,
		&t.Date,
		&t.Description,
		&t.SourcePocket,
		&t.RelatedGoal,
		&t.RelatedSubGoal,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	defer rows.Close()
	var transactions []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}

func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, tx *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, type, category, amount, date, description, source_pocket, related_goal, related_sub_goal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + transactionColumns
	return scanTransaction(pool.QueryRow(ctx, query,
		tx.UserID, tx.Type, tx.Category, tx.Amount, tx.Date, tx.Description,
		tx.SourcePocket, tx.RelatedGoal, tx.RelatedSubGoal))
}

func GetTransactionByID(ctx context.Context, pool *pgxpool.Pool, userID, transactionID int64) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2`
	return scanTransaction(pool.QueryRow(ctx, query, transactionID, userID))
}

func GetAllTransactionsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 ORDER BY date DESC`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

func GetRecentTransactionsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64, limit int) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 ORDER BY date DESC LIMIT $2`
	rows, err := pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

// GetTransactionsAfter returns transactions dated strictly after the given
// time, the window the snapshot recalculator folds over.
func GetTransactionsAfter(ctx context.Context, pool *pgxpool.Pool, userID int64, after time.Time) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 AND date > $2 ORDER BY date`
	rows, err := pool.Query(ctx, query, userID, after)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

func CountTransactionsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) (int64, error) {
	var count int64
	err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

// GetMonthlyTotals sums income and expense amounts for transactions dated on
// or after monthStart.
func GetMonthlyTotals(ctx context.Context, pool *pgxpool.Pool, userID int64, monthStart time.Time) (income, expenses float64, err error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM transactions
		WHERE user_id = $1 AND date >= $2
	`
	err = pool.QueryRow(ctx, query, userID, monthStart).Scan(&income, &expenses)
	return income, expenses, err
}

func UpdateTransaction(ctx context.Context, pool *pgxpool.Pool, tx *models.Transaction) (*models.Transaction, error) {
	query := `
		UPDATE transactions
		SET type = $1, category = $2, amount = $3, date = $4, description = $5,
		    source_pocket = $6, related_goal = $7, related_sub_goal = $8
		WHERE id = $9 AND user_id = $10
		RETURNING ` + transactionColumns
	return scanTransaction(pool.QueryRow(ctx, query,
		tx.Type, tx.Category, tx.Amount, tx.Date, tx.Description,
		tx.SourcePocket, tx.RelatedGoal, tx.RelatedSubGoal, tx.ID, tx.UserID))
}

func DeleteTransaction(ctx context.Context, pool *pgxpool.Pool, userID, transactionID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, transactionID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found")
	}
	return nil
}
