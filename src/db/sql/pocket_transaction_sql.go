package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"saku-server/src/models"
)

const pocketTransactionColumns = `id, user_id, transaction_type, from_pocket, to_pocket, amount, date, description, notes, related_transaction, created_at`

func scanPocketTransaction(row pgx.Row) (*models.PocketTransaction, error) {
	var pt models.PocketTransaction
	err := row.Scan(
		&pt.ID,
		&pt.UserID,
		&pt.TransactionType,
		&pt.FromPocket,
		&pt.ToPocket,
		&pt.Amount,
		&pt.Date,
		&pt.Description,
		&pt.Notes,
		&pt.RelatedTransaction,
		&pt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pt, nil
}

func CreatePocketTransaction(ctx context.Context, pool *pgxpool.Pool, pt *models.PocketTransaction) (*models.PocketTransaction, error) {
	query := `
		INSERT INTO pocket_transactions (user_id, transaction_type, from_pocket, to_pocket, amount, date, description, notes, related_transaction)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + pocketTransactionColumns
	return scanPocketTransaction(pool.QueryRow(ctx, query,
		pt.UserID, pt.TransactionType, pt.FromPocket, pt.ToPocket, pt.Amount,
		pt.Date, pt.Description, pt.Notes, pt.RelatedTransaction))
}

func GetPocketTransactionByID(ctx context.Context, pool *pgxpool.Pool, userID, pocketTransactionID int64) (*models.PocketTransaction, error) {
	query := `SELECT ` + pocketTransactionColumns + ` FROM pocket_transactions WHERE id = $1 AND user_id = $2`
	return scanPocketTransaction(pool.QueryRow(ctx, query, pocketTransactionID, userID))
}

func GetAllPocketTransactionsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.PocketTransaction, error) {
	query := `SELECT ` + pocketTransactionColumns + ` FROM pocket_transactions WHERE user_id = $1 ORDER BY date DESC`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.PocketTransaction
	for rows.Next() {
		pt, err := scanPocketTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *pt)
	}
	return transactions, rows.Err()
}

func DeletePocketTransaction(ctx context.Context, pool *pgxpool.Pool, userID, pocketTransactionID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM pocket_transactions WHERE id = $1 AND user_id = $2`, pocketTransactionID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("pocket transaction not found")
	}
	return nil
}
