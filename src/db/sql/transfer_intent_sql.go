package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"saku-server/src/models"
)

const intentColumns = `id, token, user_id, from_pocket, to_pocket, amount, status, created_at`

func scanIntent(row pgx.Row) (*models.TransferIntent, error) {
	var in models.TransferIntent
	err := row.Scan(
		&in.ID,
		&in.Token,
		&in.UserID,
		&in.FromPocket,
		&in.ToPocket,
		&in.Amount,
		&in.Status,
		&in.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

// CommitTransfer persists a transfer in two phases. Phase one commits the
// pending intent together with the source debit; phase two commits the
// destination credit together with the intent flipping to complete. A crash
// between the phases leaves a pending intent, which the recovery sweep
// compensates by crediting the source back.
func CommitTransfer(ctx context.Context, pool *pgxpool.Pool, intent *models.TransferIntent, fromBalance, toBalance float64) error {
	phase1, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin debit phase: %w", err)
	}
	_, err = phase1.Exec(ctx, `
		INSERT INTO transfer_intents (token, user_id, from_pocket, to_pocket, amount, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')`,
		intent.Token, intent.UserID, intent.FromPocket, intent.ToPocket, intent.Amount)
	if err == nil {
		_, err = phase1.Exec(ctx,
			`UPDATE pockets SET balance = $1, updated_at = NOW() WHERE id = $2`, fromBalance, intent.FromPocket)
	}
	if err != nil {
		phase1.Rollback(ctx)
		return fmt.Errorf("debit phase: %w", err)
	}
	if err := phase1.Commit(ctx); err != nil {
		return fmt.Errorf("commit debit phase: %w", err)
	}

	phase2, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin credit phase: %w", err)
	}
	_, err = phase2.Exec(ctx,
		`UPDATE pockets SET balance = $1, updated_at = NOW() WHERE id = $2`, toBalance, intent.ToPocket)
	if err == nil {
		_, err = phase2.Exec(ctx,
			`UPDATE transfer_intents SET status = 'complete' WHERE token = $1`, intent.Token)
	}
	if err != nil {
		// The pending intent stays behind for RecoverPendingTransfers.
		phase2.Rollback(ctx)
		return fmt.Errorf("credit phase: %w", err)
	}
	if err := phase2.Commit(ctx); err != nil {
		return fmt.Errorf("commit credit phase: %w", err)
	}
	return nil
}

func GetPendingIntents(ctx context.Context, pool *pgxpool.Pool) ([]models.TransferIntent, error) {
	query := `SELECT ` + intentColumns + ` FROM transfer_intents WHERE status = 'pending' ORDER BY created_at`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var intents []models.TransferIntent
	for rows.Next() {
		in, err := scanIntent(rows)
		if err != nil {
			return nil, err
		}
		intents = append(intents, *in)
	}
	return intents, rows.Err()
}

func MarkIntentReversed(ctx context.Context, pool *pgxpool.Pool, token string) error {
	cmd, err := pool.Exec(ctx,
		`UPDATE transfer_intents SET status = 'reversed' WHERE token = $1 AND status = 'pending'`, token)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("pending intent not found")
	}
	return nil
}
