package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"saku-server/src/models"
)

const pocketColumns = `id, user_id, name, description, balance, pocket_type, target_amount, is_active, icon, color, created_at, updated_at`

func scanPocket(row pgx.Row) (*models.Pocket, error) {
	var p models.Pocket
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Description,
		&p.Balance,
		&p.PocketType,
		&p.TargetAmount,
		&p.IsActive,
		&p.Icon,
		&p.Color,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func CreatePocket(ctx context.Context, pool *pgxpool.Pool, pocket *models.Pocket) (*models.Pocket, error) {
	query := `
		INSERT INTO pockets (user_id, name, description, balance, pocket_type, target_amount, is_active, icon, color)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + pocketColumns
	return scanPocket(pool.QueryRow(ctx, query,
		pocket.UserID, pocket.Name, pocket.Description, pocket.Balance, pocket.PocketType,
		pocket.TargetAmount, pocket.IsActive, pocket.Icon, pocket.Color))
}

func GetPocketByID(ctx context.Context, pool *pgxpool.Pool, userID, pocketID int64) (*models.Pocket, error) {
	query := `SELECT ` + pocketColumns + ` FROM pockets WHERE id = $1 AND user_id = $2`
	return scanPocket(pool.QueryRow(ctx, query, pocketID, userID))
}

func GetAllPocketsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Pocket, error) {
	query := `SELECT ` + pocketColumns + ` FROM pockets WHERE user_id = $1 ORDER BY created_at`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pockets []models.Pocket
	for rows.Next() {
		p, err := scanPocket(rows)
		if err != nil {
			return nil, err
		}
		pockets = append(pockets, *p)
	}
	return pockets, rows.Err()
}

// UpdatePocket updates the descriptive fields. Balance is deliberately
// excluded: only the ledger engine touches it, through UpdatePocketBalance.
func UpdatePocket(ctx context.Context, pool *pgxpool.Pool, pocket *models.Pocket) (*models.Pocket, error) {
	query := `
		UPDATE pockets
		SET name = $1, description = $2, pocket_type = $3, target_amount = $4,
		    is_active = $5, icon = $6, color = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
		RETURNING ` + pocketColumns
	return scanPocket(pool.QueryRow(ctx, query,
		pocket.Name, pocket.Description, pocket.PocketType, pocket.TargetAmount,
		pocket.IsActive, pocket.Icon, pocket.Color, pocket.ID, pocket.UserID))
}

func UpdatePocketBalance(ctx context.Context, pool *pgxpool.Pool, pocketID int64, balance float64) error {
	cmd, err := pool.Exec(ctx,
		`UPDATE pockets SET balance = $1, updated_at = NOW() WHERE id = $2`, balance, pocketID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("pocket not found")
	}
	return nil
}

func DeletePocket(ctx context.Context, pool *pgxpool.Pool, userID, pocketID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM pockets WHERE id = $1 AND user_id = $2`, pocketID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("pocket not found")
	}
	return nil
}

// CreateDefaultPockets seeds the emergency-fund and savings pockets that
// accompany a user's main pocket.
func CreateDefaultPockets(ctx context.Context, pool *pgxpool.Pool, userID int64) error {
	emergencyTarget := 50_000_000.0
	emergencyDesc := "Kantong untuk dana darurat dan kebutuhan mendesak"
	savingsDesc := "Kantong untuk tabungan umum"

	defaults := []models.Pocket{
		{
			UserID:       userID,
			Name:         "Dana Darurat",
			Description:  &emergencyDesc,
			PocketType:   "emergency",
			TargetAmount: &emergencyTarget,
			IsActive:     true,
			Icon:         "emergency",
			Color:        "red",
		},
		{
			UserID:      userID,
			Name:        "Tabungan",
			Description: &savingsDesc,
			PocketType:  "savings",
			IsActive:    true,
			Icon:        "bank",
			Color:       "blue",
		},
	}
	for i := range defaults {
		if _, err := CreatePocket(ctx, pool, &defaults[i]); err != nil {
			return fmt.Errorf("create default pocket %q: %w", defaults[i].Name, err)
		}
	}
	return nil
}
