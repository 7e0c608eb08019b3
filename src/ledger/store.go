package ledger

import (
	"context"
	"time"

	"saku-server/src/models"
)

// Store is the persistence surface the engines run against. The SQL layer
// implements it for Postgres; tests use an in-memory implementation.
//
// Lookups scoped by userID return a *NotFoundError when no row matches, never
// (nil, nil).
type Store interface {
	GetPocket(ctx context.Context, userID, pocketID int64) (*models.Pocket, error)
	UpdatePocketBalance(ctx context.Context, pocketID int64, balance float64) error
	// CommitTransfer persists both legs of a transfer. The source debit
	// commits together with the pending intent row, the destination credit
	// together with the intent's completion, so an interrupted transfer
	// leaves a pending intent describing exactly what to compensate.
	CommitTransfer(ctx context.Context, intent *models.TransferIntent, fromBalance, toBalance float64) error

	GetSubGoal(ctx context.Context, userID, subGoalID int64) (*models.SubGoal, error)
	UpdateSubGoalAllocation(ctx context.Context, subGoalID int64, amount float64) error
	ListSubGoalsForGoal(ctx context.Context, goalID int64) ([]models.SubGoal, error)

	GetGoal(ctx context.Context, userID, goalID int64) (*models.FinancialGoal, error)
	UpdateGoalDerived(ctx context.Context, goalID int64, derived models.GoalDerived) error

	// LatestSnapshot returns (nil, nil) when the user has no snapshot yet.
	LatestSnapshot(ctx context.Context, userID int64) (*models.FinancialSnapshot, error)
	ListTransactionsAfter(ctx context.Context, userID int64, after time.Time) ([]models.Transaction, error)
	CreateSnapshot(ctx context.Context, snapshot *models.FinancialSnapshot) (*models.FinancialSnapshot, error)
	CreateScore(ctx context.Context, score *models.FinancialScore) (*models.FinancialScore, error)

	ListPendingIntents(ctx context.Context) ([]models.TransferIntent, error)
	MarkIntentReversed(ctx context.Context, token string) error
}
