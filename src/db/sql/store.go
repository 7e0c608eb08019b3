package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"saku-server/src/ledger"
	"saku-server/src/models"
)

// Store adapts the SQL function layer to the ledger's storage interface,
// translating missing rows into the ledger's NotFoundError.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func notFound(err error, collection string, id int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return &ledger.NotFoundError{Collection: collection, ID: id}
	}
	return err
}

func (s *Store) GetPocket(ctx context.Context, userID, pocketID int64) (*models.Pocket, error) {
	pocket, err := GetPocketByID(ctx, s.pool, userID, pocketID)
	if err != nil {
		return nil, notFound(err, "pockets", pocketID)
	}
	return pocket, nil
}

func (s *Store) UpdatePocketBalance(ctx context.Context, pocketID int64, balance float64) error {
	return UpdatePocketBalance(ctx, s.pool, pocketID, balance)
}

func (s *Store) CommitTransfer(ctx context.Context, intent *models.TransferIntent, fromBalance, toBalance float64) error {
	return CommitTransfer(ctx, s.pool, intent, fromBalance, toBalance)
}

func (s *Store) GetSubGoal(ctx context.Context, userID, subGoalID int64) (*models.SubGoal, error) {
	subGoal, err := GetSubGoalByID(ctx, s.pool, userID, subGoalID)
	if err != nil {
		return nil, notFound(err, "sub-goals", subGoalID)
	}
	return subGoal, nil
}

func (s *Store) UpdateSubGoalAllocation(ctx context.Context, subGoalID int64, amount float64) error {
	return UpdateSubGoalAllocation(ctx, s.pool, subGoalID, amount)
}

func (s *Store) ListSubGoalsForGoal(ctx context.Context, goalID int64) ([]models.SubGoal, error) {
	return GetSubGoalsForGoal(ctx, s.pool, goalID)
}

func (s *Store) GetGoal(ctx context.Context, userID, goalID int64) (*models.FinancialGoal, error) {
	goal, err := GetGoalByID(ctx, s.pool, userID, goalID)
	if err != nil {
		return nil, notFound(err, "financial-goals", goalID)
	}
	return goal, nil
}

func (s *Store) UpdateGoalDerived(ctx context.Context, goalID int64, derived models.GoalDerived) error {
	return UpdateGoalDerived(ctx, s.pool, goalID, derived)
}

func (s *Store) LatestSnapshot(ctx context.Context, userID int64) (*models.FinancialSnapshot, error) {
	return GetLatestSnapshot(ctx, s.pool, userID)
}

func (s *Store) ListTransactionsAfter(ctx context.Context, userID int64, after time.Time) ([]models.Transaction, error) {
	return GetTransactionsAfter(ctx, s.pool, userID, after)
}

func (s *Store) CreateSnapshot(ctx context.Context, snapshot *models.FinancialSnapshot) (*models.FinancialSnapshot, error) {
	return CreateSnapshot(ctx, s.pool, snapshot)
}

func (s *Store) CreateScore(ctx context.Context, score *models.FinancialScore) (*models.FinancialScore, error) {
	return CreateScore(ctx, s.pool, score)
}

func (s *Store) ListPendingIntents(ctx context.Context) ([]models.TransferIntent, error) {
	return GetPendingIntents(ctx, s.pool)
}

func (s *Store) MarkIntentReversed(ctx context.Context, token string) error {
	return MarkIntentReversed(ctx, s.pool, token)
}
