package ledger

import (
	"context"
	"fmt"
	"time"

	"saku-server/src/finance"
	"saku-server/src/models"
)

// SnapshotRecalculator rebuilds a user's live financial position from the
// most recent stored snapshot plus the transactions recorded after it, then
// appends a new FinancialScore and FinancialSnapshot row.
//
// This is re-derivation from a fixed base, not an in-place running balance:
// re-running it from the same base never double-counts, it only appends
// another history row. Concurrent runs for one user can therefore produce
// near-duplicate rows; that is accepted under the one-writer-per-user
// assumption.
type SnapshotRecalculator struct {
	store Store
}

func NewSnapshotRecalculator(store Store) *SnapshotRecalculator {
	return &SnapshotRecalculator{store: store}
}

// Recalculate is a no-op when the user has never submitted an evaluation.
// Otherwise it folds every transaction dated strictly after the base
// snapshot into totalAssets (income adds, expense subtracts) while monthly
// income, monthly expenses and liabilities carry forward unchanged; those
// three only move on a fresh manual evaluation.
func (s *SnapshotRecalculator) Recalculate(ctx context.Context, userID int64) error {
	base, err := s.store.LatestSnapshot(ctx, userID)
	if err != nil {
		return fmt.Errorf("load latest snapshot: %w", err)
	}
	if base == nil {
		return nil
	}

	transactions, err := s.store.ListTransactionsAfter(ctx, userID, base.CreatedAt)
	if err != nil {
		return fmt.Errorf("load transactions since snapshot: %w", err)
	}

	totalAssets := base.TotalAssets
	for _, tx := range transactions {
		if tx.Type == models.TransactionIncome {
			totalAssets += tx.Amount
		} else {
			totalAssets -= tx.Amount
		}
	}

	return s.append(ctx, userID, finance.SnapshotInput{
		MonthlyIncome:    base.MonthlyIncome,
		MonthlyExpenses:  base.MonthlyExpenses,
		TotalAssets:      totalAssets,
		TotalLiabilities: base.TotalLiabilities,
	})
}

// SubmitEvaluation records a fresh manual evaluation as the new base
// snapshot, with the score computed server-side.
func (s *SnapshotRecalculator) SubmitEvaluation(ctx context.Context, userID int64, in finance.SnapshotInput) (*models.FinancialSnapshot, error) {
	if in.MonthlyIncome < 0 || in.MonthlyExpenses < 0 || in.TotalAssets < 0 || in.TotalLiabilities < 0 {
		return nil, &ValidationError{Msg: "evaluation figures must be non-negative"}
	}

	score, components := finance.ComputeScore(in)

	snapshot, err := s.store.CreateSnapshot(ctx, &models.FinancialSnapshot{
		UserID:           userID,
		MonthlyIncome:    in.MonthlyIncome,
		MonthlyExpenses:  in.MonthlyExpenses,
		TotalAssets:      in.TotalAssets,
		TotalLiabilities: in.TotalLiabilities,
		NetWorth:         in.TotalAssets - in.TotalLiabilities,
		Score:            score,
	})
	if err != nil {
		return nil, fmt.Errorf("create snapshot: %w", err)
	}

	if _, err := s.store.CreateScore(ctx, scoreRecord(userID, score, components)); err != nil {
		return nil, fmt.Errorf("create score record: %w", err)
	}
	return snapshot, nil
}

func (s *SnapshotRecalculator) append(ctx context.Context, userID int64, in finance.SnapshotInput) error {
	score, components := finance.ComputeScore(in)

	if _, err := s.store.CreateScore(ctx, scoreRecord(userID, score, components)); err != nil {
		return fmt.Errorf("create score record: %w", err)
	}

	_, err := s.store.CreateSnapshot(ctx, &models.FinancialSnapshot{
		UserID:           userID,
		MonthlyIncome:    in.MonthlyIncome,
		MonthlyExpenses:  in.MonthlyExpenses,
		TotalAssets:      in.TotalAssets,
		TotalLiabilities: in.TotalLiabilities,
		NetWorth:         in.TotalAssets - in.TotalLiabilities,
		Score:            score,
	})
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	return nil
}

func scoreRecord(userID int64, score int, c finance.ScoreComponents) *models.FinancialScore {
	return &models.FinancialScore{
		UserID:                userID,
		Score:                 score,
		EvaluatedAt:           time.Now().UTC(),
		DebtToIncomeRatio:     c.DebtToIncomeRatio,
		SavingsToIncomeRatio:  c.SavingsToIncomeRatio,
		ExpensesToIncomeRatio: c.ExpensesToIncomeRatio,
		NetWorthRatio:         c.NetWorthRatio,
	}
}
