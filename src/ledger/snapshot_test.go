package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"saku-server/src/finance"
	"saku-server/src/models"
)

func TestRecalculateNoOpWithoutBaseSnapshot(t *testing.T) {
	store := newFakeStore()
	recalc := NewSnapshotRecalculator(store)

	if err := recalc.Recalculate(context.Background(), 1); err != nil {
		t.Fatalf("Recalculate() error = %v", err)
	}
	if len(store.snapshots) != 0 || len(store.scores) != 0 {
		t.Errorf("recalculation without a base wrote %d snapshots, %d scores",
			len(store.snapshots), len(store.scores))
	}
}

func TestRecalculateFoldsTransactionsIntoAssets(t *testing.T) {
	store := newFakeStore()
	recalc := NewSnapshotRecalculator(store)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	store.snapshots = append(store.snapshots, models.FinancialSnapshot{
		ID:               1,
		UserID:           1,
		MonthlyIncome:    10_000_000,
		MonthlyExpenses:  6_000_000,
		TotalAssets:      50_000_000,
		TotalLiabilities: 5_000_000,
		NetWorth:         45_000_000,
		CreatedAt:        base,
	})
	store.transactions = []models.Transaction{
		{UserID: 1, Type: models.TransactionIncome, Amount: 2_000_000, Date: base.AddDate(0, 0, 3)},
		{UserID: 1, Type: models.TransactionExpense, Amount: 500_000, Date: base.AddDate(0, 0, 5)},
		// At the base timestamp, already counted in the base snapshot.
		{UserID: 1, Type: models.TransactionIncome, Amount: 9_000_000, Date: base},
		// Another user's transaction.
		{UserID: 2, Type: models.TransactionIncome, Amount: 1_000_000, Date: base.AddDate(0, 0, 4)},
	}

	if err := recalc.Recalculate(ctx, 1); err != nil {
		t.Fatalf("Recalculate() error = %v", err)
	}

	if len(store.snapshots) != 2 {
		t.Fatalf("snapshot count = %d, want 2", len(store.snapshots))
	}
	got := store.snapshots[1]
	if got.TotalAssets != 51_500_000 {
		t.Errorf("totalAssets = %v, want 51500000", got.TotalAssets)
	}
	if got.MonthlyIncome != 10_000_000 || got.MonthlyExpenses != 6_000_000 || got.TotalLiabilities != 5_000_000 {
		t.Errorf("carried figures changed: %+v", got)
	}
	if got.NetWorth != 46_500_000 {
		t.Errorf("netWorth = %v, want 46500000", got.NetWorth)
	}

	if len(store.scores) != 1 {
		t.Fatalf("score count = %d, want 1", len(store.scores))
	}
	wantScore, _ := finance.ComputeScore(finance.SnapshotInput{
		MonthlyIncome:    10_000_000,
		MonthlyExpenses:  6_000_000,
		TotalAssets:      51_500_000,
		TotalLiabilities: 5_000_000,
	})
	if store.scores[0].Score != wantScore {
		t.Errorf("score = %d, want %d", store.scores[0].Score, wantScore)
	}
}

func TestSubmitEvaluation(t *testing.T) {
	store := newFakeStore()
	recalc := NewSnapshotRecalculator(store)
	ctx := context.Background()

	snapshot, err := recalc.SubmitEvaluation(ctx, 1, finance.SnapshotInput{
		MonthlyIncome:    10_000_000,
		MonthlyExpenses:  6_000_000,
		TotalAssets:      50_000_000,
		TotalLiabilities: 5_000_000,
	})
	if err != nil {
		t.Fatalf("SubmitEvaluation() error = %v", err)
	}

	if snapshot.NetWorth != 45_000_000 {
		t.Errorf("netWorth = %v, want 45000000", snapshot.NetWorth)
	}
	if snapshot.Score != 88 {
		t.Errorf("score = %d, want 88", snapshot.Score)
	}
	if len(store.scores) != 1 {
		t.Fatalf("score count = %d, want 1", len(store.scores))
	}
	if store.scores[0].Score != snapshot.Score {
		t.Errorf("score row = %d, snapshot score = %d", store.scores[0].Score, snapshot.Score)
	}
}

func TestSubmitEvaluationRejectsNegativeFigures(t *testing.T) {
	store := newFakeStore()
	recalc := NewSnapshotRecalculator(store)

	_, err := recalc.SubmitEvaluation(context.Background(), 1, finance.SnapshotInput{
		MonthlyIncome: -1,
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(store.snapshots) != 0 || len(store.scores) != 0 {
		t.Errorf("rejected evaluation wrote rows")
	}
}
