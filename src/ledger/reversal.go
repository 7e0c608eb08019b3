package ledger

import (
	"context"
	"log"
	"math"

	"saku-server/src/models"
)

// Reversal undoes the balance effect of a deleted transaction or pocket
// transaction, mirroring Engine with the sign inverted. The deleted row is
// already gone when these run, so failures are logged and swallowed the same
// way forward cascades are.
type Reversal struct {
	store  Store
	recalc *SnapshotRecalculator
}

func NewReversal(store Store) *Reversal {
	return &Reversal{store: store, recalc: NewSnapshotRecalculator(store)}
}

// ReverseTransaction undoes a deleted income/expense transaction: a deleted
// income is subtracted back out (clamped at zero), a deleted expense is added
// back. The user's snapshot and score are then recalculated.
func (r *Reversal) ReverseTransaction(ctx context.Context, userID int64, tx *models.Transaction) {
	delta := -tx.Amount
	if tx.Type == models.TransactionExpense {
		delta = tx.Amount
	}

	if tx.SourcePocket != nil {
		if err := r.adjustPocket(ctx, userID, *tx.SourcePocket, delta); err != nil {
			log.Printf("ERROR: Failed to reverse pocket %d for deleted transaction %d (user %d): %v",
				*tx.SourcePocket, tx.ID, userID, err)
		}
	}

	if tx.RelatedSubGoal != nil {
		if err := r.adjustSubGoal(ctx, userID, *tx.RelatedSubGoal, delta); err != nil {
			log.Printf("ERROR: Failed to reverse sub-goal %d for deleted transaction %d (user %d): %v",
				*tx.RelatedSubGoal, tx.ID, userID, err)
		}
	}

	if err := r.recalc.Recalculate(ctx, userID); err != nil {
		log.Printf("ERROR: Failed to recalculate snapshot for user %d after deleting transaction %d: %v",
			userID, tx.ID, err)
	}
}

// ReversePocketTransaction undoes a deleted transfer/topup/withdraw. The
// reversal is the exact inverse of the original cascade, once.
func (r *Reversal) ReversePocketTransaction(ctx context.Context, userID int64, ptx *models.PocketTransaction) {
	var err error
	switch ptx.TransactionType {
	case models.PocketTransfer:
		if ptx.FromPocket != nil && ptx.ToPocket != nil {
			if err = r.adjustPocket(ctx, userID, *ptx.FromPocket, ptx.Amount); err == nil {
				err = r.adjustPocket(ctx, userID, *ptx.ToPocket, -ptx.Amount)
			}
		}
	case models.PocketTopup:
		if ptx.ToPocket != nil {
			err = r.adjustPocket(ctx, userID, *ptx.ToPocket, -ptx.Amount)
		}
	case models.PocketWithdraw:
		if ptx.FromPocket != nil {
			err = r.adjustPocket(ctx, userID, *ptx.FromPocket, ptx.Amount)
		}
	}
	if err != nil {
		log.Printf("ERROR: Failed to reverse pocket transaction %d (%s) for user %d: %v",
			ptx.ID, ptx.TransactionType, userID, err)
	}
}

func (r *Reversal) adjustPocket(ctx context.Context, userID, pocketID int64, delta float64) error {
	pocket, err := r.store.GetPocket(ctx, userID, pocketID)
	if err != nil {
		return err
	}
	return r.store.UpdatePocketBalance(ctx, pocket.ID, math.Max(0, pocket.Balance+delta))
}

func (r *Reversal) adjustSubGoal(ctx context.Context, userID, subGoalID int64, delta float64) error {
	subGoal, err := r.store.GetSubGoal(ctx, userID, subGoalID)
	if err != nil {
		return err
	}
	return r.store.UpdateSubGoalAllocation(ctx, subGoal.ID, math.Max(0, subGoal.AllocatedAmount+delta))
}
