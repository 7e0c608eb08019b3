package ledger

import (
	"context"
	"log"
	"math"

	"github.com/google/uuid"

	"saku-server/src/models"
)

// Engine applies the balance cascades triggered by newly created or updated
// ledger events. Every write to Pocket.Balance and SubGoal.AllocatedAmount
// goes through here (or through Reversal); no other code path may touch those
// fields.
//
// Validation runs before the primary row is inserted; the cascade runs after.
// Cascade failures after the primary write are logged and swallowed so the
// primary operation still reports success. That asymmetry is deliberate and
// load-bearing: consistency maintenance is fire-and-forget.
type Engine struct {
	store  Store
	recalc *SnapshotRecalculator
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store, recalc: NewSnapshotRecalculator(store)}
}

// ValidateTransaction checks a plain income/expense transaction before it is
// persisted.
func (e *Engine) ValidateTransaction(tx *models.Transaction) error {
	if tx.Type != models.TransactionIncome && tx.Type != models.TransactionExpense {
		return &ValidationError{Msg: "transaction type must be income or expense"}
	}
	if !models.ValidCategory(tx.Type, tx.Category) {
		return &ValidationError{Msg: "unknown category " + tx.Category + " for type " + tx.Type}
	}
	if tx.Amount <= 0 {
		return &ValidationError{Msg: "amount must be positive"}
	}
	return nil
}

// ApplyTransaction cascades a created or updated transaction: adjust the
// source pocket balance if one is referenced, adjust the related sub-goal
// allocation if one is referenced, then recalculate the user's snapshot and
// score. Subtractions clamp at zero.
//
// A missing referenced pocket or sub-goal is returned so the caller can
// surface it; the already-committed transaction row is not rolled back. Any
// other cascade failure is logged and swallowed.
func (e *Engine) ApplyTransaction(ctx context.Context, userID int64, tx *models.Transaction) error {
	var notFound error

	if tx.SourcePocket != nil {
		if err := e.applyTransactionToPocket(ctx, userID, tx); err != nil {
			log.Printf("ERROR: Failed to update pocket %d for transaction %d (user %d): %v",
				*tx.SourcePocket, tx.ID, userID, err)
			if _, ok := err.(*NotFoundError); ok {
				notFound = err
			}
		}
	}

	if tx.RelatedSubGoal != nil {
		if err := e.applyTransactionToSubGoal(ctx, userID, tx); err != nil {
			log.Printf("ERROR: Failed to update sub-goal %d for transaction %d (user %d): %v",
				*tx.RelatedSubGoal, tx.ID, userID, err)
			if _, ok := err.(*NotFoundError); ok && notFound == nil {
				notFound = err
			}
		}
	}

	if err := e.recalc.Recalculate(ctx, userID); err != nil {
		log.Printf("ERROR: Failed to recalculate snapshot for user %d after transaction %d: %v",
			userID, tx.ID, err)
	}

	return notFound
}

func (e *Engine) applyTransactionToPocket(ctx context.Context, userID int64, tx *models.Transaction) error {
	pocket, err := e.store.GetPocket(ctx, userID, *tx.SourcePocket)
	if err != nil {
		return err
	}
	newBalance := pocket.Balance + tx.Amount
	if tx.Type == models.TransactionExpense {
		newBalance = math.Max(0, pocket.Balance-tx.Amount)
	}
	return e.store.UpdatePocketBalance(ctx, pocket.ID, newBalance)
}

func (e *Engine) applyTransactionToSubGoal(ctx context.Context, userID int64, tx *models.Transaction) error {
	subGoal, err := e.store.GetSubGoal(ctx, userID, *tx.RelatedSubGoal)
	if err != nil {
		return err
	}
	newAllocated := subGoal.AllocatedAmount + tx.Amount
	if tx.Type == models.TransactionExpense {
		newAllocated = math.Max(0, subGoal.AllocatedAmount-tx.Amount)
	}
	return e.store.UpdateSubGoalAllocation(ctx, subGoal.ID, newAllocated)
}

// ValidatePocketTransaction enforces the per-type required fields and the
// balance-sufficiency rule, in that order, before anything is written.
func (e *Engine) ValidatePocketTransaction(ctx context.Context, userID int64, ptx *models.PocketTransaction) error {
	if ptx.Amount <= 0 {
		return &ValidationError{Msg: "amount must be positive"}
	}

	switch ptx.TransactionType {
	case models.PocketTransfer:
		if ptx.FromPocket == nil || ptx.ToPocket == nil {
			return &ValidationError{Msg: "transfer requires both a source and a destination pocket"}
		}
		if *ptx.FromPocket == *ptx.ToPocket {
			return &ValidationError{Msg: "source and destination pocket must differ"}
		}
	case models.PocketTopup:
		if ptx.ToPocket == nil {
			return &ValidationError{Msg: "top up requires a destination pocket"}
		}
	case models.PocketWithdraw:
		if ptx.FromPocket == nil {
			return &ValidationError{Msg: "withdraw requires a source pocket"}
		}
	default:
		return &ValidationError{Msg: "transaction type must be transfer, topup or withdraw"}
	}

	if ptx.TransactionType == models.PocketTransfer || ptx.TransactionType == models.PocketWithdraw {
		fromPocket, err := e.store.GetPocket(ctx, userID, *ptx.FromPocket)
		if err != nil {
			return err
		}
		if fromPocket.Balance < ptx.Amount {
			return &InsufficientBalanceError{
				PocketName: fromPocket.Name,
				Balance:    fromPocket.Balance,
				Required:   ptx.Amount,
			}
		}
	}

	return nil
}

// ApplyPocketTransaction cascades the balance updates for a created pocket
// transaction. It assumes ValidatePocketTransaction already passed and the
// primary row is committed, so every failure here is logged and swallowed.
func (e *Engine) ApplyPocketTransaction(ctx context.Context, userID int64, ptx *models.PocketTransaction) {
	var err error
	switch ptx.TransactionType {
	case models.PocketTransfer:
		err = e.applyTransfer(ctx, userID, ptx)
	case models.PocketTopup:
		err = e.applyDelta(ctx, userID, *ptx.ToPocket, ptx.Amount)
	case models.PocketWithdraw:
		err = e.applyDelta(ctx, userID, *ptx.FromPocket, -ptx.Amount)
	}
	if err != nil {
		log.Printf("ERROR: Failed to apply pocket transaction %d (%s) for user %d: %v",
			ptx.ID, ptx.TransactionType, userID, err)
	}
}

// applyTransfer computes both legs before either write commits, then hands
// them to the store with a fresh intent record. A transfer that dies between
// its two legs leaves the intent pending, which the recovery sweep uses to
// credit the debited amount back.
func (e *Engine) applyTransfer(ctx context.Context, userID int64, ptx *models.PocketTransaction) error {
	fromPocket, err := e.store.GetPocket(ctx, userID, *ptx.FromPocket)
	if err != nil {
		return err
	}
	toPocket, err := e.store.GetPocket(ctx, userID, *ptx.ToPocket)
	if err != nil {
		return err
	}

	intent := &models.TransferIntent{
		Token:      uuid.NewString(),
		UserID:     userID,
		FromPocket: fromPocket.ID,
		ToPocket:   toPocket.ID,
		Amount:     ptx.Amount,
		Status:     models.IntentPending,
	}

	newFromBalance := math.Max(0, fromPocket.Balance-ptx.Amount)
	newToBalance := toPocket.Balance + ptx.Amount
	return e.store.CommitTransfer(ctx, intent, newFromBalance, newToBalance)
}

func (e *Engine) applyDelta(ctx context.Context, userID, pocketID int64, delta float64) error {
	pocket, err := e.store.GetPocket(ctx, userID, pocketID)
	if err != nil {
		return err
	}
	return e.store.UpdatePocketBalance(ctx, pocket.ID, math.Max(0, pocket.Balance+delta))
}
