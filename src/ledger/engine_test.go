package ledger

import (
	"context"
	"errors"
	"testing"

	"saku-server/src/models"
)

func TestValidateTransaction(t *testing.T) {
	engine := NewEngine(newFakeStore())

	tests := []struct {
		name    string
		tx      models.Transaction
		wantErr bool
	}{
		{"valid income", models.Transaction{Type: "income", Category: "salary", Amount: 5_000_000}, false},
		{"valid expense", models.Transaction{Type: "expense", Category: "food", Amount: 75_000}, false},
		{"unknown type", models.Transaction{Type: "refund", Category: "salary", Amount: 100}, true},
		{"category from wrong type", models.Transaction{Type: "income", Category: "food", Amount: 100}, true},
		{"unknown category", models.Transaction{Type: "expense", Category: "gambling", Amount: 100}, true},
		{"zero amount", models.Transaction{Type: "income", Category: "salary", Amount: 0}, true},
		{"negative amount", models.Transaction{Type: "expense", Category: "bills", Amount: -50}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := engine.ValidateTransaction(&tt.tx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateTransaction() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
			}
		})
	}
}

func TestApplyTransactionIncomeCascade(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store)
	ctx := context.Background()

	pocket := store.addPocket(1, "Tabungan", 100_000)
	subGoal := store.addSubGoal(1, 10, "Dana rumah", 200_000)

	tx := &models.Transaction{
		ID:             1,
		UserID:         1,
		Type:           models.TransactionIncome,
		Category:       "salary",
		Amount:         50_000,
		SourcePocket:   ptrInt64(pocket.ID),
		RelatedSubGoal: ptrInt64(subGoal.ID),
	}
	if err := engine.ApplyTransaction(ctx, 1, tx); err != nil {
		t.Fatalf("ApplyTransaction() error = %v", err)
	}

	if got := store.pockets[pocket.ID].Balance; got != 150_000 {
		t.Errorf("pocket balance = %v, want 150000", got)
	}
	if got := store.subGoals[subGoal.ID].AllocatedAmount; got != 250_000 {
		t.Errorf("sub-goal allocation = %v, want 250000", got)
	}
}

func TestApplyTransactionExpenseClampsAtZero(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store)
	ctx := context.Background()

	pocket := store.addPocket(1, "Jajan", 30_000)
	tx := &models.Transaction{
		UserID:       1,
		Type:         models.TransactionExpense,
		Category:     "food",
		Amount:       50_000,
		SourcePocket: ptrInt64(pocket.ID),
	}
	if err := engine.ApplyTransaction(ctx, 1, tx); err != nil {
		t.Fatalf("ApplyTransaction() error = %v", err)
	}
	if got := store.pockets[pocket.ID].Balance; got != 0 {
		t.Errorf("pocket balance = %v, want 0", got)
	}
}

func TestApplyTransactionMissingPocketSurfacedNotRolledBack(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store)
	ctx := context.Background()

	subGoal := store.addSubGoal(1, 10, "Dana rumah", 100_000)
	tx := &models.Transaction{
		UserID:         1,
		Type:           models.TransactionIncome,
		Category:       "bonus",
		Amount:         25_000,
		SourcePocket:   ptrInt64(99999),
		RelatedSubGoal: ptrInt64(subGoal.ID),
	}

	err := engine.ApplyTransaction(ctx, 1, tx)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	// The sub-goal leg still applies despite the missing pocket.
	if got := store.subGoals[subGoal.ID].AllocatedAmount; got != 125_000 {
		t.Errorf("sub-goal allocation = %v, want 125000", got)
	}
}

func TestValidatePocketTransaction(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store)
	ctx := context.Background()

	from := store.addPocket(1, "Utama", 100_000)
	to := store.addPocket(1, "Darurat", 0)

	tests := []struct {
		name    string
		ptx     models.PocketTransaction
		wantErr bool
	}{
		{"valid transfer", models.PocketTransaction{TransactionType: "transfer", FromPocket: ptrInt64(from.ID), ToPocket: ptrInt64(to.ID), Amount: 50_000}, false},
		{"transfer missing destination", models.PocketTransaction{TransactionType: "transfer", FromPocket: ptrInt64(from.ID), Amount: 50_000}, true},
		{"transfer same pocket", models.PocketTransaction{TransactionType: "transfer", FromPocket: ptrInt64(from.ID), ToPocket: ptrInt64(from.ID), Amount: 50_000}, true},
		{"valid topup", models.PocketTransaction{TransactionType: "topup", ToPocket: ptrInt64(to.ID), Amount: 10_000}, false},
		{"topup missing destination", models.PocketTransaction{TransactionType: "topup", Amount: 10_000}, true},
		{"valid withdraw", models.PocketTransaction{TransactionType: "withdraw", FromPocket: ptrInt64(from.ID), Amount: 10_000}, false},
		{"withdraw missing source", models.PocketTransaction{TransactionType: "withdraw", Amount: 10_000}, true},
		{"unknown type", models.PocketTransaction{TransactionType: "swap", Amount: 10_000}, true},
		{"zero amount", models.PocketTransaction{TransactionType: "topup", ToPocket: ptrInt64(to.ID), Amount: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := engine.ValidatePocketTransaction(ctx, 1, &tt.ptx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePocketTransaction() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePocketTransactionInsufficientBalance(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store)
	ctx := context.Background()

	from := store.addPocket(1, "Utama", 100_000)
	to := store.addPocket(1, "Darurat", 0)

	err := engine.ValidatePocketTransaction(ctx, 1, &models.PocketTransaction{
		TransactionType: models.PocketTransfer,
		FromPocket:      ptrInt64(from.ID),
		ToPocket:        ptrInt64(to.ID),
		Amount:          150_000,
	})

	var ib *InsufficientBalanceError
	if !errors.As(err, &ib) {
		t.Fatalf("expected InsufficientBalanceError, got %v", err)
	}
	if ib.PocketName != "Utama" || ib.Balance != 100_000 || ib.Required != 150_000 {
		t.Errorf("error fields = %+v", ib)
	}

	// Validation must not move money.
	if store.pockets[from.ID].Balance != 100_000 || store.pockets[to.ID].Balance != 0 {
		t.Errorf("balances changed during validation: from=%v to=%v",
			store.pockets[from.ID].Balance, store.pockets[to.ID].Balance)
	}
}

func TestApplyPocketTransactionTransfer(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store)
	ctx := context.Background()

	from := store.addPocket(1, "Utama", 100_000)
	to := store.addPocket(1, "Darurat", 50_000)

	engine.ApplyPocketTransaction(ctx, 1, &models.PocketTransaction{
		TransactionType: models.PocketTransfer,
		FromPocket:      ptrInt64(from.ID),
		ToPocket:        ptrInt64(to.ID),
		Amount:          30_000,
	})

	if got := store.pockets[from.ID].Balance; got != 70_000 {
		t.Errorf("source balance = %v, want 70000", got)
	}
	if got := store.pockets[to.ID].Balance; got != 80_000 {
		t.Errorf("destination balance = %v, want 80000", got)
	}

	pending, err := store.ListPendingIntents(ctx)
	if err != nil {
		t.Fatalf("ListPendingIntents() error = %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("completed transfer left %d pending intents", len(pending))
	}
}

func TestApplyPocketTransactionTopupAndWithdraw(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store)
	ctx := context.Background()

	pocket := store.addPocket(1, "Utama", 20_000)

	engine.ApplyPocketTransaction(ctx, 1, &models.PocketTransaction{
		TransactionType: models.PocketTopup,
		ToPocket:        ptrInt64(pocket.ID),
		Amount:          15_000,
	})
	if got := store.pockets[pocket.ID].Balance; got != 35_000 {
		t.Errorf("balance after topup = %v, want 35000", got)
	}

	engine.ApplyPocketTransaction(ctx, 1, &models.PocketTransaction{
		TransactionType: models.PocketWithdraw,
		FromPocket:      ptrInt64(pocket.ID),
		Amount:          10_000,
	})
	if got := store.pockets[pocket.ID].Balance; got != 25_000 {
		t.Errorf("balance after withdraw = %v, want 25000", got)
	}
}

func TestApplyPocketTransactionWithdrawClampsAtZero(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store)
	ctx := context.Background()

	pocket := store.addPocket(1, "Utama", 5_000)

	for i := 0; i < 3; i++ {
		engine.ApplyPocketTransaction(ctx, 1, &models.PocketTransaction{
			TransactionType: models.PocketWithdraw,
			FromPocket:      ptrInt64(pocket.ID),
			Amount:          4_000,
		})
	}
	if got := store.pockets[pocket.ID].Balance; got != 0 {
		t.Errorf("balance = %v, want 0", got)
	}
}
