package ledger

import (
	"context"
	"errors"
	"time"

	"saku-server/src/models"
)

// fakeStore is the in-memory Store used across the ledger tests. Entities are
// stored by ID; reads hand out copies so tests cannot mutate state behind the
// store's back.
type fakeStore struct {
	pockets      map[int64]*models.Pocket
	subGoals     map[int64]*models.SubGoal
	goals        map[int64]*models.FinancialGoal
	snapshots    []models.FinancialSnapshot
	scores       []models.FinancialScore
	transactions []models.Transaction
	intents      map[string]*models.TransferIntent

	// failTransferCredit makes CommitTransfer stop after the debit leg,
	// leaving a pending intent behind.
	failTransferCredit bool
	// failSubGoalList makes ListSubGoalsForGoal error.
	failSubGoalList bool

	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		pockets:  make(map[int64]*models.Pocket),
		subGoals: make(map[int64]*models.SubGoal),
		goals:    make(map[int64]*models.FinancialGoal),
		intents:  make(map[string]*models.TransferIntent),
		nextID:   1000,
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) GetPocket(ctx context.Context, userID, pocketID int64) (*models.Pocket, error) {
	p, ok := f.pockets[pocketID]
	if !ok || p.UserID != userID {
		return nil, &NotFoundError{Collection: "pockets", ID: pocketID}
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) UpdatePocketBalance(ctx context.Context, pocketID int64, balance float64) error {
	p, ok := f.pockets[pocketID]
	if !ok {
		return &NotFoundError{Collection: "pockets", ID: pocketID}
	}
	p.Balance = balance
	return nil
}

func (f *fakeStore) CommitTransfer(ctx context.Context, intent *models.TransferIntent, fromBalance, toBalance float64) error {
	stored := *intent
	stored.ID = f.id()
	stored.CreatedAt = time.Now().UTC()
	f.intents[stored.Token] = &stored
	if err := f.UpdatePocketBalance(ctx, intent.FromPocket, fromBalance); err != nil {
		return err
	}
	if f.failTransferCredit {
		return errors.New("connection reset during credit leg")
	}
	if err := f.UpdatePocketBalance(ctx, intent.ToPocket, toBalance); err != nil {
		return err
	}
	stored.Status = models.IntentComplete
	return nil
}

func (f *fakeStore) GetSubGoal(ctx context.Context, userID, subGoalID int64) (*models.SubGoal, error) {
	sg, ok := f.subGoals[subGoalID]
	if !ok || sg.UserID != userID {
		return nil, &NotFoundError{Collection: "sub_goals", ID: subGoalID}
	}
	cp := *sg
	return &cp, nil
}

func (f *fakeStore) UpdateSubGoalAllocation(ctx context.Context, subGoalID int64, amount float64) error {
	sg, ok := f.subGoals[subGoalID]
	if !ok {
		return &NotFoundError{Collection: "sub_goals", ID: subGoalID}
	}
	sg.AllocatedAmount = amount
	return nil
}

func (f *fakeStore) ListSubGoalsForGoal(ctx context.Context, goalID int64) ([]models.SubGoal, error) {
	if f.failSubGoalList {
		return nil, errors.New("sub_goals unavailable")
	}
	var out []models.SubGoal
	for _, sg := range f.subGoals {
		if sg.GoalID == goalID {
			out = append(out, *sg)
		}
	}
	return out, nil
}

func (f *fakeStore) GetGoal(ctx context.Context, userID, goalID int64) (*models.FinancialGoal, error) {
	g, ok := f.goals[goalID]
	if !ok || g.UserID != userID {
		return nil, &NotFoundError{Collection: "financial_goals", ID: goalID}
	}
	cp := *g
	return &cp, nil
}

func (f *fakeStore) UpdateGoalDerived(ctx context.Context, goalID int64, derived models.GoalDerived) error {
	g, ok := f.goals[goalID]
	if !ok {
		return &NotFoundError{Collection: "financial_goals", ID: goalID}
	}
	g.GoalDerived = derived
	return nil
}

func (f *fakeStore) LatestSnapshot(ctx context.Context, userID int64) (*models.FinancialSnapshot, error) {
	var latest *models.FinancialSnapshot
	for i := range f.snapshots {
		s := &f.snapshots[i]
		if s.UserID != userID {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeStore) ListTransactionsAfter(ctx context.Context, userID int64, after time.Time) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range f.transactions {
		if tx.UserID == userID && tx.Date.After(after) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateSnapshot(ctx context.Context, snapshot *models.FinancialSnapshot) (*models.FinancialSnapshot, error) {
	stored := *snapshot
	stored.ID = f.id()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	f.snapshots = append(f.snapshots, stored)
	cp := stored
	return &cp, nil
}

func (f *fakeStore) CreateScore(ctx context.Context, score *models.FinancialScore) (*models.FinancialScore, error) {
	stored := *score
	stored.ID = f.id()
	f.scores = append(f.scores, stored)
	cp := stored
	return &cp, nil
}

func (f *fakeStore) ListPendingIntents(ctx context.Context) ([]models.TransferIntent, error) {
	var out []models.TransferIntent
	for _, intent := range f.intents {
		if intent.Status == models.IntentPending {
			out = append(out, *intent)
		}
	}
	return out, nil
}

func (f *fakeStore) MarkIntentReversed(ctx context.Context, token string) error {
	intent, ok := f.intents[token]
	if !ok {
		return errors.New("intent not found")
	}
	intent.Status = models.IntentReversed
	return nil
}

func (f *fakeStore) addPocket(userID int64, name string, balance float64) *models.Pocket {
	p := &models.Pocket{
		ID:       f.id(),
		UserID:   userID,
		Name:     name,
		Balance:  balance,
		IsActive: true,
	}
	f.pockets[p.ID] = p
	return p
}

func (f *fakeStore) addSubGoal(userID, goalID int64, name string, allocated float64) *models.SubGoal {
	sg := &models.SubGoal{
		ID:              f.id(),
		UserID:          userID,
		GoalID:          goalID,
		Name:            name,
		AllocatedAmount: allocated,
	}
	f.subGoals[sg.ID] = sg
	return sg
}

func (f *fakeStore) addGoal(userID int64, name string, target float64) *models.FinancialGoal {
	g := &models.FinancialGoal{
		ID:           f.id(),
		UserID:       userID,
		Name:         name,
		TargetAmount: target,
		Priority:     models.PriorityMedium,
	}
	f.goals[g.ID] = g
	return g
}

func ptrInt64(v int64) *int64 { return &v }
