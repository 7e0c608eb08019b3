package ledger

import (
	"context"
	"testing"

	"saku-server/src/models"
)

// fakeCache is a plain map standing in for the ristretto-backed cache.
type fakeCache struct {
	entries map[int64]models.GoalDerived
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[int64]models.GoalDerived)}
}

func (c *fakeCache) Get(goalID int64) (models.GoalDerived, bool) {
	d, ok := c.entries[goalID]
	return d, ok
}

func (c *fakeCache) Set(goalID int64, derived models.GoalDerived) {
	c.entries[goalID] = derived
}

func (c *fakeCache) Invalidate(goalID int64) {
	delete(c.entries, goalID)
}

func TestProjectComputesDerivedFields(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	projector := NewGoalProjector(store, cache)
	ctx := context.Background()

	goal := store.addGoal(1, "Rumah", 100_000_000)
	store.addSubGoal(1, goal.ID, "Deposito", 15_000_000)
	store.addSubGoal(1, goal.ID, "Reksadana", 10_000_000)

	got, err := projector.Project(ctx, 1, goal.ID)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	if got.CurrentTotalAllocation != 25_000_000 {
		t.Errorf("currentTotalAllocation = %v, want 25000000", got.CurrentTotalAllocation)
	}
	if got.Progress != 25 {
		t.Errorf("progress = %v, want 25", got.Progress)
	}
	if got.EstimatedCompletionDate == nil {
		t.Error("estimatedCompletionDate = nil, want a value")
	}

	// The stored columns are refreshed as a side effect.
	if stored := store.goals[goal.ID]; stored.Progress != 25 {
		t.Errorf("stored progress = %v, want 25", stored.Progress)
	}
	if _, ok := cache.Get(goal.ID); !ok {
		t.Error("projection was not cached")
	}
}

func TestProjectServesCacheUntilInvalidated(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	projector := NewGoalProjector(store, cache)
	ctx := context.Background()

	goal := store.addGoal(1, "Rumah", 100_000_000)
	subGoal := store.addSubGoal(1, goal.ID, "Deposito", 20_000_000)

	first, err := projector.Project(ctx, 1, goal.ID)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if first.Progress != 20 {
		t.Fatalf("progress = %v, want 20", first.Progress)
	}

	// Mutate behind the cache: the stale value is served until invalidation.
	store.subGoals[subGoal.ID].AllocatedAmount = 50_000_000

	second, err := projector.Project(ctx, 1, goal.ID)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if second.Progress != 20 {
		t.Errorf("cached progress = %v, want 20", second.Progress)
	}

	projector.Invalidate(goal.ID)

	third, err := projector.Project(ctx, 1, goal.ID)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if third.Progress != 50 {
		t.Errorf("recomputed progress = %v, want 50", third.Progress)
	}
}

func TestProjectUnknownGoal(t *testing.T) {
	projector := NewGoalProjector(newFakeStore(), newFakeCache())

	_, err := projector.Project(context.Background(), 1, 42)
	if _, ok := err.(*NotFoundError); !ok {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestProjectAllServesStaleOnRecomputeFailure(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	projector := NewGoalProjector(store, cache)
	ctx := context.Background()

	goal := store.addGoal(1, "Rumah", 100_000_000)
	goal.GoalDerived = models.GoalDerived{CurrentTotalAllocation: 5_000_000, Progress: 5}
	store.failSubGoalList = true

	goals := projector.ProjectAll(ctx, []models.FinancialGoal{*goal})
	if len(goals) != 1 {
		t.Fatalf("ProjectAll() returned %d goals, want 1", len(goals))
	}
	if goals[0].Progress != 5 {
		t.Errorf("stale progress = %v, want 5", goals[0].Progress)
	}
}
