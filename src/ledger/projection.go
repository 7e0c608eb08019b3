package ledger

import (
	"context"
	"fmt"
	"log"
	"time"

	"saku-server/src/finance"
	"saku-server/src/models"
)

// ProjectionCache caches a goal's derived fields between sub-goal mutations.
// The db package provides the ristretto-backed implementation.
type ProjectionCache interface {
	Get(goalID int64) (models.GoalDerived, bool)
	Set(goalID int64, derived models.GoalDerived)
	Invalidate(goalID int64)
}

// GoalProjector computes a goal's derived fields from its live sub-goals on
// read. The stored columns are only a cache: they are refreshed whenever the
// projection is recomputed (cache miss), and the in-memory cache entry is
// dropped whenever a sub-goal mutation touches the goal. Reads of a warm goal
// hit neither the sub-goal table nor a write.
type GoalProjector struct {
	store Store
	cache ProjectionCache
}

func NewGoalProjector(store Store, cache ProjectionCache) *GoalProjector {
	return &GoalProjector{store: store, cache: cache}
}

// Project returns the goal with its derived fields replaced by live values.
func (p *GoalProjector) Project(ctx context.Context, userID, goalID int64) (*models.FinancialGoal, error) {
	goal, err := p.store.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if derived, ok := p.cache.Get(goal.ID); ok {
		goal.GoalDerived = derived
		return goal, nil
	}

	derived, err := p.recompute(ctx, goal)
	if err != nil {
		return nil, err
	}
	goal.GoalDerived = derived
	return goal, nil
}

// ProjectAll resolves derived fields for a list of goals, reusing cached
// projections where available.
func (p *GoalProjector) ProjectAll(ctx context.Context, goals []models.FinancialGoal) []models.FinancialGoal {
	for i := range goals {
		if derived, ok := p.cache.Get(goals[i].ID); ok {
			goals[i].GoalDerived = derived
			continue
		}
		derived, err := p.recompute(ctx, &goals[i])
		if err != nil {
			// Serve the stale stored columns rather than failing the read.
			log.Printf("ERROR: Failed to project goal %d: %v", goals[i].ID, err)
			continue
		}
		goals[i].GoalDerived = derived
	}
	return goals
}

// Invalidate drops the cached projection for a goal. Called by every sub-goal
// create/update/delete and by goal target changes.
func (p *GoalProjector) Invalidate(goalID int64) {
	p.cache.Invalidate(goalID)
}

func (p *GoalProjector) recompute(ctx context.Context, goal *models.FinancialGoal) (models.GoalDerived, error) {
	subGoals, err := p.store.ListSubGoalsForGoal(ctx, goal.ID)
	if err != nil {
		return models.GoalDerived{}, fmt.Errorf("load sub-goals: %w", err)
	}

	var totalAllocation float64
	for _, sg := range subGoals {
		totalAllocation += sg.AllocatedAmount
	}

	progress := finance.ComputeGoalProgress(goal.TargetAmount, totalAllocation, goal.TargetDate, time.Now().UTC())
	derived := models.GoalDerived{
		CurrentTotalAllocation:  totalAllocation,
		Progress:                progress.Progress,
		RequiredMonthlySavings:  progress.RequiredMonthlySavings,
		EstimatedCompletionDate: progress.EstimatedCompletionDate,
	}

	// Refresh the stored columns so direct SQL access sees recent values.
	// Failure here means staleness, not a failed read.
	if err := p.store.UpdateGoalDerived(ctx, goal.ID, derived); err != nil {
		log.Printf("ERROR: Failed to persist derived fields for goal %d: %v", goal.ID, err)
	}

	p.cache.Set(goal.ID, derived)
	return derived, nil
}
