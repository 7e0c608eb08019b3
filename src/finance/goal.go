package finance

import (
	"math"
	"time"
)

// daysPerMonth is the average Gregorian month length used for all
// months-remaining arithmetic.
const daysPerMonth = 30.44

// GoalProgress is the derived state of one goal at a moment in time.
type GoalProgress struct {
	Progress                float64
	RequiredMonthlySavings  *float64
	EstimatedCompletionDate *time.Time
}

// ComputeGoalProgress derives progress, the monthly savings needed to hit
// targetDate, and an estimated completion date.
//
// The completion estimate assumes monthly savings of 10% of the current
// allocation. That is a crude stand-in for real savings history and should be
// presented as an approximation, but it is the established behavior and is
// kept as-is.
func ComputeGoalProgress(targetAmount, currentAmount float64, targetDate *time.Time, now time.Time) GoalProgress {
	var p GoalProgress

	if targetAmount > 0 {
		p.Progress = math.Min(100, currentAmount/targetAmount*100)
	}

	if targetDate != nil {
		monthsRemaining := targetDate.Sub(now).Hours() / 24 / daysPerMonth
		if monthsRemaining > 0 {
			required := (targetAmount - currentAmount) / monthsRemaining
			p.RequiredMonthlySavings = &required
		}
	}

	switch {
	case currentAmount <= 0:
		// No allocation yet, nothing to extrapolate from.
	case currentAmount >= targetAmount:
		done := now
		p.EstimatedCompletionDate = &done
	default:
		assumedMonthlySavings := currentAmount * 0.1
		monthsToComplete := (targetAmount - currentAmount) / assumedMonthlySavings
		estimate := now.Add(time.Duration(monthsToComplete * daysPerMonth * 24 * float64(time.Hour)))
		p.EstimatedCompletionDate = &estimate
	}

	return p
}
