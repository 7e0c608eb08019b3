package finance

import (
	"math"
	"testing"
	"time"
)

func TestComputeGoalProgress(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("no allocation yet", func(t *testing.T) {
		p := ComputeGoalProgress(10_000_000, 0, nil, now)
		if p.Progress != 0 {
			t.Errorf("progress = %v, want 0", p.Progress)
		}
		if p.EstimatedCompletionDate != nil {
			t.Errorf("estimatedCompletionDate = %v, want nil", p.EstimatedCompletionDate)
		}
		if p.RequiredMonthlySavings != nil {
			t.Errorf("requiredMonthlySavings = %v, want nil without a target date", *p.RequiredMonthlySavings)
		}
	})

	t.Run("target reached", func(t *testing.T) {
		p := ComputeGoalProgress(10_000_000, 10_000_000, nil, now)
		if p.Progress != 100 {
			t.Errorf("progress = %v, want 100", p.Progress)
		}
		if p.EstimatedCompletionDate == nil || !p.EstimatedCompletionDate.Equal(now) {
			t.Errorf("estimatedCompletionDate = %v, want %v", p.EstimatedCompletionDate, now)
		}
	})

	t.Run("progress capped at 100", func(t *testing.T) {
		p := ComputeGoalProgress(10_000_000, 15_000_000, nil, now)
		if p.Progress != 100 {
			t.Errorf("progress = %v, want 100", p.Progress)
		}
	})

	t.Run("partial allocation", func(t *testing.T) {
		p := ComputeGoalProgress(10_000_000, 2_000_000, nil, now)
		if p.Progress != 20 {
			t.Errorf("progress = %v, want 20", p.Progress)
		}
		// Assumed monthly savings of 10% of 2M leaves 8M / 200k = 40 months.
		if p.EstimatedCompletionDate == nil {
			t.Fatal("estimatedCompletionDate = nil, want a value")
		}
		wantDays := 40 * 30.44
		gotDays := p.EstimatedCompletionDate.Sub(now).Hours() / 24
		if math.Abs(gotDays-wantDays) > 0.01 {
			t.Errorf("estimated completion in %.2f days, want %.2f", gotDays, wantDays)
		}
	})

	t.Run("zero target amount", func(t *testing.T) {
		p := ComputeGoalProgress(0, 500_000, nil, now)
		if p.Progress != 0 {
			t.Errorf("progress = %v, want 0", p.Progress)
		}
	})
}

func TestComputeGoalProgressRequiredMonthlySavings(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("future target date", func(t *testing.T) {
		// Exactly ten average months out.
		target := now.Add(time.Duration(10 * 30.44 * 24 * float64(time.Hour)))
		p := ComputeGoalProgress(12_000_000, 2_000_000, &target, now)
		if p.RequiredMonthlySavings == nil {
			t.Fatal("requiredMonthlySavings = nil, want a value")
		}
		if math.Abs(*p.RequiredMonthlySavings-1_000_000) > 1 {
			t.Errorf("requiredMonthlySavings = %v, want ~1000000", *p.RequiredMonthlySavings)
		}
	})

	t.Run("past target date", func(t *testing.T) {
		target := now.AddDate(0, -1, 0)
		p := ComputeGoalProgress(12_000_000, 2_000_000, &target, now)
		if p.RequiredMonthlySavings != nil {
			t.Errorf("requiredMonthlySavings = %v, want nil for a past date", *p.RequiredMonthlySavings)
		}
	})
}
