package finance

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name string
		in   SnapshotInput
		want int
	}{
		{
			// debt 30 + savings 30 + expenses 20 + net worth 7.5 = 87.5
			name: "healthy household",
			in:   SnapshotInput{MonthlyIncome: 10_000_000, MonthlyExpenses: 6_000_000, TotalAssets: 50_000_000, TotalLiabilities: 5_000_000},
			want: 88,
		},
		{
			name: "zero income",
			in:   SnapshotInput{MonthlyIncome: 0, MonthlyExpenses: 2_000_000, TotalAssets: 10_000_000, TotalLiabilities: 1_000_000},
			want: 0,
		},
		{
			// savings 0, expenses at 100% of income, nothing owned or owed
			name: "paycheck to paycheck",
			in:   SnapshotInput{MonthlyIncome: 5_000_000, MonthlyExpenses: 5_000_000},
			want: 30,
		},
		{
			// everything at or past the full-credit thresholds
			name: "perfect",
			in:   SnapshotInput{MonthlyIncome: 10_000_000, MonthlyExpenses: 2_000_000, TotalAssets: 200_000_000, TotalLiabilities: 0},
			want: 100,
		},
		{
			// debt ratio 100% eats most of the debt sub-score
			name: "heavy debt",
			in:   SnapshotInput{MonthlyIncome: 10_000_000, MonthlyExpenses: 2_000_000, TotalAssets: 120_000_000, TotalLiabilities: 120_000_000},
			want: 57,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := ComputeScore(tt.in)
			if got != tt.want {
				t.Errorf("ComputeScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeScoreComponents(t *testing.T) {
	_, c := ComputeScore(SnapshotInput{
		MonthlyIncome:    10_000_000,
		MonthlyExpenses:  6_000_000,
		TotalAssets:      50_000_000,
		TotalLiabilities: 5_000_000,
	})

	if !almostEqual(c.DebtToIncomeRatio, 5_000_000.0/120_000_000.0*100) {
		t.Errorf("debtToIncomeRatio = %v", c.DebtToIncomeRatio)
	}
	if !almostEqual(c.SavingsToIncomeRatio, 40) {
		t.Errorf("savingsToIncomeRatio = %v, want 40", c.SavingsToIncomeRatio)
	}
	if !almostEqual(c.ExpensesToIncomeRatio, 60) {
		t.Errorf("expensesToIncomeRatio = %v, want 60", c.ExpensesToIncomeRatio)
	}
	if !almostEqual(c.NetWorthRatio, 0.375) {
		t.Errorf("netWorthRatio = %v, want 0.375", c.NetWorthRatio)
	}
}

func TestComputeScoreZeroIncomeComponents(t *testing.T) {
	score, c := ComputeScore(SnapshotInput{MonthlyExpenses: 3_000_000, TotalAssets: 5_000_000})
	if score != 0 {
		t.Errorf("score = %d, want 0", score)
	}
	want := ScoreComponents{DebtToIncomeRatio: 100, SavingsToIncomeRatio: 0, ExpensesToIncomeRatio: 100, NetWorthRatio: 0}
	if c != want {
		t.Errorf("components = %+v, want %+v", c, want)
	}
}

func TestComputeScoreStaysInRange(t *testing.T) {
	inputs := []SnapshotInput{
		{},
		{MonthlyIncome: 1, MonthlyExpenses: 1_000_000_000, TotalLiabilities: 1_000_000_000_000},
		{MonthlyIncome: 1_000_000_000, TotalAssets: 1_000_000_000_000},
		{MonthlyIncome: 7_300_000, MonthlyExpenses: 7_299_999, TotalAssets: 1, TotalLiabilities: 999_999_999},
	}
	for _, in := range inputs {
		score, _ := ComputeScore(in)
		if score < 0 || score > 100 {
			t.Errorf("ComputeScore(%+v) = %d, out of range", in, score)
		}
	}
}

func TestComputeScoreSubScoreBoundaries(t *testing.T) {
	// Debt ratio exactly 30% keeps the full 30 points: other components
	// pinned at full credit, liabilities at 30% of annual income.
	full, _ := ComputeScore(SnapshotInput{
		MonthlyIncome:    10_000_000,
		MonthlyExpenses:  2_000_000,
		TotalAssets:      200_000_000,
		TotalLiabilities: 36_000_000,
	})
	if full != 100 {
		t.Errorf("score at 30%% debt ratio = %d, want 100", full)
	}

	// One step past the threshold starts the penalty.
	past, _ := ComputeScore(SnapshotInput{
		MonthlyIncome:    10_000_000,
		MonthlyExpenses:  2_000_000,
		TotalAssets:      200_000_000,
		TotalLiabilities: 72_000_000,
	})
	if past >= full {
		t.Errorf("score past the debt threshold = %d, want below %d", past, full)
	}
}
