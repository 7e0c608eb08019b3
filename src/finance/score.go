package finance

import "math"

// SnapshotInput are the four figures a score is derived from. All are
// expected to be non-negative; a zero monthly income is a valid input, not an
// error.
type SnapshotInput struct {
	MonthlyIncome    float64
	MonthlyExpenses  float64
	TotalAssets      float64
	TotalLiabilities float64
}

// ScoreComponents are the four weighted ratios behind a score, persisted with
// every FinancialScore row for the breakdown view.
type ScoreComponents struct {
	DebtToIncomeRatio     float64
	SavingsToIncomeRatio  float64
	ExpensesToIncomeRatio float64
	NetWorthRatio         float64
}

// ComputeScore maps a financial snapshot to a 0-100 health score and its four
// sub-components. Weights: debt 30, savings 30, expenses 20, net worth 20.
//
// With no income there is nothing to service debt or fund savings with, so the
// ratios report the worst case (debt and expense ratios at 100) and the score
// is 0.
func ComputeScore(in SnapshotInput) (int, ScoreComponents) {
	annualIncome := in.MonthlyIncome * 12

	if annualIncome == 0 {
		return 0, ScoreComponents{
			DebtToIncomeRatio:     100,
			SavingsToIncomeRatio:  0,
			ExpensesToIncomeRatio: 100,
			NetWorthRatio:         0,
		}
	}

	c := ScoreComponents{
		DebtToIncomeRatio:     in.TotalLiabilities / annualIncome * 100,
		SavingsToIncomeRatio:  (in.MonthlyIncome - in.MonthlyExpenses) / in.MonthlyIncome * 100,
		ExpensesToIncomeRatio: in.MonthlyExpenses / in.MonthlyIncome * 100,
		NetWorthRatio:         (in.TotalAssets - in.TotalLiabilities) / annualIncome,
	}

	// Debt-to-income: full 30 points at or below 30%, then a linear penalty.
	debtScore := 30.0
	if c.DebtToIncomeRatio > 30 {
		debtScore = math.Max(0, 30-(c.DebtToIncomeRatio-30)/3)
	}

	// Savings rate: full 30 points at or above 20%.
	savingsScore := 30.0
	if c.SavingsToIncomeRatio < 20 {
		savingsScore = math.Max(0, c.SavingsToIncomeRatio/20*30)
	}

	// Expense ratio: full 20 points at or below 60%.
	expensesScore := 20.0
	if c.ExpensesToIncomeRatio > 60 {
		expensesScore = math.Max(0, 20-(c.ExpensesToIncomeRatio-60)/40*20)
	}

	// Net worth relative to annual income: full 20 points at or above 1x.
	netWorthScore := 20.0
	if c.NetWorthRatio < 1 {
		netWorthScore = math.Max(0, c.NetWorthRatio*20)
	}

	total := debtScore + savingsScore + expensesScore + netWorthScore
	score := int(math.Round(math.Max(0, math.Min(100, total))))
	return score, c
}
