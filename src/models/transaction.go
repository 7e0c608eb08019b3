package models

import "time"

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// IncomeCategories and ExpenseCategories are the fixed category sets accepted
// on transaction create/update.
var (
	IncomeCategories = []string{"salary", "freelance", "investment", "bonus", "other-income"}

	ExpenseCategories = []string{
		"food", "transportation", "shopping", "bills",
		"entertainment", "health", "education", "other-expense",
	}
)

// Transaction is a single ledger entry. Amount is always stored positive; the
// sign is carried by Type.
type Transaction struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Type           string    `json:"type"`
	Category       string    `json:"category"`
	Amount         float64   `json:"amount"`
	Date           time.Time `json:"date"`
	Description    *string   `json:"description"`
	SourcePocket   *int64    `json:"source_pocket"`
	RelatedGoal    *int64    `json:"related_goal"`
	RelatedSubGoal *int64    `json:"related_sub_goal"`
	CreatedAt      time.Time `json:"created_at"`
}

func ValidCategory(txType, category string) bool {
	var set []string
	switch txType {
	case TransactionIncome:
		set = IncomeCategories
	case TransactionExpense:
		set = ExpenseCategories
	default:
		return false
	}
	for _, c := range set {
		if c == category {
			return true
		}
	}
	return false
}
