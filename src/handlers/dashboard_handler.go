package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	db "saku-server/src/db/sql"
	"saku-server/src/models"
)

type dashboardResponse struct {
	Score              *models.FinancialScore    `json:"score"`
	ScoreHistory       []models.FinancialScore   `json:"score_history"`
	Snapshot           *models.FinancialSnapshot `json:"snapshot"`
	Pockets            []models.Pocket           `json:"pockets"`
	RecentTransactions []models.Transaction      `json:"recent_transactions"`
	TransactionCount   int64                     `json:"transaction_count"`
	MonthlyIncome      float64                   `json:"monthly_income"`
	MonthlyExpenses    float64                   `json:"monthly_expenses"`
}

// GetDashboard aggregates the data the home screen renders in one round trip.
func GetDashboard(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		ctx := r.Context()

		score, err := db.GetLatestScore(ctx, pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get latest score for user %d: %v", userID, err)
			http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
			return
		}

		history, err := db.GetScoresForUser(ctx, pool, userID, 6)
		if err != nil {
			log.Printf("ERROR: Failed to get score history for user %d: %v", userID, err)
			http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
			return
		}

		snapshot, err := db.GetLatestSnapshot(ctx, pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get latest snapshot for user %d: %v", userID, err)
			http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
			return
		}

		pockets, err := db.GetAllPocketsForUser(ctx, pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get pockets for user %d: %v", userID, err)
			http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
			return
		}

		recent, err := db.GetRecentTransactionsForUser(ctx, pool, userID, 5)
		if err != nil {
			log.Printf("ERROR: Failed to get recent transactions for user %d: %v", userID, err)
			http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
			return
		}

		count, err := db.CountTransactionsForUser(ctx, pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to count transactions for user %d: %v", userID, err)
			http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
			return
		}

		now := time.Now().UTC()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		income, expenses, err := db.GetMonthlyTotals(ctx, pool, userID, monthStart)
		if err != nil {
			log.Printf("ERROR: Failed to get monthly totals for user %d: %v", userID, err)
			http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(dashboardResponse{
			Score:              score,
			ScoreHistory:       history,
			Snapshot:           snapshot,
			Pockets:            pockets,
			RecentTransactions: recent,
			TransactionCount:   count,
			MonthlyIncome:      income,
			MonthlyExpenses:    expenses,
		})
	}
}
