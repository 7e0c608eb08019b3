package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	db "saku-server/src/db/sql"
	"saku-server/src/finance"
	"saku-server/src/ledger"
)

// SubmitEvaluation accepts a manual financial evaluation and stores it as the
// user's new base snapshot with a server-computed score.
func SubmitEvaluation(pool *pgxpool.Pool) http.HandlerFunc {
	recalc := ledger.NewSnapshotRecalculator(db.NewStore(pool))

	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req struct {
			MonthlyIncome    float64 `json:"monthly_income"`
			MonthlyExpenses  float64 `json:"monthly_expenses"`
			TotalAssets      float64 `json:"total_assets"`
			TotalLiabilities float64 `json:"total_liabilities"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode evaluation request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		snapshot, err := recalc.SubmitEvaluation(r.Context(), userID, finance.SnapshotInput{
			MonthlyIncome:    req.MonthlyIncome,
			MonthlyExpenses:  req.MonthlyExpenses,
			TotalAssets:      req.TotalAssets,
			TotalLiabilities: req.TotalLiabilities,
		})
		if err != nil {
			log.Printf("ERROR: Failed to submit evaluation for user %d: %v", userID, err)
			if !writeLedgerError(w, err) {
				http.Error(w, "failed to submit evaluation", http.StatusInternalServerError)
			}
			return
		}

		log.Printf("INFO: Recorded evaluation for user %d with score %d", userID, snapshot.Score)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(snapshot)
	}
}

// GetLatestEvaluation returns the most recent snapshot, or 404 when the user
// has never submitted one.
func GetLatestEvaluation(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		snapshot, err := db.GetLatestSnapshot(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get latest snapshot for user %d: %v", userID, err)
			http.Error(w, "failed to get evaluation", http.StatusInternalServerError)
			return
		}
		if snapshot == nil {
			http.Error(w, "no evaluation on record", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshot)
	}
}
