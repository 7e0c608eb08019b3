package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	cache "saku-server/src/db"
	db "saku-server/src/db/sql"
	"saku-server/src/ledger"
)

// ClearGoalCaches drops every cached goal projection. The next read of each
// goal recomputes from live sub-goals.
func ClearGoalCaches() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cache.ClearAllGoalCaches()
		log.Printf("INFO: Cleared all goal projection caches")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "goal caches cleared"})
	}
}

// RecoverTransfers reverses transfers that were debited but never credited.
func RecoverTransfers(pool *pgxpool.Pool) http.HandlerFunc {
	store := db.NewStore(pool)

	return func(w http.ResponseWriter, r *http.Request) {
		recovered, err := ledger.RecoverPendingTransfers(r.Context(), store)
		if err != nil {
			log.Printf("ERROR: Transfer recovery failed: %v", err)
			http.Error(w, "transfer recovery failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"recovered": recovered})
	}
}
