package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	db "saku-server/src/db/sql"
)

func GetScores(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		limit := 20
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > 100 {
				http.Error(w, "limit must be between 1 and 100", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		scores, err := db.GetScoresForUser(r.Context(), pool, userID, limit)
		if err != nil {
			log.Printf("ERROR: Failed to get scores for user %d: %v", userID, err)
			http.Error(w, "failed to get scores", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(scores)
	}
}

func GetLatestScore(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		score, err := db.GetLatestScore(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get latest score for user %d: %v", userID, err)
			http.Error(w, "failed to get score", http.StatusInternalServerError)
			return
		}
		if score == nil {
			http.Error(w, "no score on record", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(score)
	}
}
