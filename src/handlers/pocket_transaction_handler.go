package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	db "saku-server/src/db/sql"
	"saku-server/src/ledger"
	"saku-server/src/models"
)

func CreatePocketTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	store := db.NewStore(pool)
	engine := ledger.NewEngine(store)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req struct {
			TransactionType    string    `json:"transaction_type"`
			FromPocket         *int64    `json:"from_pocket"`
			ToPocket           *int64    `json:"to_pocket"`
			Amount             float64   `json:"amount"`
			Date               time.Time `json:"date"`
			Description        *string   `json:"description"`
			Notes              *string   `json:"notes"`
			RelatedTransaction *int64    `json:"related_transaction"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode pocket transaction request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		date := req.Date
		if date.IsZero() {
			date = time.Now().UTC()
		}
		pt := &models.PocketTransaction{
			UserID:             userID,
			TransactionType:    req.TransactionType,
			FromPocket:         req.FromPocket,
			ToPocket:           req.ToPocket,
			Amount:             req.Amount,
			Date:               date,
			Description:        req.Description,
			Notes:              req.Notes,
			RelatedTransaction: req.RelatedTransaction,
		}

		// Required fields, then balance sufficiency, before any write.
		if err := engine.ValidatePocketTransaction(r.Context(), userID, pt); err != nil {
			log.Printf("ERROR: Pocket transaction rejected for user %d: %v", userID, err)
			if !writeLedgerError(w, err) {
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		created, err := db.CreatePocketTransaction(r.Context(), pool, pt)
		if err != nil {
			log.Printf("ERROR: Failed to create pocket transaction for user %d: %v", userID, err)
			http.Error(w, "failed to create pocket transaction", http.StatusInternalServerError)
			return
		}

		// Balance cascade; failures are logged by the engine and do not fail
		// the committed row.
		engine.ApplyPocketTransaction(r.Context(), userID, created)

		log.Printf("INFO: Created pocket transaction id %d (%s, %.2f) for user %d",
			created.ID, created.TransactionType, created.Amount, userID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetAllPocketTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		transactions, err := db.GetAllPocketTransactionsForUser(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get pocket transactions for user %d: %v", userID, err)
			http.Error(w, "failed to get pocket transactions", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transactions)
	}
}

func DeletePocketTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	store := db.NewStore(pool)
	reversal := ledger.NewReversal(store)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		pocketTransactionID, err := strconv.ParseInt(chi.URLParam(r, "pocket_transaction_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid pocket transaction id", http.StatusBadRequest)
			return
		}

		pt, err := db.GetPocketTransactionByID(r.Context(), pool, userID, pocketTransactionID)
		if err != nil {
			log.Printf("ERROR: Pocket transaction id %d not found for user %d: %v", pocketTransactionID, userID, err)
			http.Error(w, "pocket transaction not found", http.StatusNotFound)
			return
		}

		if err := db.DeletePocketTransaction(r.Context(), pool, userID, pocketTransactionID); err != nil {
			log.Printf("ERROR: Failed to delete pocket transaction id %d for user %d: %v", pocketTransactionID, userID, err)
			http.Error(w, "failed to delete pocket transaction", http.StatusInternalServerError)
			return
		}

		reversal.ReversePocketTransaction(r.Context(), userID, pt)

		log.Printf("INFO: Deleted pocket transaction id %d for user %d", pocketTransactionID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "pocket transaction deleted"})
	}
}
