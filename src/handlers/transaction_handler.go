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

type transactionRequest struct {
	Type           string    `json:"type"`
	Category       string    `json:"category"`
	Amount         float64   `json:"amount"`
	Date           time.Time `json:"date"`
	Description    *string   `json:"description"`
	SourcePocket   *int64    `json:"source_pocket"`
	RelatedGoal    *int64    `json:"related_goal"`
	RelatedSubGoal *int64    `json:"related_sub_goal"`
}

func (req transactionRequest) toModel(userID int64) *models.Transaction {
	date := req.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	return &models.Transaction{
		UserID:         userID,
		Type:           req.Type,
		Category:       req.Category,
		Amount:         req.Amount,
		Date:           date,
		Description:    req.Description,
		SourcePocket:   req.SourcePocket,
		RelatedGoal:    req.RelatedGoal,
		RelatedSubGoal: req.RelatedSubGoal,
	}
}

func CreateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	store := db.NewStore(pool)
	engine := ledger.NewEngine(store)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req transactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		tx := req.toModel(userID)
		if err := engine.ValidateTransaction(tx); err != nil {
			log.Printf("ERROR: Transaction validation failed for user %d: %v", userID, err)
			writeLedgerError(w, err)
			return
		}

		created, err := db.CreateTransaction(r.Context(), pool, tx)
		if err != nil {
			log.Printf("ERROR: Failed to create transaction for user %d: %v", userID, err)
			http.Error(w, "failed to create transaction", http.StatusInternalServerError)
			return
		}

		// The row is committed; the cascade runs after it and its failures do
		// not undo it. A missing referenced pocket or sub-goal gets logged by
		// the engine and reported alongside the created row.
		if err := engine.ApplyTransaction(r.Context(), userID, created); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"transaction": created,
				"warning":     err.Error(),
			})
			return
		}

		log.Printf("INFO: Created transaction id %d for user %d (%s %s %.2f)",
			created.ID, userID, created.Type, created.Category, created.Amount)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetAllTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		transactions, err := db.GetAllTransactionsForUser(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get transactions for user %d: %v", userID, err)
			http.Error(w, "failed to get transactions", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transactions)
	}
}

func GetTransactionByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		transactionID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}
		transaction, err := db.GetTransactionByID(r.Context(), pool, userID, transactionID)
		if err != nil {
			log.Printf("ERROR: Transaction id %d not found for user %d: %v", transactionID, userID, err)
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transaction)
	}
}

func UpdateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	store := db.NewStore(pool)
	engine := ledger.NewEngine(store)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		transactionID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}

		var req transactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update transaction request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		tx := req.toModel(userID)
		tx.ID = transactionID
		if err := engine.ValidateTransaction(tx); err != nil {
			log.Printf("ERROR: Transaction validation failed for user %d: %v", userID, err)
			writeLedgerError(w, err)
			return
		}

		updated, err := db.UpdateTransaction(r.Context(), pool, tx)
		if err != nil {
			log.Printf("ERROR: Failed to update transaction id %d for user %d: %v", transactionID, userID, err)
			http.Error(w, "failed to update transaction", http.StatusInternalServerError)
			return
		}

		if err := engine.ApplyTransaction(r.Context(), userID, updated); err != nil {
			log.Printf("ERROR: Cascade reported missing reference for transaction %d (user %d): %v",
				updated.ID, userID, err)
		}

		log.Printf("INFO: Updated transaction id %d for user %d", updated.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	store := db.NewStore(pool)
	reversal := ledger.NewReversal(store)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		transactionID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}

		transaction, err := db.GetTransactionByID(r.Context(), pool, userID, transactionID)
		if err != nil {
			log.Printf("ERROR: Transaction id %d not found for user %d: %v", transactionID, userID, err)
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		if err := db.DeleteTransaction(r.Context(), pool, userID, transactionID); err != nil {
			log.Printf("ERROR: Failed to delete transaction id %d for user %d: %v", transactionID, userID, err)
			http.Error(w, "failed to delete transaction", http.StatusInternalServerError)
			return
		}

		reversal.ReverseTransaction(r.Context(), userID, transaction)

		log.Printf("INFO: Deleted transaction id %d for user %d", transactionID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "transaction deleted"})
	}
}
