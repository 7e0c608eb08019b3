package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	db "saku-server/src/db/sql"
	"saku-server/src/models"
)

type pocketRequest struct {
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	Balance      float64  `json:"balance"`
	PocketType   string   `json:"pocket_type"`
	TargetAmount *float64 `json:"target_amount"`
	IsActive     *bool    `json:"is_active"`
	Icon         string   `json:"icon"`
	Color        string   `json:"color"`
}

func CreatePocket(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req pocketRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create pocket request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "pocket name is required", http.StatusBadRequest)
			return
		}
		if req.Balance < 0 {
			http.Error(w, "balance cannot be negative", http.StatusBadRequest)
			return
		}

		pocket := &models.Pocket{
			UserID:       userID,
			Name:         req.Name,
			Description:  req.Description,
			Balance:      req.Balance,
			PocketType:   req.PocketType,
			TargetAmount: req.TargetAmount,
			IsActive:     true,
			Icon:         req.Icon,
			Color:        req.Color,
		}
		if pocket.PocketType == "" {
			pocket.PocketType = "custom"
		}
		if pocket.Icon == "" {
			pocket.Icon = "wallet"
		}
		if pocket.Color == "" {
			pocket.Color = "blue"
		}

		created, err := db.CreatePocket(r.Context(), pool, pocket)
		if err != nil {
			log.Printf("ERROR: Failed to create pocket for user %d: %v", userID, err)
			http.Error(w, "failed to create pocket", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Created pocket id %d (%s) for user %d", created.ID, created.Name, userID)

		// A new main pocket brings the default emergency-fund and savings
		// pockets with it. Seeding failures are logged, not fatal.
		if created.PocketType == "main" {
			if err := db.CreateDefaultPockets(r.Context(), pool, userID); err != nil {
				log.Printf("ERROR: Failed to create default pockets for user %d: %v", userID, err)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetAllPockets(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		pockets, err := db.GetAllPocketsForUser(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get pockets for user %d: %v", userID, err)
			http.Error(w, "failed to get pockets", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(pockets)
	}
}

func GetPocketByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		pocketID, err := strconv.ParseInt(chi.URLParam(r, "pocket_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid pocket id", http.StatusBadRequest)
			return
		}
		pocket, err := db.GetPocketByID(r.Context(), pool, userID, pocketID)
		if err != nil {
			log.Printf("ERROR: Pocket id %d not found for user %d: %v", pocketID, userID, err)
			http.Error(w, "pocket not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(pocket)
	}
}

// UpdatePocket changes descriptive fields only. Balance moves exclusively
// through ledger events.
func UpdatePocket(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		pocketID, err := strconv.ParseInt(chi.URLParam(r, "pocket_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid pocket id", http.StatusBadRequest)
			return
		}

		var req pocketRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update pocket request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		existing, err := db.GetPocketByID(r.Context(), pool, userID, pocketID)
		if err != nil {
			log.Printf("ERROR: Pocket id %d not found for user %d: %v", pocketID, userID, err)
			http.Error(w, "pocket not found", http.StatusNotFound)
			return
		}

		existing.Name = req.Name
		existing.Description = req.Description
		existing.TargetAmount = req.TargetAmount
		if req.PocketType != "" {
			existing.PocketType = req.PocketType
		}
		if req.Icon != "" {
			existing.Icon = req.Icon
		}
		if req.Color != "" {
			existing.Color = req.Color
		}
		if req.IsActive != nil {
			existing.IsActive = *req.IsActive
		}

		updated, err := db.UpdatePocket(r.Context(), pool, existing)
		if err != nil {
			log.Printf("ERROR: Failed to update pocket id %d for user %d: %v", pocketID, userID, err)
			http.Error(w, "failed to update pocket", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Updated pocket id %d for user %d", updated.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeletePocket(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		pocketID, err := strconv.ParseInt(chi.URLParam(r, "pocket_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid pocket id", http.StatusBadRequest)
			return
		}
		if err := db.DeletePocket(r.Context(), pool, userID, pocketID); err != nil {
			log.Printf("ERROR: Failed to delete pocket id %d for user %d: %v", pocketID, userID, err)
			http.Error(w, "failed to delete pocket", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Deleted pocket id %d for user %d", pocketID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "pocket deleted"})
	}
}
