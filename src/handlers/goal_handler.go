package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	cache "saku-server/src/db"
	db "saku-server/src/db/sql"
	"saku-server/src/ledger"
	"saku-server/src/models"
)

type goalRequest struct {
	Name         string     `json:"name"`
	Description  *string    `json:"description"`
	TargetAmount float64    `json:"target_amount"`
	TargetDate   *time.Time `json:"target_date"`
	Priority     string     `json:"priority"`
}

func newGoalProjector(pool *pgxpool.Pool) *ledger.GoalProjector {
	return ledger.NewGoalProjector(db.NewStore(pool), cache.GoalProjectionCache{})
}

func CreateGoal(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req goalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create goal request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "goal name is required", http.StatusBadRequest)
			return
		}
		if req.TargetAmount <= 0 {
			http.Error(w, "target amount must be positive", http.StatusBadRequest)
			return
		}
		if req.Priority == "" {
			req.Priority = models.PriorityMedium
		}
		if !models.ValidPriority(req.Priority) {
			http.Error(w, "priority must be low, medium or high", http.StatusBadRequest)
			return
		}

		created, err := db.CreateGoal(r.Context(), pool, &models.FinancialGoal{
			UserID:       userID,
			Name:         req.Name,
			Description:  req.Description,
			TargetAmount: req.TargetAmount,
			TargetDate:   req.TargetDate,
			Priority:     req.Priority,
		})
		if err != nil {
			log.Printf("ERROR: Failed to create goal for user %d: %v", userID, err)
			http.Error(w, "failed to create goal", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Created goal id %d (%s) for user %d", created.ID, created.Name, userID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

// GetGoalByID serves the goal with live derived fields projected from its
// sub-goals.
func GetGoalByID(pool *pgxpool.Pool) http.HandlerFunc {
	projector := newGoalProjector(pool)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		goalID, err := strconv.ParseInt(chi.URLParam(r, "goal_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}
		goal, err := projector.Project(r.Context(), userID, goalID)
		if err != nil {
			log.Printf("ERROR: Goal id %d not found for user %d: %v", goalID, userID, err)
			if !writeLedgerError(w, err) {
				http.Error(w, "goal not found", http.StatusNotFound)
			}
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(goal)
	}
}

func GetAllGoals(pool *pgxpool.Pool) http.HandlerFunc {
	projector := newGoalProjector(pool)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		goals, err := db.GetAllGoalsForUser(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get goals for user %d: %v", userID, err)
			http.Error(w, "failed to get goals", http.StatusInternalServerError)
			return
		}
		goals = projector.ProjectAll(r.Context(), goals)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(goals)
	}
}

func UpdateGoal(pool *pgxpool.Pool) http.HandlerFunc {
	projector := newGoalProjector(pool)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		goalID, err := strconv.ParseInt(chi.URLParam(r, "goal_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}

		var req goalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update goal request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.TargetAmount <= 0 {
			http.Error(w, "target amount must be positive", http.StatusBadRequest)
			return
		}
		if req.Priority != "" && !models.ValidPriority(req.Priority) {
			http.Error(w, "priority must be low, medium or high", http.StatusBadRequest)
			return
		}

		existing, err := db.GetGoalByID(r.Context(), pool, userID, goalID)
		if err != nil {
			log.Printf("ERROR: Goal id %d not found for user %d: %v", goalID, userID, err)
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}

		existing.Name = req.Name
		existing.Description = req.Description
		existing.TargetAmount = req.TargetAmount
		existing.TargetDate = req.TargetDate
		if req.Priority != "" {
			existing.Priority = req.Priority
		}

		updated, err := db.UpdateGoal(r.Context(), pool, existing)
		if err != nil {
			log.Printf("ERROR: Failed to update goal id %d for user %d: %v", goalID, userID, err)
			http.Error(w, "failed to update goal", http.StatusInternalServerError)
			return
		}

		// Target changes shift progress and the savings estimate.
		projector.Invalidate(goalID)

		log.Printf("INFO: Updated goal id %d for user %d", updated.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteGoal(pool *pgxpool.Pool) http.HandlerFunc {
	projector := newGoalProjector(pool)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		goalID, err := strconv.ParseInt(chi.URLParam(r, "goal_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}
		if err := db.DeleteGoal(r.Context(), pool, userID, goalID); err != nil {
			log.Printf("ERROR: Failed to delete goal id %d for user %d: %v", goalID, userID, err)
			http.Error(w, "failed to delete goal", http.StatusInternalServerError)
			return
		}
		projector.Invalidate(goalID)
		log.Printf("INFO: Deleted goal id %d for user %d", goalID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "goal deleted"})
	}
}
