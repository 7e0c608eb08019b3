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

type subGoalRequest struct {
	GoalID          int64   `json:"goal_id"`
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	AllocatedAmount float64 `json:"allocated_amount"`
	AssetType       string  `json:"asset_type"`
	Notes           *string `json:"notes"`
}

func CreateSubGoal(pool *pgxpool.Pool) http.HandlerFunc {
	projector := newGoalProjector(pool)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		var req subGoalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create sub-goal request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "sub-goal name is required", http.StatusBadRequest)
			return
		}
		if req.AllocatedAmount < 0 {
			http.Error(w, "allocated amount cannot be negative", http.StatusBadRequest)
			return
		}
		if req.AssetType == "" {
			req.AssetType = "cash"
		}

		// Sub-goals always hang off a goal the caller owns.
		if _, err := db.GetGoalByID(r.Context(), pool, userID, req.GoalID); err != nil {
			log.Printf("ERROR: Goal id %d not found for user %d: %v", req.GoalID, userID, err)
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}

		created, err := db.CreateSubGoal(r.Context(), pool, &models.SubGoal{
			UserID:          userID,
			GoalID:          req.GoalID,
			Name:            req.Name,
			Description:     req.Description,
			AllocatedAmount: req.AllocatedAmount,
			AssetType:       req.AssetType,
			Notes:           req.Notes,
		})
		if err != nil {
			log.Printf("ERROR: Failed to create sub-goal for user %d: %v", userID, err)
			http.Error(w, "failed to create sub-goal", http.StatusInternalServerError)
			return
		}

		projector.Invalidate(req.GoalID)

		log.Printf("INFO: Created sub-goal id %d under goal %d for user %d", created.ID, req.GoalID, userID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetSubGoalsForGoal(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		goalID, err := strconv.ParseInt(chi.URLParam(r, "goal_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid goal id", http.StatusBadRequest)
			return
		}
		if _, err := db.GetGoalByID(r.Context(), pool, userID, goalID); err != nil {
			log.Printf("ERROR: Goal id %d not found for user %d: %v", goalID, userID, err)
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		subGoals, err := db.GetSubGoalsForGoal(r.Context(), pool, goalID)
		if err != nil {
			log.Printf("ERROR: Failed to get sub-goals for goal %d: %v", goalID, err)
			http.Error(w, "failed to get sub-goals", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(subGoals)
	}
}

func UpdateSubGoal(pool *pgxpool.Pool) http.HandlerFunc {
	projector := newGoalProjector(pool)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		subGoalID, err := strconv.ParseInt(chi.URLParam(r, "sub_goal_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid sub-goal id", http.StatusBadRequest)
			return
		}

		var req subGoalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update sub-goal request body for user %d: %v", userID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.AllocatedAmount < 0 {
			http.Error(w, "allocated amount cannot be negative", http.StatusBadRequest)
			return
		}

		existing, err := db.GetSubGoalByID(r.Context(), pool, userID, subGoalID)
		if err != nil {
			log.Printf("ERROR: Sub-goal id %d not found for user %d: %v", subGoalID, userID, err)
			http.Error(w, "sub-goal not found", http.StatusNotFound)
			return
		}

		existing.Name = req.Name
		existing.Description = req.Description
		existing.AllocatedAmount = req.AllocatedAmount
		if req.AssetType != "" {
			existing.AssetType = req.AssetType
		}
		existing.Notes = req.Notes

		updated, err := db.UpdateSubGoal(r.Context(), pool, existing)
		if err != nil {
			log.Printf("ERROR: Failed to update sub-goal id %d for user %d: %v", subGoalID, userID, err)
			http.Error(w, "failed to update sub-goal", http.StatusInternalServerError)
			return
		}

		projector.Invalidate(existing.GoalID)

		log.Printf("INFO: Updated sub-goal id %d for user %d", updated.ID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteSubGoal(pool *pgxpool.Pool) http.HandlerFunc {
	projector := newGoalProjector(pool)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		subGoalID, err := strconv.ParseInt(chi.URLParam(r, "sub_goal_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid sub-goal id", http.StatusBadRequest)
			return
		}

		existing, err := db.GetSubGoalByID(r.Context(), pool, userID, subGoalID)
		if err != nil {
			log.Printf("ERROR: Sub-goal id %d not found for user %d: %v", subGoalID, userID, err)
			http.Error(w, "sub-goal not found", http.StatusNotFound)
			return
		}

		if err := db.DeleteSubGoal(r.Context(), pool, userID, subGoalID); err != nil {
			log.Printf("ERROR: Failed to delete sub-goal id %d for user %d: %v", subGoalID, userID, err)
			http.Error(w, "failed to delete sub-goal", http.StatusInternalServerError)
			return
		}

		projector.Invalidate(existing.GoalID)

		log.Printf("INFO: Deleted sub-goal id %d for user %d", subGoalID, userID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "sub-goal deleted"})
	}
}
