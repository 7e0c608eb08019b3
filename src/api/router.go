package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"saku-server/src/handlers"
	"saku-server/src/middleware"
)

func NewRouter(pool *pgxpool.Pool, isDemo bool) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.DemoModeMiddleware(isDemo))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", handlers.Login(pool))
		r.Post("/register", handlers.Register(pool))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware).Group(func(r chi.Router) {
			// User
			r.Get("/user", handlers.GetUser(pool))
			r.Put("/user", handlers.UpdateUser(pool))
			r.Post("/user/change-password", handlers.ChangePassword(pool))
			r.Delete("/user", handlers.DeleteUser(pool))

			// Evaluations and scores
			r.Post("/evaluations", handlers.SubmitEvaluation(pool))
			r.Get("/evaluations/latest", handlers.GetLatestEvaluation(pool))
			r.Get("/scores", handlers.GetScores(pool))
			r.Get("/scores/latest", handlers.GetLatestScore(pool))

			// Dashboard
			r.Get("/dashboard", handlers.GetDashboard(pool))

			// Transactions
			r.Post("/transactions", handlers.CreateTransaction(pool))
			r.Get("/transactions", handlers.GetAllTransactions(pool))
			r.Get("/transactions/{transaction_id}", handlers.GetTransactionByID(pool))
			r.Put("/transactions/{transaction_id}", handlers.UpdateTransaction(pool))
			r.Delete("/transactions/{transaction_id}", handlers.DeleteTransaction(pool))

			// Pockets
			r.Post("/pockets", handlers.CreatePocket(pool))
			r.Get("/pockets", handlers.GetAllPockets(pool))
			r.Get("/pockets/{pocket_id}", handlers.GetPocketByID(pool))
			r.Put("/pockets/{pocket_id}", handlers.UpdatePocket(pool))
			r.Delete("/pockets/{pocket_id}", handlers.DeletePocket(pool))

			// Pocket transactions
			r.Post("/pocket-transactions", handlers.CreatePocketTransaction(pool))
			r.Get("/pocket-transactions", handlers.GetAllPocketTransactions(pool))
			r.Delete("/pocket-transactions/{pocket_transaction_id}", handlers.DeletePocketTransaction(pool))

			// Goals
			r.Post("/goals", handlers.CreateGoal(pool))
			r.Get("/goals", handlers.GetAllGoals(pool))
			r.Get("/goals/{goal_id}", handlers.GetGoalByID(pool))
			r.Put("/goals/{goal_id}", handlers.UpdateGoal(pool))
			r.Delete("/goals/{goal_id}", handlers.DeleteGoal(pool))
			r.Get("/goals/{goal_id}/sub-goals", handlers.GetSubGoalsForGoal(pool))

			// Sub-goals
			r.Post("/sub-goals", handlers.CreateSubGoal(pool))
			r.Put("/sub-goals/{sub_goal_id}", handlers.UpdateSubGoal(pool))
			r.Delete("/sub-goals/{sub_goal_id}", handlers.DeleteSubGoal(pool))
		})

		// Admin routes
		r.With(middleware.JWTAuthMiddleware, middleware.AdminMiddleware).Group(func(r chi.Router) {
			r.Get("/admin/users", handlers.GetAllUsers(pool))
			r.Post("/admin/user/lock/{user_id}", handlers.SetUserLocked(pool, true))
			r.Post("/admin/user/unlock/{user_id}", handlers.SetUserLocked(pool, false))
			r.Delete("/admin/user/{user_id}", handlers.AdminDeleteUser(pool))

			r.Post("/admin/cache/clear/goals", handlers.ClearGoalCaches())
			r.Post("/admin/transfers/recover", handlers.RecoverTransfers(pool))
		})
	})

	return r
}
