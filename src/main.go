package main

import (
	"context"
	"log"
	"net/http"

	"saku-server/src/api"
	"saku-server/src/config"
	"saku-server/src/db"
	sqldb "saku-server/src/db/sql"
	"saku-server/src/ledger"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Connect to database
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	db.InitCache()

	// Reverse any transfer that was debited but never credited before the
	// last shutdown.
	recovered, err := ledger.RecoverPendingTransfers(ctx, sqldb.NewStore(pool))
	if err != nil {
		log.Fatalf("Transfer recovery failed: %v", err)
	}
	if recovered > 0 {
		log.Printf("INFO: Recovered %d incomplete transfers at startup", recovered)
	}

	// Router
	router := api.NewRouter(pool, cfg.DemoMode)

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
