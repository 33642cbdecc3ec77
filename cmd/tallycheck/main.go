package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/classpoll/api/internal/adapters/repository/postgres"
	"github.com/classpoll/api/internal/core/services"
)

// Recomputes per-poll vote counts from the records and fails loudly if any
// poll's option tallies diverge. A non-zero exit here means the submission
// path lost atomicity and needs investigating.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dbHost := os.Getenv("POSTGRES_HOST")
	dbPort := os.Getenv("POSTGRES_PORT")
	dbUser := os.Getenv("POSTGRES_USER")
	dbPass := os.Getenv("POSTGRES_PASSWORD")
	dbName := os.Getenv("POSTGRES_DB")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	pollRepo := postgres.NewPollRepository(db)
	resultRepo := postgres.NewResultRepository(db)

	auditor := services.NewTallyAuditService(pollRepo, resultRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Println("Starting tally audit...")

	if err := auditor.AuditAll(ctx); err != nil {
		log.Fatalf("Tally audit failed: %v", err)
	}

	log.Println("Tally audit completed successfully.")
}
