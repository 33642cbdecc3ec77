package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/classpoll/api/internal/adapters/event"
	handler "github.com/classpoll/api/internal/adapters/handler/http"
	"github.com/classpoll/api/internal/adapters/oauth/google"
	"github.com/classpoll/api/internal/adapters/repository/postgres"
	"github.com/classpoll/api/internal/core/ports"
	"github.com/classpoll/api/internal/core/services"
	"github.com/classpoll/api/internal/voterid"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	pollRepo := postgres.NewPollRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	resultRepo := postgres.NewResultRepository(db)
	userRepo := postgres.NewUserRepository(db)
	authRepo := postgres.NewAuthRepository(db)

	hasher := voterid.NewHasher(os.Getenv("VOTER_HASH_SECRET"))

	var publisher ports.VotePublisher
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		topic := os.Getenv("KAFKA_TOPIC")
		if topic == "" {
			topic = "poll-votes"
		}
		publisher = event.NewPublisher(strings.Split(brokers, ","), topic)
		defer publisher.Close()
	}

	pollService := services.NewPollService(pollRepo)
	voteService := services.NewVoteService(pollRepo, voteRepo, hasher, publisher)
	resultService := services.NewResultService(pollRepo, resultRepo)
	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userRepo, authRepo, google.NewVerifier())

	pollHandler := handler.NewPollHandler(pollService)
	voteHandler := handler.NewVoteHandler(voteService)
	resultHandler := handler.NewResultHandler(resultService)
	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService, os.Getenv("AUTH_REDIRECT_URL"), os.Getenv("COOKIE_DOMAIN"), stdhttp.SameSiteLaxMode)

	allowedOrigins := []string{"*"}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		allowedOrigins = strings.Split(origins, ",")
	}

	router := handler.NewHandler(pollHandler, voteHandler, resultHandler, userHandler, authHandler, []byte(os.Getenv("JWT_SECRET")), allowedOrigins)
	server := &stdhttp.Server{Addr: "0.0.0.0:8080", Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func dbConnString() string {
	dbName := os.Getenv("POSTGRES_DB")
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}
