package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/skillverse/skillverse/internal/common/clock"
	"github.com/skillverse/skillverse/internal/common/uuid"
	"github.com/skillverse/skillverse/internal/handlers/httpapi"
	ledgerRepo "github.com/skillverse/skillverse/internal/repositories/ledger"
	reviewRepo "github.com/skillverse/skillverse/internal/repositories/review"
	sessionRepo "github.com/skillverse/skillverse/internal/repositories/session"
	userRepo "github.com/skillverse/skillverse/internal/repositories/user"
	bookingService "github.com/skillverse/skillverse/internal/services/booking"
	ledgerService "github.com/skillverse/skillverse/internal/services/ledger"
	reviewService "github.com/skillverse/skillverse/internal/services/review"
	sessionService "github.com/skillverse/skillverse/internal/services/session"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	ledgerRepository, err := ledgerRepo.NewRedis(&ledgerRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create ledger repository: %v", err)
	}

	sessionRepository, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create session repository: %v", err)
	}

	reviewRepository, err := reviewRepo.NewRedis(&reviewRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create review repository: %v", err)
	}

	userRepository, err := userRepo.NewRedis(&userRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create user repository: %v", err)
	}

	systemClock := &clock.DefaultClock{}
	uuidGenerator := uuid.New()

	// Initialize services
	bookingSvc, err := bookingService.New(&bookingService.Config{
		SessionRepo:   sessionRepository,
		LedgerRepo:    ledgerRepository,
		UserRepo:      userRepository,
		Clock:         systemClock,
		UUIDGenerator: uuidGenerator,
	})
	if err != nil {
		log.Fatalf("Failed to create booking service: %v", err)
	}

	sessionSvc, err := sessionService.New(&sessionService.Config{
		SessionRepo:   sessionRepository,
		Clock:         systemClock,
		UUIDGenerator: uuidGenerator,
	})
	if err != nil {
		log.Fatalf("Failed to create session service: %v", err)
	}

	ledgerSvc, err := ledgerService.New(&ledgerService.Config{
		LedgerRepo:    ledgerRepository,
		Clock:         systemClock,
		UUIDGenerator: uuidGenerator,
	})
	if err != nil {
		log.Fatalf("Failed to create ledger service: %v", err)
	}

	reviewSvc, err := reviewService.New(&reviewService.Config{
		ReviewRepo:    reviewRepository,
		SessionRepo:   sessionRepository,
		UserRepo:      userRepository,
		Clock:         systemClock,
		UUIDGenerator: uuidGenerator,
	})
	if err != nil {
		log.Fatalf("Failed to create review service: %v", err)
	}

	// Initialize the HTTP API server
	apiServer, err := httpapi.New(&httpapi.Config{
		BookingService: bookingSvc,
		SessionService: sessionSvc,
		LedgerService:  ledgerSvc,
		ReviewService:  reviewSvc,
	})
	if err != nil {
		log.Fatalf("Failed to create API server: %v", err)
	}

	addr := getEnv("LISTEN_ADDR", ":8080")
	srv := &http.Server{
		Addr:    addr,
		Handler: apiServer.Handler(),
	}

	go func() {
		log.Printf("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	log.Println("Server has been shut down")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
