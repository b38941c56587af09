package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/volunteer-hub/internal/config"   // Internal config loader
	"github.com/iliyamo/volunteer-hub/internal/database" // MySQL pool
	"github.com/iliyamo/volunteer-hub/internal/handler"
	"github.com/iliyamo/volunteer-hub/internal/queue"
	"github.com/iliyamo/volunteer-hub/internal/repository"
	"github.com/iliyamo/volunteer-hub/internal/router" // Internal router setup
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables rate limiting and caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting and caching disabled")
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	initiativeRepo := repository.NewInitiativeRepo(db)
	applicationRepo := repository.NewApplicationRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	metricsRepo := repository.NewMetricsRepo(db)

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e, router.Deps{
		Cfg:          cfg,
		Users:        userRepo,
		Redis:        rdb,
		Auth:         handler.NewAuthHandler(cfg, userRepo, tokenRepo),
		User:         handler.NewUserHandler(cfg, userRepo),
		Initiatives:  handler.NewInitiativeHandler(initiativeRepo),
		Applications: handler.NewApplicationHandler(applicationRepo, initiativeRepo),
		Comments:     handler.NewCommentHandler(commentRepo, initiativeRepo),
		Admin:        handler.NewAdminHandler(userRepo, initiativeRepo, metricsRepo),
	})

	// Consume approval events in the background; the consumer runs its own
	// reconnect loop and never stops the server.
	go func() {
		if err := queue.StartApprovalConsumer(); err != nil {
			log.Printf("approval consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
