package main

import (
	"context"
	"fmt"
	"log"

	"user-account-api/core"
)

func main() {
	cfg, err := core.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	ctx := context.Background()

	logCloser, err := core.SetupLogging(cfg, "api.log")
	if err != nil {
		log.Fatalf("failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	db, err := core.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	if err := core.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	redisClient, err := core.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer redisClient.Close()

	tokens, err := core.NewTokenService(cfg)
	if err != nil {
		log.Fatalf("failed to init token service: %v", err)
	}

	userRepo := core.NewPgUserRepository(db)
	authService := core.NewRepositoryAuthService(userRepo, tokens)
	limiter := core.NewLoginLimiter(redisClient, cfg.LoginWindow(), cfg.LoginMaxAttempts)
	metrics := core.NewMetricsService(redisClient)

	router := core.NewRouter(cfg, authService, userRepo, tokens, limiter, metrics, db, redisClient)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("starting api server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
