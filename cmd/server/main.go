package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/GabrielPedrotti/irecipes/internal/config"
	"github.com/GabrielPedrotti/irecipes/internal/db"
	"github.com/GabrielPedrotti/irecipes/internal/handler"
	"github.com/GabrielPedrotti/irecipes/internal/middleware"
	"github.com/GabrielPedrotti/irecipes/internal/repository"
	"github.com/GabrielPedrotti/irecipes/internal/router"
	"github.com/GabrielPedrotti/irecipes/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "irecipes-api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)

	videoRepo := repository.NewVideoRepo(pool)
	userRepo := repository.NewUserRepo(pool)
	interactionRepo := repository.NewInteractionRepo(pool)

	ranker := service.NewRankerService(videoRepo, userRepo, cfg.FeedCandidateLimit)
	feedSvc := service.NewFeedService(videoRepo, userRepo, interactionRepo, ranker, cache, cfg.FeedShuffle)
	interactionSvc := service.NewInteractionService(interactionRepo)
	videoSvc := service.NewVideoService(videoRepo, userRepo, interactionRepo, cache)
	userSvc := service.NewUserService(userRepo)

	worker := service.NewEngagementWorker(pool, videoRepo, cache)
	go worker.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "iRecipes API",
		ServerHeader: "iRecipes",
	})

	router.Setup(app, &router.Handlers{
		Video:       handler.NewVideoHandler(videoSvc),
		Feed:        handler.NewFeedHandler(feedSvc),
		Interaction: handler.NewInteractionHandler(interactionSvc),
		User:        handler.NewUserHandler(userSvc),
		Stats:       handler.NewStatsHandler(videoSvc),
		Health:      handler.NewHealthHandler(pool, cache.Client()),
	}, cfg.CORSOrigins)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("shutdown signal received")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("server shutdown error: %v", err)
		}
	}()

	log.Printf("iRecipes backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
