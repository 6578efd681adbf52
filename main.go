package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"content-backend/config"
	"content-backend/database"
	"content-backend/handlers"
	"content-backend/scheduler"
	"content-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg := config.LoadConfig()

	if err := database.InitDB(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	database.InitRedis(cfg)

	db := database.GetDB()
	cache := database.GetRedis()
	clock := clockwork.NewRealClock()

	llmService := services.NewLLMService(cfg)
	trendService := services.NewTrendService(db, cfg, llmService, cache, clock)
	voteService := services.NewVoteService(db, trendService)
	metricsService := services.NewMetricsService(db)
	eventService := services.NewEventService(db, metricsService)
	rollupService := services.NewRollupService(db)
	retentionService := services.NewRetentionService(db, cfg, clock)
	analyticsService := services.NewAnalyticsService(db, cfg, cache)

	voteHandler := handlers.NewVoteHandler(voteService)
	eventHandler := handlers.NewEventHandler(eventService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	trendingHandler := handlers.NewTrendingHandler(trendService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jobs := scheduler.New(trendService, rollupService, retentionService, cfg, clock)
	go jobs.Run(ctx)

	r := gin.Default()
	v1 := r.Group("/api/v1")
	{
		v1.POST("/articles/:id/vote", voteHandler.CastVote)
		v1.GET("/articles/:id/vote", voteHandler.GetUserVote)
		v1.POST("/articles/:id/events", eventHandler.RecordEvent)
		v1.GET("/analytics/summary", analyticsHandler.GetSummary)
		v1.GET("/trending", trendingHandler.GetTrending)
	}

	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
