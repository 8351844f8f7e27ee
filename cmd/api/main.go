package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"newstracker/db"
	"newstracker/internal/config"
	"newstracker/internal/handler"
	"newstracker/internal/repository"
	"newstracker/pkg/news"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if !cfg.APIKeyConfigured() {
		slog.Error("NEWS_API_KEY is not configured, data endpoints will return empty results")
	}

	var recorder news.UsageRecorder
	var usageStore handler.UsageStore

	err := db.ConnectRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		slog.Error("error connecting to Redis, usage tracking disabled", "error", err)
	} else if db.Redis != nil {
		defer db.CloseRedis()
		usageRepo := repository.NewUsageRepository(db.Redis)
		recorder = usageRepo
		usageStore = usageRepo
	}

	client := news.NewEventRegistryClient(cfg.NewsAPIKey, cfg.NewsAPIBaseURL, cfg.UpstreamTimeout, recorder)

	newsHandler := handler.NewNewsHandler(client)
	usageHandler := handler.NewUsageHandler(usageStore, client.Name())

	r := gin.Default()
	handler.RegisterRoutes(r, newsHandler, usageHandler)

	slog.Info("starting server", "addr", cfg.Addr(), "upstream", cfg.NewsAPIBaseURL, "usage_tracking", usageStore != nil)

	err = r.Run(cfg.Addr())
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
