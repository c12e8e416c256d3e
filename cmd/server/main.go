package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/linkedweld/linkedweld-api/internal/config"
	"github.com/linkedweld/linkedweld-api/internal/database"
	"github.com/linkedweld/linkedweld-api/internal/handler"
	"github.com/linkedweld/linkedweld-api/internal/middleware"
	"github.com/linkedweld/linkedweld-api/internal/queue"
	"github.com/linkedweld/linkedweld-api/internal/repository"
	"github.com/linkedweld/linkedweld-api/internal/router"
	"github.com/linkedweld/linkedweld-api/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	jobs := repository.NewJobRepo(db)
	applications := repository.NewApplicationRepo(db)
	notifications := repository.NewNotificationRepo(db)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; caching and rate limiting disabled")
	}
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	authH := handler.NewAuthHandler(cfg, users, tokens, service.PublishEvent)
	jobH := handler.NewJobHandler(jobs)
	appH := handler.NewApplicationHandler(applications, jobs, service.PublishEvent)
	notifH := handler.NewNotificationHandler(notifications)
	newsH := handler.NewNewsHandler(cfg.GNewsAPIKey, rdb)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = router.HTTPErrorHandler

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.AccessSecret, limit)
	router.RegisterJobs(e, jobH, cfg.AccessSecret, cache)
	router.RegisterApplications(e, appH, cfg.AccessSecret)
	router.RegisterNotifications(e, notifH, cfg.AccessSecret)
	router.RegisterNews(e, newsH, cache)

	// Fans broker events out into notification rows; reconnects on its own.
	go queue.StartEventConsumer(notifications)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
