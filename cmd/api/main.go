package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/matrix-service/internal/cache"
	"github.com/Dan9191/matrix-service/internal/config"
	"github.com/Dan9191/matrix-service/internal/handler"
	"github.com/Dan9191/matrix-service/internal/repository"
	"github.com/Dan9191/matrix-service/internal/scheduler"
	"github.com/Dan9191/matrix-service/internal/service"
	"github.com/Dan9191/matrix-service/internal/telegram"
	"github.com/Dan9191/matrix-service/internal/utils/email"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	repo := repository.NewRepository(db)
	if err := repo.Migrate(context.Background()); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Result cache is optional
	var resultCache service.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("Redis unavailable, caching disabled: %v", err)
		} else {
			resultCache = cache.NewResultCache(rdb, cfg.CacheTTL, logger)
		}
	}

	// Initialize layers
	svc := service.NewService(repo, resultCache, logger, cfg)
	h := handler.NewHandler(svc, logger)

	// Telegram bot is optional
	var webhook http.HandlerFunc
	if cfg.BotToken != "" {
		b, err := telegram.NewBot(cfg.BotToken)
		if err != nil {
			logger.Fatalf("Failed to init telegram bot: %v", err)
		}
		if cfg.WebhookSecret == "" {
			logger.Warn("WEBHOOK_SECRET is not set, webhook updates are not authenticated")
		}
		webhook = telegram.NewHandler(b, cfg.WebAppURL, cfg.WebhookSecret, logger).HandleWebhook
	}

	// Monthly digest runs only when SMTP is configured
	var sched *scheduler.Scheduler
	if cfg.DigestEnabled() {
		sched, err = scheduler.New(cfg.DigestSchedule, svc, email.NewSender(cfg, logger), logger)
		if err != nil {
			logger.Fatalf("Failed to init scheduler: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.NewRouter(h, cfg, webhook),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown failed: %v", err)
	}
}
