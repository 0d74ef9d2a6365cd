package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apiserver "github.com/turtlemeow87-design/tradscendence-site/internal/api/server"
	"github.com/turtlemeow87-design/tradscendence-site/internal/config"
	database "github.com/turtlemeow87-design/tradscendence-site/internal/db"
	"github.com/turtlemeow87-design/tradscendence-site/internal/logger"
	"github.com/turtlemeow87-design/tradscendence-site/internal/notify"
	"github.com/turtlemeow87-design/tradscendence-site/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config: " + err.Error())
	}

	log := logger.New(cfg.Server.Env)
	defer log.Sync()

	log.Info("starting Sound Beyond Borders API",
		zap.String("env", cfg.Server.Env),
		zap.String("notify_mode", cfg.Notify.Mode))

	// Database (the relay-only deployment runs without one)
	var db *database.Client
	if cfg.Database.URL != "" {
		db, err = database.New(cfg.Database.URL, log)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("migration failed", zap.Error(err))
		}
		if cfg.Database.Seed {
			if err := database.SeedCatalog(db, log); err != nil {
				log.Fatal("catalog seed failed", zap.Error(err))
			}
		}
	} else {
		log.Warn("DATABASE_URL not set, catalog endpoints disabled")
	}

	// Notification gateway. A nil notifier is reported per-request as a
	// misconfiguration, matching the hosted behavior.
	var notifier notify.Notifier
	switch cfg.Notify.Mode {
	case config.NotifyFormspree:
		if cfg.Notify.FormspreeEndpoint != "" {
			notifier = notify.NewFormspree(cfg.Notify.FormspreeEndpoint)
		}
	default:
		if cfg.Notify.ResendAPIKey != "" && cfg.Notify.ContactEmail != "" {
			notifier = notify.NewResend(cfg.Notify.ResendAPIKey, cfg.Notify.FromAddress, cfg.Notify.ContactEmail)
		}
	}
	if notifier == nil {
		log.Warn("notification gateway not configured", zap.String("mode", cfg.Notify.Mode))
	}

	store := storage.New(cfg)

	// Metrics on the side port
	go func() {
		http.Handle("/_metrics", promhttp.Handler())
		log.Info("metrics listening", zap.String("addr", cfg.Server.MetricsPort))
		if err := http.ListenAndServe(cfg.Server.MetricsPort, nil); err != nil {
			log.Warn("metrics server error", zap.Error(err))
		}
	}()

	srv := apiserver.New(cfg, db, store, notifier, log)

	addr := ":" + cfg.Server.Port
	log.Info("🚀 API server starting", zap.String("addr", addr))
	if err := srv.Start(addr); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
