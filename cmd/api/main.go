package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/serenity-wellness/booking-service/internal/config"
	"github.com/serenity-wellness/booking-service/internal/handler"
	"github.com/serenity-wellness/booking-service/internal/middleware"
	"github.com/serenity-wellness/booking-service/internal/migrations"
	"github.com/serenity-wellness/booking-service/internal/reminder"
	"github.com/serenity-wellness/booking-service/internal/render"
	"github.com/serenity-wellness/booking-service/internal/repository"
	"github.com/serenity-wellness/booking-service/internal/service"
	"github.com/serenity-wellness/booking-service/internal/session"
	"github.com/serenity-wellness/booking-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Apply migrations
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.UpContext(context.Background(), db, "."); err != nil {
		logger.Fatalf("Failed to apply migrations: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	var notifier service.Notifier
	var sender *email.Sender
	if cfg.SMTPHost != "" {
		sender = email.NewSender(cfg, logger)
		notifier = sender
	}
	svc := service.NewService(repo, notifier, logger)
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	renderer, err := render.New()
	if err != nil {
		logger.Fatalf("Failed to load templates: %v", err)
	}
	h := handler.NewHandler(svc, sessions, renderer, logger, cfg.BaseURL)

	// Schedule appointment reminders
	if sender != nil {
		c := cron.New()
		if _, err := c.AddJob(cfg.ReminderCron, reminder.NewJob(repo, sender, logger)); err != nil {
			logger.Fatalf("Failed to schedule reminder job: %v", err)
		}
		c.Start()
		defer c.Stop()
	}

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	h.RegisterRoutes(r)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
