package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"ev-rental-backend/internal/config"
	"ev-rental-backend/internal/jobs"
	"ev-rental-backend/internal/logger"
	"ev-rental-backend/internal/repository/postgres"
	"ev-rental-backend/internal/scheduler"
	"ev-rental-backend/internal/service"
	"ev-rental-backend/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit ('overdue-reminders', 'cleanup-photos', 'all')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EV Rental Cronjob Runner...", "log_level", cfg.Log.Level)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	var photoStorage storage.Storage
	if cfg.Storage.Type == "firebase" {
		photoStorage, err = storage.NewFirebaseStorage(context.Background(), cfg.Storage.ProjectID, cfg.Storage.Bucket, cfg.Storage.CredentialsFile)
		if err != nil {
			log.Fatalf("Failed to initialize firebase storage: %v", err)
		}
	} else {
		photoStorage, err = storage.NewMockStorage(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			log.Fatalf("Failed to initialize mock storage: %v", err)
		}
	}

	emailSvc := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	photoSvc := service.NewPhotoService(store.PhotoRepository, photoStorage)

	jobRunner := jobs.NewJobRunner(store, &jobs.Services{Email: emailSvc, Photo: photoSvc}, cfg)

	if *runOnce != "" {
		runSingleJob(jobRunner, *runOnce)
		return
	}

	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sched.Stop()
}

func runSingleJob(jr *jobs.JobRunner, name string) {
	switch name {
	case "overdue-reminders":
		jr.SendOverdueReturnReminders()
	case "cleanup-photos":
		jr.CleanupExpiredPhotos()
	case "all":
		jr.RunAll()
	default:
		log.Fatalf("Unknown job %q", name)
	}
}
