package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "ev-rental-backend/internal/api/http"
	"ev-rental-backend/internal/config"
	"ev-rental-backend/internal/jobs"
	"ev-rental-backend/internal/logger"
	"ev-rental-backend/internal/repository/postgres"
	"ev-rental-backend/internal/scheduler"
	"ev-rental-backend/internal/security"
	"ev-rental-backend/internal/service"
	"ev-rental-backend/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EV Rental Backend...", "log_level", cfg.Log.Level, "address", cfg.GetServerAddress())

	// Database.
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
	logger.Info("Database connection established", "host", cfg.Database.Host, "database", cfg.Database.Database)

	store := postgres.NewStore(db)

	// Security.
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Photo storage backend.
	var photoStorage storage.Storage
	var mockStorage *storage.MockStorage
	switch cfg.Storage.Type {
	case "mock":
		logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)
		mockStorage, err = storage.NewMockStorage(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize mock storage", "error", err)
			log.Fatalf("Failed to initialize mock storage: %v", err)
		}
		photoStorage = mockStorage
	case "firebase":
		logger.Info("Using Firebase Cloud Storage", "bucket", cfg.Storage.Bucket)
		photoStorage, err = storage.NewFirebaseStorage(context.Background(), cfg.Storage.ProjectID, cfg.Storage.Bucket, cfg.Storage.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize firebase storage", "error", err)
			log.Fatalf("Failed to initialize firebase storage: %v", err)
		}
	default:
		log.Fatalf("Unsupported storage type %q", cfg.Storage.Type)
	}

	// Services.
	emailSvc := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	gateSvc := service.NewGateService(store.ContractRepository, store.PaymentRepository)
	rentalSvc := service.NewRentalService(
		store.RentalOrderRepository,
		store.ContractRepository,
		store.PaymentRepository,
		store.VehicleRepository,
		store.UserRepository,
		emailSvc,
	)
	handoverSvc := service.NewHandoverService(
		store.RentalOrderRepository,
		store.InspectionRepository,
		store.VehicleRepository,
		store.UserRepository,
		gateSvc,
		emailSvc,
	)
	returnSvc := service.NewReturnService(
		store.RentalOrderRepository,
		store.InspectionRepository,
		store.VehicleRepository,
		store.UserRepository,
		emailSvc,
		cfg.Pricing.LateFeePerHourCents,
	)
	feedbackSvc := service.NewFeedbackService(store.FeedbackRepository, store.RentalOrderRepository)
	photoSvc := service.NewPhotoService(store.PhotoRepository, photoStorage)

	// HTTP API.
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:     httpapi.NewAuthHandler(authSvc),
		Rental:   httpapi.NewRentalHandler(rentalSvc),
		Handover: httpapi.NewHandoverHandler(handoverSvc, gateSvc),
		Return:   httpapi.NewReturnHandler(returnSvc),
		Feedback: httpapi.NewFeedbackHandler(feedbackSvc),
		Payment:  httpapi.NewPaymentHandler(gateSvc, cfg.Payments.WebhookSecret),
		Photo:    httpapi.NewPhotoHandler(photoSvc, mockStorage),
		Catalog:  httpapi.NewCatalogHandler(store.VehicleRepository, store.BranchRepository),
		AuthMW:   httpapi.NewAuthMiddleware(tokenManager),
	})

	// Scheduled jobs run in-process alongside the server.
	jobRunner := jobs.NewJobRunner(store, &jobs.Services{Email: emailSvc, Photo: photoSvc}, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
