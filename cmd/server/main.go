package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "tenantops-backend/internal/api/http"
	"tenantops-backend/internal/config"
	"tenantops-backend/internal/identity"
	"tenantops-backend/internal/logger"
	"tenantops-backend/internal/repository/postgres"
	"tenantops-backend/internal/security"
	"tenantops-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting TenantOps Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Identity Provisioner
	var provisioner identity.Provisioner
	switch cfg.Identity.Type {
	case "firebase":
		logger.Info("Using Firebase Auth identity provisioner")
		provisioner, err = identity.NewFirebaseProvisioner(context.Background(), cfg.Identity.CredentialsFile, store.ProfileRepository)
		if err != nil {
			logger.Error("Failed to initialize firebase provisioner", "error", err)
			log.Fatalf("Failed to initialize firebase provisioner: %v", err)
		}
	default:
		logger.Info("Using local identity provisioner")
		provisioner = identity.NewLocalProvisioner(store.ProfileRepository)
	}

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	// Initialize Services
	registrationSvc := service.NewRegistrationService(
		store.TenantRepository,
		store.ProfileRepository,
		store.RegistrationRequestRepository,
		store.ReconciliationRepository,
		provisioner,
		emailSvc,
	)
	cancellationSvc := service.NewCancellationService(store.CancellationRequestRepository, store.TenantRepository, emailSvc)
	licenseSvc := service.NewLicenseService(store.TenantRepository)
	profileSvc := service.NewProfileService(store.ProfileRepository)
	reconSvc := service.NewReconciliationService(store.ReconciliationRepository)

	// Initialize HTTP API
	handlers := httpapi.NewHandlers(registrationSvc, cancellationSvc, licenseSvc, profileSvc, reconSvc)
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager)
	guard := httpapi.NewLicenseGuard(licenseSvc)
	router := httpapi.NewRouter(handlers, authMiddleware, guard)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
