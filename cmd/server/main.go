package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "chamber-connect-backend/internal/api/http"
	"chamber-connect-backend/internal/config"
	"chamber-connect-backend/internal/logger"
	"chamber-connect-backend/internal/payments"
	"chamber-connect-backend/internal/qr"
	"chamber-connect-backend/internal/repository/postgres"
	"chamber-connect-backend/internal/security"
	"chamber-connect-backend/internal/service"
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
	logger.Info("Starting Chamber Connect Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "host", cfg.Server.Host, "port", cfg.Server.Port)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
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
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Payments Provider
	var checkoutProvider payments.CheckoutProvider
	if cfg.Stripe.Mock {
		logger.Info("Using mock checkout provider")
		checkoutProvider = payments.NewMockProvider(cfg.App.BaseURL)
	} else {
		checkoutProvider = payments.NewStripeProvider(cfg.Stripe.APIKey)
	}

	// Initialize QR Generator
	qrGenerator := qr.NewGenerator(cfg.App.BaseURL, cfg.QR.ImageEndpoint)

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.Email.APIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
	)

	// Initialize Services
	subscriptionSvc := service.NewSubscriptionService(
		store.SubscriptionRepository,
		store.MembershipRepository,
		store.EventRepository,
		store.UserRepository,
		checkoutProvider,
		cfg.Stripe.SuccessURL,
		cfg.Stripe.CancelURL,
	)
	authSvc := service.NewAuthService(
		store.UserRepository,
		store.MembershipRepository,
		store.InvitationRepository,
		store.ChamberRepository,
		tokenManager,
	)
	chamberSvc := service.NewChamberService(
		store.ChamberRepository,
		store.MembershipRepository,
		subscriptionSvc,
	)
	memberSvc := service.NewMemberService(
		store.MembershipRepository,
		store.BusinessRepository,
		store.UserRepository,
		store.ChamberRepository,
		store.InvitationRepository,
		subscriptionSvc,
		emailSvc,
	)
	businessSvc := service.NewBusinessService(store.BusinessRepository, store.MembershipRepository)
	eventSvc := service.NewEventService(
		store.EventRepository,
		store.MembershipRepository,
		subscriptionSvc,
	)
	analyticsSvc := service.NewAnalyticsService(
		store.QRRepository,
		store.BusinessRepository,
		store.ChamberRepository,
		subscriptionSvc,
		qrGenerator,
	)
	partnershipSvc := service.NewPartnershipService(
		store.PartnershipRepository,
		store.MembershipRepository,
		subscriptionSvc,
	)
	messagingSvc := service.NewMessagingService(store.MessageRepository, store.MembershipRepository)
	adminSvc := service.NewAdminService(
		store.MembershipRepository,
		store.BusinessRepository,
		store.EventRepository,
		store.QRRepository,
		store.SubscriptionRepository,
		subscriptionSvc,
	)

	// Initialize HTTP server
	server := httpapi.NewServer(
		authSvc,
		chamberSvc,
		memberSvc,
		businessSvc,
		eventSvc,
		subscriptionSvc,
		analyticsSvc,
		partnershipSvc,
		messagingSvc,
		adminSvc,
		tokenManager,
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	logger.Info("HTTP server stopped. Goodbye!")
}
