package main

import (
	"fmt"
	"log"

	"gstdesk/internal/config"
	"gstdesk/internal/email/noop"
	"gstdesk/internal/email/ses"
	"gstdesk/internal/handler"
	"gstdesk/internal/port"
	"gstdesk/internal/repository/postgres"
	"gstdesk/internal/router"
	"gstdesk/internal/service"
	s3storage "gstdesk/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	invoiceRepo := postgres.NewInvoiceRepo(db)
	auditRepo := postgres.NewInvoiceAuditRepo(db)
	userRepo := postgres.NewUserRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	reviewSvc := service.NewReviewService(invoiceRepo, auditRepo, userRepo, s3Client, emailSender, cfg.S3.PresignExpiry)

	// Initialize handlers
	invoiceH := handler.NewInvoiceHandler(reviewSvc, cfg.Export.MaxInvoices)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, invoiceH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
