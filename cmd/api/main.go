package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contact-form-backend/config"
	_ "contact-form-backend/docs" // Important for Swagger
	v1 "contact-form-backend/internal/delivery/http/v1"
	"contact-form-backend/internal/domain"
	"contact-form-backend/internal/repository/memory"
	"contact-form-backend/internal/usecase"
	"contact-form-backend/internal/worker"
	"contact-form-backend/pkg/email"
	"contact-form-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title           Contact Form API
// @version         1.0
// @description     Contact form backend that acknowledges submissions and sends a confirmation email in the background.
// @host            localhost:8080
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting contact form backend",
		"port", cfg.Port,
		"store_submissions", cfg.StoreSubmissions,
		"send_confirmation_email", cfg.SendConfirmationEmail,
		"delivery_mode", cfg.EmailDeliveryMode,
	)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// 3. Setup Repositories
	var repo domain.SubmissionRepository
	if cfg.StoreSubmissions {
		repo = memory.NewSubmissionRepository()
	}

	// 4. Setup Email Service
	var emailService *email.EmailService
	if cfg.SendConfirmationEmail {
		transport, err := newTransport(context.Background(), cfg)
		if err != nil {
			logger.Log.Error("Failed to set up mail transport", "error", err)
			os.Exit(1)
		}
		emailService = email.NewEmailService(transport, nil, cfg.EmailSender).WithReplyTo(cfg.EmailReplyTo)
		logger.Log.Info("Confirmation emails enabled", "transport", emailService.TransportName())
	}

	// 5. Setup UseCases
	contactUC := usecase.NewContactUsecase(repo, emailService)

	// 6. Setup Deferred Delivery
	deps := v1.RouterDeps{
		ContactUC: contactUC,
		Config:    cfg,
	}

	var dispatcher *worker.Dispatcher
	outcomesDone := make(chan struct{})
	if emailService != nil && !cfg.SyncDelivery() {
		dispatcher = worker.NewDispatcher(contactUC.Deliver, worker.Config{
			Workers:   cfg.EmailWorkers,
			QueueSize: cfg.EmailQueueSize,
			Timeout:   cfg.EmailSendTimeout,
		}, logger.Log)
		dispatcher.Start(context.Background())
		deps.Queue = dispatcher

		go func() {
			defer close(outcomesDone)
			worker.LogOutcomes(logger.Log, dispatcher.Outcomes())
		}()
	} else {
		close(outcomesDone)
	}

	// 7. Setup Router
	router := v1.NewRouter(deps)

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	// Requests are done; let queued confirmations go out
	if dispatcher != nil {
		drainCtx, drainCancel := context.WithTimeout(context.Background(), cfg.EmailSendTimeout+5*time.Second)
		defer drainCancel()
		if err := dispatcher.Shutdown(drainCtx); err != nil {
			logger.Log.Error("Pending confirmation emails abandoned", "error", err)
		} else {
			<-outcomesDone
		}
	}

	logger.Log.Info("Server exiting")
}

// newTransport builds the mail transport selected by MAIL_PROVIDER
func newTransport(ctx context.Context, cfg *config.Config) (email.Transport, error) {
	switch cfg.MailProvider {
	case config.ProviderSES:
		return email.NewSESTransport(ctx, email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Sender:          cfg.EmailSender,
		})
	case config.ProviderLog:
		return email.NewLogTransport(logger.Log), nil
	default:
		if !cfg.SMTPConfigured() {
			logger.Log.Warn("SMTP credentials missing - confirmation emails will only be logged")
			return email.NewLogTransport(logger.Log), nil
		}
		return email.NewSMTPTransport(email.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.EmailSender,
			Password: cfg.EmailPassword,
		})
	}
}
