package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"billbook/internal/config"
	"billbook/internal/email/noop"
	"billbook/internal/email/ses"
	"billbook/internal/handler"
	"billbook/internal/logger"
	"billbook/internal/port"
	"billbook/internal/repository/localstore"
	"billbook/internal/repository/postgres"
	"billbook/internal/router"
	"billbook/internal/service"
	s3storage "billbook/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

type repos struct {
	business port.BusinessRepository
	user     port.UserRepository
	contact  port.ContactRepository
	product  port.ProductRepository
	invoice  port.InvoiceRepository
	sequence port.SequenceRepository
}

func run() error {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	var (
		r    repos
		ping handler.PingFunc
	)
	switch cfg.Store.Driver {
	case "postgres":
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		r = repos{
			business: postgres.NewBusinessRepo(db),
			user:     postgres.NewUserRepo(db),
			contact:  postgres.NewContactRepo(db),
			product:  postgres.NewProductRepo(db),
			invoice:  postgres.NewInvoiceRepo(db),
			sequence: postgres.NewSequenceRepo(db),
		}
		ping = db.PingContext

	case "local":
		store, err := localstore.New(cfg.Local.Dir)
		if err != nil {
			return fmt.Errorf("failed to open local store: %w", err)
		}

		r = repos{
			business: localstore.NewBusinessRepo(store),
			user:     localstore.NewUserRepo(store),
			contact:  localstore.NewContactRepo(store),
			product:  localstore.NewProductRepo(store),
			invoice:  localstore.NewInvoiceRepo(store),
			sequence: localstore.NewSequenceRepo(store),
		}

	default:
		return fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	// Object storage for backups
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Email delivery
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Services
	authSvc := service.NewAuthService(r.user, cfg.JWT)
	registrationSvc := service.NewRegistrationService(r.business, r.user, authSvc)
	businessSvc := service.NewBusinessService(r.business)
	contactSvc := service.NewContactService(r.contact, r.invoice)
	productSvc := service.NewProductService(r.product)
	invoiceSvc := service.NewInvoiceService(r.invoice, r.contact, r.business, r.sequence, emailSender)
	dashboardSvc := service.NewDashboardService(r.invoice, r.contact, r.product)
	reportSvc := service.NewReportService(r.invoice)
	backupSvc := service.NewBackupService(r.business, r.contact, r.product, r.invoice, s3Client, cfg.Backup)

	// Handlers
	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(authSvc, registrationSvc),
		Business:  handler.NewBusinessHandler(businessSvc),
		Contact:   handler.NewContactHandler(contactSvc),
		Product:   handler.NewProductHandler(productSvc),
		Invoice:   handler.NewInvoiceHandler(invoiceSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Report:    handler.NewReportHandler(reportSvc, businessSvc),
		Backup:    handler.NewBackupHandler(backupSvc),
		Health:    handler.NewHealthHandler(ping),
	}

	engine := router.Setup(authSvc, cfg.CORS.AllowedOrigins, handlers)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Server.Port).
			Str("driver", cfg.Store.Driver).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
