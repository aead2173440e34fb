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

	"github.com/voyagedesk/travel-api/docs"
	"github.com/voyagedesk/travel-api/internal/auth"
	"github.com/voyagedesk/travel-api/internal/config"
	"github.com/voyagedesk/travel-api/internal/database"
	"github.com/voyagedesk/travel-api/internal/datawarehouse"
	"github.com/voyagedesk/travel-api/internal/http/handler"
	"github.com/voyagedesk/travel-api/internal/http/middleware"
	"github.com/voyagedesk/travel-api/internal/http/router"
	"github.com/voyagedesk/travel-api/internal/jobs"
	"github.com/voyagedesk/travel-api/internal/logger"
	"github.com/voyagedesk/travel-api/internal/repository"
	"github.com/voyagedesk/travel-api/internal/service"
	"github.com/voyagedesk/travel-api/internal/storage"
	"go.uber.org/zap"
)

// @title VoyageDesk Travel API
// @version 1.0
// @description Tours, hotels, agent bookings and offers for the travel admin and agent portals

// @contact.name API Support
// @contact.email api@voyagedesk.example

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Agent JWT bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key for admin automation

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Basic configuration first, for the logger
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "api.staging.voyagedesk.example"
	case "production":
		docs.SwaggerInfo.Host = "api.voyagedesk.example"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Development reads secrets from the environment, staging and production from Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	imageStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// The warehouse only adds historical booking counts; run without it when it is down
	dwClient, err := datawarehouse.NewClient(&cfg.DataWarehouse, log)
	if err != nil {
		log.Warn("Data warehouse connection failed, offer checks use local booking counts",
			zap.Error(err),
		)
		dwClient = nil
	} else if dwClient != nil {
		log.Info("Data warehouse connected",
			zap.Int("max_open_conns", cfg.DataWarehouse.MaxOpenConns),
			zap.Int("query_timeout_seconds", cfg.DataWarehouse.QueryTimeout),
		)
	}

	// Repositories
	tourRepo := repository.NewTourRepository(db)
	tourImageRepo := repository.NewTourImageRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)

	// Services
	agentStats := service.NewAgentStatsProvider(bookingRepo, dwClient, log)
	discountService := service.NewDiscountService(discountRepo, agentStats, log)
	tourService := service.NewTourService(tourRepo, tourImageRepo, log)
	bookingService := service.NewBookingService(bookingRepo, tourRepo, hotelRepo, roomRepo, discountService, agentStats, log)
	hotelService := service.NewHotelService(hotelRepo, roomRepo, log)
	inquiryService := service.NewInquiryService(inquiryRepo, tourRepo, log)
	imageService := service.NewImageService(tourRepo, tourImageRepo, imageStorage, cfg.Storage.ThumbnailWidth, log)
	tourService.SetImagePruner(imageService)

	// Middleware
	authMiddleware := auth.NewMiddleware(&cfg.Auth, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		dwClient,
		authMiddleware,
		rateLimiter,
		router.Handlers{
			Tours:     handler.NewTourHandler(tourService, log),
			Images:    handler.NewImageHandler(imageService, cfg.Storage.MaxUploadSizeMB, log),
			Discounts: handler.NewDiscountHandler(discountService, log),
			Bookings:  handler.NewBookingHandler(bookingService, log),
			Hotels:    handler.NewHotelHandler(hotelService, log),
			Inquiries: handler.NewInquiryHandler(inquiryService, log),
		},
	)

	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)

		// The expiry job also runs once at startup for offers that lapsed while the API was down
		if err := jobs.RegisterExpiryJob(
			scheduler,
			discountService,
			tourService,
			log,
			cfg.Jobs.ExpiryCron,
			cfg.Jobs.TimeoutDuration(),
			true,
		); err != nil {
			log.Error("Failed to register expiry job", zap.Error(err))
		}

		if err := jobs.RegisterPendingImageJob(
			scheduler,
			imageService,
			cfg.Jobs.PendingImageTTLDuration(),
			log,
			cfg.Jobs.PendingImageCron,
			cfg.Jobs.TimeoutDuration(),
		); err != nil {
			log.Error("Failed to register pending image job", zap.Error(err))
		}

		scheduler.Start()
	} else {
		log.Info("Background jobs disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if dwClient != nil {
			if err := dwClient.Close(); err != nil {
				log.Warn("Error closing data warehouse connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
