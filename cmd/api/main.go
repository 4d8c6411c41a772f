package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/marianorefrig/mariano_api/internal/cache"
	"github.com/marianorefrig/mariano_api/internal/config"
	"github.com/marianorefrig/mariano_api/internal/database"
	"github.com/marianorefrig/mariano_api/internal/handler"
	"github.com/marianorefrig/mariano_api/internal/middleware"
	"github.com/marianorefrig/mariano_api/internal/repository"
	"github.com/marianorefrig/mariano_api/internal/service"
	"github.com/marianorefrig/mariano_api/internal/sse"
	"github.com/marianorefrig/mariano_api/internal/store"
	"github.com/marianorefrig/mariano_api/internal/utils"
	"github.com/marianorefrig/mariano_api/internal/worker"
)

// main is the application entrypoint for the Mariano Refrigeração API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("store", cfg.Store.Driver).Msg("starting mariano api")

	// 3. Open store
	st, err := openStore(cfg)
	if err != nil {
		log.Error().Err(err).Msg("store initialization failed")
		fmt.Fprintf(os.Stderr, "store initialization failed: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	// 4. Initialize repositories
	db := repository.NewDB(st)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	technicianRepo := repository.NewTechnicianRepository(db)
	orderRepo := repository.NewServiceOrderRepository(db, cfg.Business.StrictTransitions)
	saleRepo := repository.NewSaleRepository(db)

	// 5. Initialize services
	customerSvc := service.NewCustomerService(customerRepo)
	productSvc := service.NewProductService(productRepo)
	technicianSvc := service.NewTechnicianService(technicianRepo)
	orderSvc := service.NewServiceOrderService(orderRepo)
	saleSvc := service.NewSaleService(saleRepo, cfg.Business.PriceTolerance)
	reportSvc := service.NewReportService(service.ReportRepositories{
		Customers:   customerRepo,
		Products:    productRepo,
		Technicians: technicianRepo,
		Orders:      orderRepo,
		Sales:       saleRepo,
	}, cfg.Business.Location, nil)
	exportSvc := service.NewExportService(reportSvc, customerRepo)

	// 5a. Live dashboard events
	hub := sse.NewHub()
	notifier := sse.NewHubNotifier(hub)
	saleSvc.SetNotifier(notifier)
	orderSvc.SetNotifier(notifier)

	// 5b. Seed sample data into an empty store
	if cfg.Business.SeedSampleData {
		if err := service.NewSeedService(technicianRepo, productRepo, utils.NewID).Seed(context.Background()); err != nil {
			log.Warn().Err(err).Msg("sample data seeding failed")
		}
	}

	// 6. Initialize handlers
	handlers := &handler.Handlers{
		Health:       handler.NewHealthHandler(st, cfg.Store.Driver),
		Customer:     handler.NewCustomerHandler(customerSvc),
		Product:      handler.NewProductHandler(productSvc),
		Technician:   handler.NewTechnicianHandler(technicianSvc),
		ServiceOrder: handler.NewServiceOrderHandler(orderSvc),
		Sale:         handler.NewSaleHandler(saleSvc, reportSvc),
		Report:       handler.NewReportHandler(reportSvc, exportSvc),
		Events:       handler.NewSSEHandler(hub),
	}

	// 7. Setup router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.LoggingMiddleware())
	handler.SetupRoutes(router, handlers)

	// 8. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 9. Start workers
	if cfg.S3.Enabled() {
		s3Svc, err := service.NewS3Service(ctx, &cfg.S3)
		if err != nil {
			log.Warn().Err(err).Msg("S3 client initialization failed - snapshots disabled")
		} else {
			snapshotWorker, err := worker.NewSnapshotWorker(
				service.NewSnapshotService(db, s3Svc, nil),
				cfg.Worker.SnapshotSchedule,
				cfg.Business.Location,
			)
			if err != nil {
				log.Warn().Err(err).Msg("snapshot worker disabled")
			} else {
				go snapshotWorker.Start(ctx)
			}
		}
	}
	var smsSender service.SMSSender
	if cfg.Twilio.Enabled() {
		smsSender = service.NewTwilioSender(cfg.Twilio)
	} else {
		log.Info().Msg("Twilio not configured - low stock alerts go to the event stream only")
	}
	alertSvc := service.NewAlertService(productRepo, smsSender, cfg.Twilio.AlertNumber)
	alertSvc.SetNotifier(notifier)
	go worker.NewLowStockWorker(alertSvc, cfg.Worker.LowStockCheckInterval).Start(ctx)

	// 10. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 11. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 12. Cancel context to stop workers
	cancel()

	// 13. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// openStore connects the configured backend and runs its migrations.
func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		db, err := database.ConnectSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db, config.DriverSQLite); err != nil {
			db.Close()
			return nil, err
		}
		log.Info().Str("path", cfg.Store.SQLitePath).Msg("sqlite store ready")
		return store.NewSQLStore(db), nil
	case config.DriverPostgres:
		db, err := database.Connect(&cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db, config.DriverPostgres); err != nil {
			db.Close()
			return nil, err
		}
		log.Info().Msg("postgres store ready")
		return store.NewSQLStore(db), nil
	case config.DriverRedis:
		client, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("redis store ready")
		return store.NewRedisStore(client, cfg.Redis.KeyPrefix), nil
	default:
		log.Info().Str("path", cfg.Store.DataFile).Msg("file store ready")
		return store.NewFileStore(cfg.Store.DataFile), nil
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
