package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/salon-pos-service/internal/api/http"
	"github.com/spec-kit/salon-pos-service/internal/api/http/handlers"
	"github.com/spec-kit/salon-pos-service/internal/auth"
	"github.com/spec-kit/salon-pos-service/internal/config"
	"github.com/spec-kit/salon-pos-service/internal/events"
	"github.com/spec-kit/salon-pos-service/internal/fixtures"
	"github.com/spec-kit/salon-pos-service/internal/observability"
	"github.com/spec-kit/salon-pos-service/internal/persistence"
	"github.com/spec-kit/salon-pos-service/internal/repository"
	"github.com/spec-kit/salon-pos-service/internal/service"
	"github.com/spec-kit/salon-pos-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	staffRepo := repository.NewStaffRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	transactionRepo := repository.NewTransactionRepository(pool)
	reportRepo := repository.NewReportRepository(pool)
	tokenRepo := repository.NewTokenRepository(redis.Client)

	if cfg.Postgres.SeedDefaults {
		if err := fixtures.SeedDefaults(ctx, staffRepo, productRepo, cfg.Auth.BcryptCost, logger); err != nil {
			logger.Fatal("failed to seed defaults", zap.Error(err))
		}
	}

	dispatcher := events.NewInMemoryDispatcher()

	tokenService := service.NewTokenService(tokenRepo, cfg.Terminal, logger)
	authService := service.NewAuthService(*cfg, staffRepo)
	staffService := service.NewStaffService(*cfg, staffRepo, dispatcher, logger)
	catalogService := service.NewCatalogService(productRepo, dispatcher, logger)
	clockService := service.NewClockService(service.ClockDependencies{
		StaffRepo:      staffRepo,
		AttendanceRepo: attendanceRepo,
		TokenService:   tokenService,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	checkoutService := service.NewCheckoutService(service.CheckoutDependencies{
		TransactionRepo: transactionRepo,
		ProductRepo:     productRepo,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	reportService := service.NewReportService(service.ReportDependencies{
		ReportRepo:     reportRepo,
		ProductRepo:    productRepo,
		AttendanceRepo: attendanceRepo,
		Logger:         logger,
	})

	changefeed := service.NewChangefeedService(redis.Client, cfg.Terminal.ChangefeedChannel, logger)
	changefeed.RegisterHandlers(dispatcher)

	worker.StartTerminalWorker(ctx, tokenService, cfg.Terminal.RefreshInterval(), logger)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), staffRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Staff:          handlers.NewStaffHandler(staffService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		Checkout:       handlers.NewCheckoutHandler(checkoutService),
		Attendance:     handlers.NewAttendanceHandler(clockService, reportService),
		Terminal:       handlers.NewTerminalHandler(tokenService),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
