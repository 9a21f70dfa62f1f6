package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/lwazim/claim-workflow/internal/application/service"
	"github.com/lwazim/claim-workflow/internal/config"
	"github.com/lwazim/claim-workflow/internal/infrastructure/persistence/repository"
	"github.com/lwazim/claim-workflow/internal/infrastructure/persistence/sqlite"
	httpiface "github.com/lwazim/claim-workflow/internal/interfaces/http"
	"github.com/lwazim/claim-workflow/internal/invoice"
	"github.com/lwazim/claim-workflow/internal/report"
	"github.com/lwazim/claim-workflow/internal/storage"
	"github.com/lwazim/claim-workflow/internal/worker"
	"github.com/lwazim/claim-workflow/pkg/database"
	"github.com/lwazim/claim-workflow/pkg/utils"
)

func main() {
	// Load environment overrides from a local .env if present.
	_ = gotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Contract Claim Workflow System",
		zap.Int("port", cfg.Server.Port))

	// Database and migrations
	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.Storage.BaseDir, 0755); err != nil {
		logger.Fatal("Failed to create upload directory", zap.Error(err))
	}

	// Repositories and transaction manager
	txManager := sqlite.NewDB(db.DB, logger)
	claimRepo := repository.NewClaimRepository(db.DB, logger)
	eventRepo := repository.NewEventRepository(db.DB, logger)
	userRepo := repository.NewUserRepository(db.DB, logger)
	docRepo := repository.NewDocumentRepository(db.DB, logger)
	invoiceRepo := repository.NewInvoiceRepository(db.DB, logger)

	// Services
	fileStore := storage.NewLocalFileStorage(cfg.Storage.BaseDir, logger)
	renderer := invoice.NewRenderer(cfg.Invoice.Institution, logger)
	exporter := report.NewExcelExporter(logger)

	userService := service.NewUserService(userRepo, logger)
	invoiceService := service.NewInvoiceService(invoiceRepo, claimRepo, userRepo, renderer, logger)
	approvalService := service.NewApprovalService(claimRepo, eventRepo, invoiceService, txManager, logger)
	claimService := service.NewClaimService(
		claimRepo, eventRepo, docRepo, fileStore,
		service.NewClaimValidator(),
		service.NewPriorityScorer(),
		txManager, logger,
	)
	dashboardService := service.NewDashboardService(claimRepo, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := userService.EnsureDefaultUsers(ctx); err != nil {
		logger.Fatal("Failed to seed default users", zap.Error(err))
	}

	systemUserID := cfg.Automation.SystemUserID
	if systemUserID == 0 {
		system, err := userService.GetByUsername(ctx, "system")
		if err != nil || system == nil {
			logger.Fatal("Failed to resolve system user", zap.Error(err))
		}
		systemUserID = system.ID
	}

	// Background workers
	workers := worker.NewManager(logger)
	if cfg.Automation.Enabled {
		workers.Register(worker.NewAutoApprover(
			claimRepo, approvalService, systemUserID, cfg.Automation.Interval, logger))
	}
	if err := workers.StartAll(ctx); err != nil {
		logger.Fatal("Failed to start background workers", zap.Error(err))
	}
	defer workers.StopAll()

	// HTTP server
	server := httpiface.NewServer(
		httpiface.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		claimService, approvalService, invoiceService, dashboardService, exporter,
		logger,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("Shutdown signal received", zap.String("signal", sig.String()))
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server failed", zap.Error(err))
		}
	}

	logger.Info("Server exited")
}
