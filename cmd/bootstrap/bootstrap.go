package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-dashboard/config"
	deliveryHttp "hospital-dashboard/internal/delivery/http"
	"hospital-dashboard/internal/delivery/http/handler"
	"hospital-dashboard/internal/delivery/http/middleware"
	"hospital-dashboard/internal/infrastructure/cache"
	"hospital-dashboard/internal/infrastructure/database"
	"hospital-dashboard/internal/infrastructure/metrics"
	"hospital-dashboard/internal/infrastructure/migration"
	"hospital-dashboard/internal/repository"
	"hospital-dashboard/internal/service"
	"hospital-dashboard/internal/usecase"
	"hospital-dashboard/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if cfg.App.RunMigrations {
		if err := RunMigrations(cfg, func(m *migration.Migrator) error { return m.Up() }); err != nil {
			app.Close()
			return nil, err
		}
	}

	// Initialize Redis; the catalog cache is optional
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			logrus.Warnf("Redis unavailable, catalog cache disabled: %v", err)
		} else {
			app.RedisClient = redisClient
			logrus.Info("Redis connected successfully")
		}
	}

	// Initialize all layers
	server, err := initializeServer(cfg, db, app.RedisClient)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// LoadConfig sets up the logger and loads configuration. Shared by every
// subcommand.
func LoadConfig() (*config.Config, error) {
	setupLogger("info")

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")
	return cfg, nil
}

// RunMigrations opens a dedicated migrator, runs fn and closes it.
func RunMigrations(cfg *config.Config, fn func(m *migration.Migrator) error) error {
	migrator, err := migration.NewMigrator(cfg.DB.URL, logrus.StandardLogger())
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	defer migrator.Close()

	if err := fn(migrator); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)
	metrics.RegisterDBStats(registry, sqlDB)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository()
	reportRepo := repository.NewReportRepository()
	appointmentRepo := repository.NewAppointmentRepository()

	// Initialize services
	catalogCache := service.NewNoopCatalogCache()
	if redisClient != nil {
		catalogCache = service.NewRedisCatalogCache(redisClient, cfg.Catalog.CacheTTL)
	}

	// Initialize usecases
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, catalogRepo, reportRepo, appMetrics)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, customValidator, appointmentRepo, appMetrics, cfg.App.ExposeStoreErrors)
	catalogUsecase := usecase.NewCatalogUsecase(db, log, catalogRepo, catalogCache)

	// Initialize handlers
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase, customValidator)
	liveHandler := handler.NewLiveHandler(dashboardUsecase, customValidator, log, appMetrics)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase)
	catalogHandler := handler.NewCatalogHandler(catalogUsecase)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		dashboardHandler,
		liveHandler,
		appointmentHandler,
		catalogHandler,
		corsMiddleware,
		loggingMiddleware,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		sqlDB,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
