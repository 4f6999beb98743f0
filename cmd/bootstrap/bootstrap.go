package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VictorAraujo38/akkadian-test/config"
	deliveryHttp "github.com/VictorAraujo38/akkadian-test/internal/delivery/http"
	"github.com/VictorAraujo38/akkadian-test/internal/delivery/http/handler"
	"github.com/VictorAraujo38/akkadian-test/internal/delivery/http/middleware"
	"github.com/VictorAraujo38/akkadian-test/internal/infrastructure/cache"
	"github.com/VictorAraujo38/akkadian-test/internal/infrastructure/database"
	"github.com/VictorAraujo38/akkadian-test/internal/infrastructure/migrations"
	"github.com/VictorAraujo38/akkadian-test/internal/repository"
	"github.com/VictorAraujo38/akkadian-test/internal/service"
	"github.com/VictorAraujo38/akkadian-test/internal/usecase"
	"github.com/VictorAraujo38/akkadian-test/pkg/clock"
	"github.com/VictorAraujo38/akkadian-test/pkg/jwt"
	"github.com/VictorAraujo38/akkadian-test/pkg/metrics"
	"github.com/VictorAraujo38/akkadian-test/pkg/validator"

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
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server

	closers []func() error
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := setupLogger(cfg.App.LogLevel)
	log.Info("Configuration loaded successfully")

	app := &App{Config: cfg, Log: log}

	db, err := database.NewPostgresConnection(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	if cfg.Scheduling.AutoMigrate {
		if err := app.migrate(migrations.Up); err != nil {
			app.Close()
			return nil, err
		}
	}

	// Bookings still work without Redis; the slot index catches races.
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		log.Warnf("Redis unavailable, slot holds disabled: %+v", err)
	} else {
		app.RedisClient = redisClient
		log.Info("Redis connected successfully")
	}

	app.Server = app.initializeServer()

	return app, nil
}

// Migrate opens the database from configuration and applies the embedded
// migrations in the given direction.
func Migrate(direction migrations.Direction) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := setupLogger(cfg.App.LogLevel)

	db, err := database.NewPostgresConnection(cfg.DB, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app := &App{Config: cfg, Log: log, DB: db}
	defer app.Close()

	return app.migrate(direction)
}

func (app *App) migrate(direction migrations.Direction) error {
	sqlDB, err := app.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := migrations.Migrate(sqlDB, app.Log, direction); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer() *http.Server {
	cfg, db, log := app.Config, app.DB, app.Log

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	schedulingMetrics := metrics.NewSchedulingMetrics(registry)

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	specialtyRepo := repository.NewSpecialtyRepository()
	credentialRepo := repository.NewDoctorCredentialRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	symptomClassifier, closeClassifier := newSymptomClassifier(context.Background(), cfg.Classifier, log, schedulingMetrics)
	if closeClassifier != nil {
		app.closers = append(app.closers, closeClassifier)
	}
	resolver := service.NewSpecialtyResolver(db, log, specialtyRepo)
	triageService := service.NewTriageService(log, schedulingMetrics, symptomClassifier, resolver)
	assignment := service.NewDoctorAssignmentService(db, log, schedulingMetrics, userRepo, credentialRepo, appointmentRepo)
	clk := clock.New()
	validation := service.NewAppointmentValidationService(db, log, clk, schedulingMetrics, userRepo, appointmentRepo, assignment)
	auditService := service.NewAuditService(log, auditLogRepo)

	var slotLock service.SlotLock = service.NoopSlotLock{}
	if app.RedisClient != nil {
		slotLock = service.NewRedisSlotLock(app.RedisClient, log, cfg.Scheduling.SlotLockTTL)
	}

	// Initialize usecases
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, clk, schedulingMetrics, appointmentRepo, auditLogRepo, triageService, assignment, slotLock, auditService)
	schedulingUsecase := usecase.NewSchedulingUsecase(db, log, userRepo, specialtyRepo, triageService, resolver, assignment, validation)
	specialtyUsecase := usecase.NewSpecialtyUsecase(db, log, userRepo, specialtyRepo, credentialRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, schedulingUsecase, customValidator)
	schedulingHandler := handler.NewSchedulingHandler(schedulingUsecase, customValidator)
	specialtyHandler := handler.NewSpecialtyHandler(specialtyUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	router := deliveryHttp.NewRouter(
		appointmentHandler,
		schedulingHandler,
		specialtyHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, model clients)
func (app *App) Close() {
	for _, closeFn := range app.closers {
		if err := closeFn(); err != nil {
			app.Log.Errorf("Error closing classifier client: %v", err)
		}
	}

	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				app.Log.Errorf("Error closing database: %v", err)
			} else {
				app.Log.Info("Database connection closed")
			}
		}
	}

	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			app.Log.Errorf("Error closing Redis: %v", err)
		} else {
			app.Log.Info("Redis connection closed")
		}
	}
}
