package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/oguzk/labsessions/docs" // Import generated swagger docs
	appControllers "github.com/oguzk/labsessions/internal/app/controllers"
	appMigrations "github.com/oguzk/labsessions/internal/app/migrations"
	appRepos "github.com/oguzk/labsessions/internal/app/repositories"
	appRoutes "github.com/oguzk/labsessions/internal/app/routes"
	appServices "github.com/oguzk/labsessions/internal/app/services"
	"github.com/oguzk/labsessions/internal/config"
	"github.com/oguzk/labsessions/internal/db"
	appMiddleware "github.com/oguzk/labsessions/internal/middleware"
	pkgAuth "github.com/oguzk/labsessions/internal/pkg/auth"
	"github.com/oguzk/labsessions/internal/pkg/cache"
	"github.com/oguzk/labsessions/internal/pkg/email"
	"github.com/oguzk/labsessions/internal/pkg/events"
	"github.com/oguzk/labsessions/internal/pkg/helpers"
	"github.com/oguzk/labsessions/internal/pkg/logger"
	"github.com/oguzk/labsessions/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	RegistrationService    appServices.RegistrationService
	CatalogService         appServices.CatalogService
	FeedService            appServices.FeedService
	SessionController      *appControllers.SessionController
	RegistrationController *appControllers.RegistrationController
	FeedController         *appControllers.FeedController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	EventBus               *events.Bus
	FeedCache              *cache.FeedCache
	EmailService           email.EmailService
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Demo data only makes sense on a development instance.
	if cfg.IsDevelopment() {
		if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 24*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)

	deps.FeedCache = cache.NewFeedCache(
		cfg.Redis.Addr,
		cfg.Redis.Password,
		cfg.Redis.DB,
		helpers.ParseDuration(cfg.Redis.FeedTTL, 30*time.Second),
		lgr,
	)
	if deps.FeedCache == nil {
		lgr.Info().Msg("Redis not configured, calendar feed caching disabled")
	}

	// Event subscribers run in subscription order: drop the stale feed
	// first, then send the confirmation mail.
	deps.EventBus = events.NewBus(lgr)
	deps.EventBus.Subscribe(appServices.RegistrationCreatedEvent, appServices.NewFeedInvalidator(deps.FeedCache))
	deps.EventBus.Subscribe(appServices.RegistrationCreatedEvent, appServices.NewConfirmationMailer(deps.EmailService, lgr))

	deps.RegistrationService = appServices.NewRegistrationService(
		deps.Repos.SessionRepository,
		deps.Repos.RegistrationRepository,
		deps.EventBus,
		lgr,
	)
	deps.CatalogService = appServices.NewCatalogService(
		deps.Repos.SessionRepository,
		deps.Repos.CourseRepository,
		lgr,
	)
	deps.FeedService = appServices.NewFeedService(
		deps.Repos.SessionRepository,
		deps.Repos.RegistrationRepository,
		deps.FeedCache,
		cfg.Server.BaseURL,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.SessionController = appControllers.NewSessionController(deps.CatalogService)
	deps.RegistrationController = appControllers.NewRegistrationController(deps.RegistrationService)
	deps.FeedController = appControllers.NewFeedController(deps.FeedService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.RegisterCustomValidators()

	router := gin.Default()

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.SessionController,
		deps.RegistrationController,
		deps.FeedController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
