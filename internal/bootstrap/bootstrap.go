package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/examadmission/internal/app/auth"
	appControllers "github.com/yigit/examadmission/internal/app/controllers"
	appMigrations "github.com/yigit/examadmission/internal/app/migrations"
	appRepos "github.com/yigit/examadmission/internal/app/repositories"
	"github.com/yigit/examadmission/internal/app/repositories/memory"
	appRoutes "github.com/yigit/examadmission/internal/app/routes"
	appServices "github.com/yigit/examadmission/internal/app/services"
	"github.com/yigit/examadmission/internal/config"
	"github.com/yigit/examadmission/internal/db"
	appMiddleware "github.com/yigit/examadmission/internal/middleware"
	"github.com/yigit/examadmission/internal/pkg/helpers"
	"github.com/yigit/examadmission/internal/pkg/logger"
	"github.com/yigit/examadmission/internal/pkg/metrics"
	"github.com/yigit/examadmission/internal/pkg/session"
	"github.com/yigit/examadmission/internal/seed"
)

// Storage is the persistence backend selected by configuration
type Storage struct {
	Repos *appRepos.Repositories
	// DB is nil for the memory driver
	DB *db.PostgresDB
}

// Close releases the database pool, if any
func (s *Storage) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	LoginLimiter   *appMiddleware.RateLimiter
	Sessions       *session.Store
	Metrics        *metrics.Metrics
	Storage        *Storage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath, envFile string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath, envFile)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the configured backend. For postgres it also applies pending migrations.
func SetupStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using in-memory storage, data is lost on restart")
		repos, _ := memory.NewRepositories()
		return &Storage{Repos: repos}, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool, lgr).Migrate(ctx); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return &Storage{Repos: appRepos.NewRepositories(database.Pool), DB: database}, nil
}

// BuildDependencies initializes sessions, services, and controllers over the storage backend.
func BuildDependencies(ctx context.Context, cfg *config.Config, storage *Storage, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Storage: storage, Logger: lgr, Metrics: metrics.New()}

	deps.Sessions = session.NewStore(
		session.WithTTL(helpers.ParseDuration(cfg.Session.TTL, 0)),
		session.WithLogger(lgr),
	)

	if err := seed.CreateDefaultAdmin(ctx, storage.Repos.Users, seed.Admin{
		Username: cfg.Seed.AdminUsername,
		Password: cfg.Seed.AdminPassword,
	}, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default administrator, proceeding anyway...")
	}

	deps.Services = appServices.NewServices(appServices.Dependencies{
		Repos:    storage.Repos,
		Sessions: deps.Sessions,
		Metrics:  deps.Metrics,
		Logger:   lgr,
		Settings: appServices.Settings{
			PasswordMinLength: cfg.Security.PasswordMinLength,
			Allocation: appServices.AllocationDefaults{
				SeatsPerRoom: cfg.Allocation.SeatsPerRoom,
				RoomPrefix:   cfg.Allocation.RoomPrefix,
				StartRoom:    cfg.Allocation.StartRoom,
			},
		},
		Now: time.Now,
	})

	resolver := appAuth.NewIdentityResolver(deps.Sessions, storage.Repos.Users)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(resolver)
	deps.LoginLimiter = appMiddleware.NewRateLimiter(cfg.Security.LoginRatePerSec, cfg.Security.LoginBurst, lgr)

	var pinger appControllers.Pinger
	if storage.DB != nil {
		pinger = storage.DB
	}

	deps.Controllers = appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(deps.Services.Auth, lgr),
		Users:        appControllers.NewUserController(deps.Services.Auth, lgr),
		Exams:        appControllers.NewExamController(deps.Services.Exams, lgr),
		Applications: appControllers.NewApplicationController(deps.Services.Applications, lgr),
		Rooms:        appControllers.NewRoomController(deps.Services.Seats, lgr),
		Scores:       appControllers.NewScoreController(deps.Services.Scores, deps.Services.Admission, lgr),
		Admission:    appControllers.NewAdmissionController(deps.Services.Admission, lgr),
		Health:       appControllers.NewHealthController(pinger, cfg.Database.Driver),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.ClientIP(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.Metrics(deps.Metrics),
	)

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.LoginLimiter, deps.Metrics)
	return router
}
