package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appMigrations "github.com/TONNY-TED/Results-Management-System/internal/app/migrations"
	appRepos "github.com/TONNY-TED/Results-Management-System/internal/app/repositories"
	appRoutes "github.com/TONNY-TED/Results-Management-System/internal/app/routes"
	appServices "github.com/TONNY-TED/Results-Management-System/internal/app/services"
	"github.com/TONNY-TED/Results-Management-System/internal/config"
	"github.com/TONNY-TED/Results-Management-System/internal/db"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/logger"
	"github.com/TONNY-TED/Results-Management-System/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos       *appRepos.Repositories
	Services    *appServices.Services
	Controllers *appRoutes.Controllers
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// Log lines go to out, which the menu sets to stderr to keep stdout for itself.
func LoadConfigAndSetupLogger(configPath string, out io.Writer) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: cfg.PrettyLogs(),
		Output: out,
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	if overrides := cfg.EnvOverrides(); len(overrides) > 0 {
		lgr.Debug().Strs("vars", overrides).Msg("Configuration overridden from environment")
	}
	return cfg, lgr, nil
}

// ConnectDatabase opens the connection pool.
func ConnectDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("dbname", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database.Pool, nil
}

// RunMigrations applies every pending migration file.
func RunMigrations(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); err != nil {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// SetupDatabase connects, migrates and seeds the catalog.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	dbPool, err := ConnectDatabase(cfg, lgr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := RunMigrations(ctx, cfg, dbPool, lgr); err != nil {
		dbPool.Close()
		return nil, err
	}

	if err := seed.CreateDefaultData(ctx, appRepos.NewCatalogRepository(dbPool), cfg.Seed.Semesters, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.Services = appServices.NewServices(deps.Repos, cfg, time.Now)
	deps.Controllers = appRoutes.NewControllers(deps.Services)
	lgr.Info().Msg("Dependencies initialized")
	return deps
}

// SetupRouter builds the gin engine for the HTTP API.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := appRoutes.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := appRoutes.NewRouter(deps.Controllers)
	lgr.Info().Str("mode", gin.Mode()).Msg("Router configured")
	return router, nil
}
