package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/medprep/campus/internal/app/auth"
	appControllers "github.com/medprep/campus/internal/app/controllers"
	appMigrations "github.com/medprep/campus/internal/app/migrations"
	appRepos "github.com/medprep/campus/internal/app/repositories"
	appRoutes "github.com/medprep/campus/internal/app/routes"
	appServices "github.com/medprep/campus/internal/app/services"
	"github.com/medprep/campus/internal/config"
	"github.com/medprep/campus/internal/db"
	appMiddleware "github.com/medprep/campus/internal/middleware"
	pkgAuth "github.com/medprep/campus/internal/pkg/auth"
	"github.com/medprep/campus/internal/pkg/helpers"
	"github.com/medprep/campus/internal/pkg/logger"
	"github.com/medprep/campus/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	CollegeService      *appServices.CollegeService
	BatchService        *appServices.BatchService
	StudentService      *appServices.StudentService
	BulkUploadService   *appServices.BulkUploadService
	FacultyService      *appServices.FacultyService
	SubjectService      *appServices.SubjectService
	QuestionService     *appServices.QuestionService
	AnalyticsService    *appServices.AnalyticsService
	AuthController      *appControllers.AuthController
	CollegeController   *appControllers.CollegeController
	BatchController     *appControllers.BatchController
	StudentController   *appControllers.StudentController
	FacultyController   *appControllers.FacultyController
	SubjectController   *appControllers.SubjectController
	QuestionController  *appControllers.QuestionController
	AnalyticsController *appControllers.AnalyticsController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	ScopeResolver       *appAuth.ScopeResolver
	Logger              zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), cfg, database.Pool, lgr); err != nil {
		// Seeding problems should not block startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.ScopeResolver = appAuth.NewScopeResolver(
		deps.Repos.CollegeRepository,
		deps.Repos.FacultyRepository,
	)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		database,
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.CollegeRepository,
		deps.JWTService,
		lgr,
	)
	deps.CollegeService = appServices.NewCollegeService(deps.Repos.CollegeRepository, lgr)
	deps.BatchService = appServices.NewBatchService(deps.Repos.BatchRepository, deps.Repos.CollegeRepository, lgr)
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.Repos.UserRepository,
		deps.Repos.BatchRepository,
		deps.Repos.CollegeRepository,
		lgr,
	)
	deps.BulkUploadService = appServices.NewBulkUploadService(
		&appServices.RepoStudentWriter{
			Students: deps.Repos.StudentRepository,
			Users:    deps.Repos.UserRepository,
		},
		deps.Repos.BatchRepository,
		deps.Repos.CollegeRepository,
		lgr,
	)
	deps.FacultyService = appServices.NewFacultyService(
		deps.Repos.FacultyRepository,
		deps.Repos.UserRepository,
		deps.Repos.SubjectRepository,
		deps.Repos.CollegeRepository,
		lgr,
	)
	deps.SubjectService = appServices.NewSubjectService(deps.Repos.SubjectRepository, deps.Repos.CollegeRepository, lgr)
	deps.QuestionService = appServices.NewQuestionService(
		deps.Repos.QuestionRepository,
		deps.Repos.SubjectRepository,
		deps.Repos.CollegeRepository,
		lgr,
	)
	deps.AnalyticsService = appServices.NewAnalyticsService(deps.Repos.AnalyticsRepository, deps.Repos.CollegeRepository, lgr)

	if purged, err := deps.Repos.TokenRepository.DeleteExpiredTokens(context.Background(), time.Now()); err != nil {
		// Stale token cleanup should not block startup
		lgr.Warn().Err(err).Msg("Failed to purge expired refresh tokens")
	} else if purged > 0 {
		lgr.Info().Int64("purged", purged).Msg("Expired refresh tokens removed")
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.ScopeResolver)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.CollegeController = appControllers.NewCollegeController(deps.CollegeService)
	deps.BatchController = appControllers.NewBatchController(deps.BatchService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.BulkUploadService)
	deps.FacultyController = appControllers.NewFacultyController(deps.FacultyService)
	deps.SubjectController = appControllers.NewSubjectController(deps.SubjectService)
	deps.QuestionController = appControllers.NewQuestionController(deps.QuestionService)
	deps.AnalyticsController = appControllers.NewAnalyticsController(deps.AnalyticsService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CollegeController,
		deps.BatchController,
		deps.StudentController,
		deps.FacultyController,
		deps.SubjectController,
		deps.QuestionController,
		deps.AnalyticsController,
		deps.AuthMiddleware,
	)

	return router
}
