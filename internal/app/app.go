package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"collabra_backend/database"
	"collabra_backend/internal/config"
	"collabra_backend/internal/email"
	"collabra_backend/internal/handlers"
	"collabra_backend/internal/logger"
	"collabra_backend/internal/middleware"
	"collabra_backend/internal/models"
	"collabra_backend/internal/repositories"
	"collabra_backend/internal/routes"
	"collabra_backend/internal/services"
	"collabra_backend/internal/storage"
	"collabra_backend/internal/validator"
	"collabra_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	// TranslateError maps driver duplicate-key errors to
	// gorm.ErrDuplicatedKey, which the repositories rely on.
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	cleanupWorker := workers.NewTokenCleanupWorker(
		gormDB,
		repositories.NewVerificationTokenRepository(),
		repositories.NewRefreshTokenRepository(),
	)
	cleanupWorker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services and handlers onto a gin engine.
// The test suite calls it directly with an sqlite-backed *gorm.DB.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}

	serviceContainer := initializeServices(cfg)
	appHandlers := initializeHandlers(serviceContainer, storageInstance)
	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	var emailProvider email.Provider
	if cfg.Email.SMTPHost == "" || cfg.Server.Env == "test" {
		logger.Warn("SMTP is not configured, using mock email provider")
		emailProvider = &MockEmailProvider{}
	} else {
		emailProvider = email.NewSMTPProvider(&email.Config{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
			VerifyURL: cfg.Email.VerifyURL,
		})
		if err := emailProvider.Validate(); err != nil {
			logger.Fatal("Email provider misconfigured", "error", err)
		}
	}

	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	tokenRepo := repositories.NewVerificationTokenRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	documentRepo := repositories.NewDocumentRepository()

	verificationService := services.NewEmailVerificationService(userRepo, tokenRepo, emailProvider)
	registrationService := services.NewRegistrationService(userRepo, profileRepo, verificationService)
	authService := services.NewAuthService(userRepo, profileRepo, refreshTokenRepo)
	documentService := services.NewDocumentService(documentRepo, userRepo, emailProvider)
	statusService := services.NewStatusService(userRepo, documentRepo)
	userService := services.NewUserService(userRepo)

	return &services.ServiceContainer{
		RegistrationService: registrationService,
		AuthService:         authService,
		VerificationService: verificationService,
		DocumentService:     documentService,
		StatusService:       statusService,
		UserService:         userService,
	}
}

func initializeHandlers(services *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(baseHandler, services.RegistrationService, services.AuthService, services.VerificationService),
		DocumentHandler: handlers.NewDocumentHandler(baseHandler, services.DocumentService, storageInstance),
		StatusHandler:   handlers.NewStatusHandler(baseHandler, services.StatusService, services.UserService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// seedFirstAdmin creates the bootstrap admin account when FIRST_ADMIN_EMAIL
// and FIRST_ADMIN_PASSWORD are set and no user with that email exists.
func seedFirstAdmin(db *gorm.DB) error {
	adminEmail := services.NormalizeEmail(envOr("FIRST_ADMIN_EMAIL", ""))
	adminPassword := envOr("FIRST_ADMIN_PASSWORD", "")

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		result := tx.Where("email = ?", adminEmail).First(&existing)
		if result.Error == nil {
			logger.Info("Admin user already exists", "email", adminEmail)
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", result.Error)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		now := tx.NowFunc()
		admin := &models.User{
			Email:           adminEmail,
			PasswordHash:    string(hashed),
			Role:            models.UserRoleAdmin,
			Status:          models.UserStatusVerified,
			EmailVerifiedAt: &now,
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		logger.Info("First admin user created", "email", adminEmail)
		return nil
	})
}
