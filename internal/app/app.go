package app

import (
	"errors"
	"fmt"

	"archway_backend/database"
	"archway_backend/internal/config"
	"archway_backend/internal/email"
	"archway_backend/internal/handlers"
	"archway_backend/internal/logger"
	"archway_backend/internal/middleware"
	"archway_backend/internal/models"
	"archway_backend/internal/repositories"
	"archway_backend/internal/routes"
	"archway_backend/internal/services"
	"archway_backend/internal/storage"
	"archway_backend/internal/uploader"
	"archway_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires storage, services and handlers into a gin engine. Tests
// call it directly with their own config and database handle.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	local, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		logger.Fatal("Failed to initialize local storage", "error", err)
	}

	// Remote storage is optional; the cleaner needs it only for refs that
	// already migrated.
	var remote storage.Storage
	if cfg.Storage.Endpoint != "" {
		r2, err := storage.NewCloudflareR2Storage(storage.Config{
			BaseURL:   cfg.Storage.BaseURL,
			Bucket:    cfg.Storage.Bucket,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Endpoint:  cfg.Storage.Endpoint,
		})
		if err != nil {
			logger.Fatal("Failed to initialize remote storage", "error", err)
		}
		remote = r2
		logger.Info("Remote storage initialized", "bucket", cfg.Storage.Bucket)
	}

	ingestor := uploader.New(local, cfg.Upload.MaxSize)
	cleaner := uploader.NewCleaner(local, remote)

	serviceContainer := initializeServices(cfg, ingestor, cleaner)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	ginRouter.Static("/uploads", local.BasePath())
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, ingestor *uploader.Ingestor, cleaner *uploader.Cleaner) *services.ServiceContainer {
	var sender email.Sender = email.NoopSender{}
	if cfg.Email.SMTPHost != "" {
		sender = email.NewSMTPSender(email.Config{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			Username: cfg.Email.SMTPUsername,
			Password: cfg.Email.SMTPPassword,
			From:     cfg.Email.FromEmail,
		})
	} else {
		logger.Warn("SMTP is not configured, contact notifications disabled")
	}

	adminRepo := repositories.NewAdminRepository()
	projectRepo := repositories.NewProjectRepository()
	articleRepo := repositories.NewArticleRepository()
	blogRepo := repositories.NewBlogRepository()
	contactRepo := repositories.NewContactRepository()

	return &services.ServiceContainer{
		AuthService:    services.NewAuthService(adminRepo),
		ProjectService: services.NewProjectService(projectRepo, ingestor, cleaner),
		ArticleService: services.NewArticleService(articleRepo, ingestor, cleaner),
		BlogService:    services.NewBlogService(blogRepo, ingestor, cleaner),
		ContactService: services.NewContactService(contactRepo, sender, cfg.Email.ContactEmail),
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(baseHandler, container.AuthService),
		ProjectHandler: handlers.NewProjectHandler(baseHandler, container.ProjectService),
		ArticleHandler: handlers.NewArticleHandler(baseHandler, container.ArticleService),
		BlogHandler:    handlers.NewBlogHandler(baseHandler, container.BlogService),
		ContactHandler: handlers.NewContactHandler(baseHandler, container.ContactService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var admin models.Admin
	result := db.Where("email = ?", adminEmail).First(&admin)

	if result.Error == nil {
		logger.Info("Admin already exists, skipping creation", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin: %w", result.Error)
	}

	logger.Warn("No admin found, creating first admin", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.Admin{
		Name:         "Admin",
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	logger.Info("First admin created", "email", adminEmail)
	return nil
}
