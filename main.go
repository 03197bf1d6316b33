package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/yusufkaramustafa/Timesheet-App/config"
	"github.com/yusufkaramustafa/Timesheet-App/database"
	"github.com/yusufkaramustafa/Timesheet-App/handlers"
	"github.com/yusufkaramustafa/Timesheet-App/models"
	"github.com/yusufkaramustafa/Timesheet-App/repository"
	"github.com/yusufkaramustafa/Timesheet-App/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	defer database.Close(db)

	// Repositories and services
	userRepo := repository.NewUserRepository(db)
	timesheetRepo := repository.NewTimesheetRepository(db)
	statsService := services.NewStatsService(timesheetRepo, userRepo)
	exportService := services.NewExportService(timesheetRepo, userRepo)

	authHandler := handlers.NewAuthHandler(userRepo, []byte(cfg.JWTSecret))
	timesheetHandler := handlers.NewTimesheetHandler(timesheetRepo)
	adminHandler := handlers.NewAdminHandler(userRepo, timesheetRepo, statsService, exportService)

	seedAdminUser(userRepo, cfg)

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	requireAuth := handlers.RequireAuth(userRepo, []byte(cfg.JWTSecret))

	// Owner-scoped timesheet routes
	timesheet := router.Group("/timesheet")
	timesheet.Use(requireAuth)
	{
		timesheet.GET("/projects", timesheetHandler.GetProjects)
		timesheet.POST("/", timesheetHandler.Create)
		timesheet.GET("/", timesheetHandler.List)
		timesheet.PUT("/:id", timesheetHandler.Update)
		timesheet.DELETE("/:id", timesheetHandler.Delete)
	}

	// Admin routes
	admin := router.Group("/admin")
	admin.Use(requireAuth, handlers.AdminOnly())
	{
		admin.GET("/users", adminHandler.GetUsers)
		admin.GET("/timesheets", adminHandler.GetAllTimesheets)
		admin.GET("/statistics", adminHandler.GetStatistics)
		admin.GET("/export/timesheet", adminHandler.ExportTimesheets)
	}

	log.Printf("Server listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

// seedAdminUser ensures the default admin exists.
func seedAdminUser(users repository.UserRepository, cfg *config.Config) {
	ctx := context.Background()

	existing, err := users.GetByUsername(ctx, cfg.AdminUsername)
	if err != nil {
		log.Printf("Failed to check for admin user: %v", err)
		return
	}
	if existing != nil {
		return
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: string(hashedBytes),
		Role:         models.RoleAdmin,
	}
	if err := users.Create(ctx, &admin); err != nil {
		log.Printf("Failed to create admin user: %v", err)
	} else {
		log.Println("Admin user seeded successfully")
	}
}
