package main

import (
	"log"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/taskboard/taskboard-api/internal/config"
	"github.com/taskboard/taskboard-api/internal/database"
	"github.com/taskboard/taskboard-api/internal/handlers"
	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/services"
	"github.com/taskboard/taskboard-api/internal/token"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(db); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize token service
	tokens := token.NewService(cfg.JWTSecret, cfg.JWTTTL)

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	participantRepo := repository.NewParticipantRepository(db)

	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo)
	participantService := services.NewParticipantService(participantRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, tokens)
	taskHandler := handlers.NewTaskHandler(taskService)
	participantHandler := handlers.NewParticipantHandler(participantService)

	// Initialize Gin router
	r := gin.Default()

	// CORS restricted to the configured origin(s)
	corsConfig := cors.DefaultConfig()
	if cfg.AllowedOrigin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.AllowedOrigin, ",")
		corsConfig.AllowCredentials = true
	}
	corsConfig.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsConfig))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Taskboard API is running",
		})
	})

	// Auth routes (public except verify/me)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/verify", middleware.RequireAuth(tokens), authHandler.Verify)
		auth.GET("/me", middleware.RequireAuth(tokens), authHandler.GetCurrentUser)
	}

	// API routes (protected)
	api := r.Group("/api")
	api.Use(middleware.RequireAuth(tokens))
	{
		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.DELETE("", taskHandler.BulkDeleteTasks)
			tasks.GET("/statistics", taskHandler.Statistics)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		participants := api.Group("/participants")
		{
			participants.GET("", participantHandler.ListParticipants)
			participants.POST("", participantHandler.CreateParticipant)
			participants.GET("/:id", participantHandler.GetParticipant)
			participants.PUT("/:id", participantHandler.UpdateParticipant)
			participants.PATCH("/:id", participantHandler.UpdateParticipant)
			participants.DELETE("/:id", participantHandler.DeleteParticipant)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
