package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/umuganda/community-activity-api/internal/config"
	"github.com/umuganda/community-activity-api/internal/constants"
	"github.com/umuganda/community-activity-api/internal/database"
	"github.com/umuganda/community-activity-api/internal/handlers"
	"github.com/umuganda/community-activity-api/internal/middleware"
	"github.com/umuganda/community-activity-api/internal/repository"
	"github.com/umuganda/community-activity-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Index creation relies on pg_indexes, so it only runs on Postgres
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			log.Fatalf("Failed to create indexes: %v", err)
		}
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis poolsize
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	teamService := services.NewTeamService(teamRepo)
	activityService := services.NewActivityService(activityRepo)
	taskService := services.NewTaskService(taskRepo, activityRepo, teamRepo)
	reportService := services.NewReportService(reportRepo, taskRepo, teamRepo, userRepo)
	analyticsService := services.NewAnalyticsService(activityRepo, taskRepo, reportRepo)

	var narrativeService *services.NarrativeService
	if cfg.OpenAIAPIKey != "" {
		narrativeService = services.NewNarrativeService(cfg.OpenAIAPIKey)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	teamHandler := handlers.NewTeamHandler(teamService)
	activityHandler := handlers.NewActivityHandler(activityService)
	taskHandler := handlers.NewTaskHandler(taskService)
	reportHandler := handlers.NewReportHandler(reportService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, narrativeService)
	locationHandler := handlers.NewLocationHandler()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Community Activity API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Location lookup (protected)
		api.GET("/locations", middleware.RequireAuth(), locationHandler.ListLocations)

		// Team routes (protected)
		teams := api.Group("/teams")
		teams.Use(middleware.RequireAuth())
		{
			teams.POST("", teamHandler.CreateTeam)
			teams.GET("", teamHandler.ListTeams)
			teams.POST("/join", teamHandler.JoinTeam)
			teams.GET("/:id", middleware.RequireTeamAccess(), teamHandler.GetTeam)
			teams.DELETE("/:id", middleware.RequireTeamAccess(), middleware.RequireTeamLeader(), teamHandler.DeleteTeam)
			teams.POST("/:id/regenerate-code", middleware.RequireTeamAccess(), middleware.RequireTeamLeader(), teamHandler.RegenerateInviteCode)
			teams.DELETE("/:id/members/:user_id", middleware.RequireTeamAccess(), middleware.RequireTeamLeader(), teamHandler.RemoveMember)
		}

		// Activity routes (protected)
		activities := api.Group("/activities")
		activities.Use(middleware.RequireAuth())
		{
			activities.GET("", activityHandler.ListActivities)
			activities.POST("", activityHandler.CreateActivity)
			activities.GET("/:id", middleware.RequireActivityAccess(), activityHandler.GetActivity)
			activities.PATCH("/:id", activityHandler.UpdateActivity)
			activities.DELETE("/:id", activityHandler.DeleteActivity)
			activities.GET("/:id/analytics", middleware.RequireActivityAccess(), analyticsHandler.ActivityAnalytics)
			activities.POST("/:id/analytics/narrative", middleware.RequireActivityAccess(), analyticsHandler.Narrative)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", middleware.RequireTaskAccess(), taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.RequireTaskAccess(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireTaskAccess(), taskHandler.DeleteTask)
			tasks.POST("/:id/report", middleware.RequireTaskAccess(), reportHandler.SubmitReport)
			tasks.GET("/:id/report", middleware.RequireTaskAccess(), reportHandler.GetReportForTask)
		}

		// Report routes (protected)
		reports := api.Group("/reports")
		reports.Use(middleware.RequireAuth())
		{
			reports.GET("/:id", reportHandler.GetReport)
			reports.DELETE("/:id", reportHandler.DeleteReport)
		}

		// Analytics routes (protected)
		analytics := api.Group("/analytics")
		analytics.Use(middleware.RequireAuth())
		{
			analytics.GET("/reports", analyticsHandler.GroupedReports)
			analytics.GET("/activities", analyticsHandler.ActivityAnalyticsBatch)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
