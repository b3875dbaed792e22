package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"report_manager/internal/cache"
	"report_manager/internal/config"
	"report_manager/internal/database"
	"report_manager/internal/handlers"
	"report_manager/internal/migrations"
	"report_manager/internal/repository"
	"report_manager/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize report cache
	reportCache, err := cache.Initialize(cfg.RedisURL, time.Duration(cfg.ReportCacheTTL)*time.Second)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer reportCache.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	reportRepo := repository.NewReportRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo, taskRepo)
	reportService := services.NewReportService(reportRepo, activityRepo, reportCache)
	activityService := services.NewActivityService(activityRepo)

	// Background project-summary refresh, stopped on shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	refresher := services.NewSummaryRefresher(projectService, time.Duration(cfg.SummaryRefreshSeconds)*time.Second)
	go refresher.Run(ctx)

	// Initialize handlers
	reportHandler := handlers.NewReportHandler(reportService, userService)
	projectHandler := handlers.NewProjectHandler(projectService, refresher)
	userHandler := handlers.NewUserHandler(userService, activityService)

	// Setup routes
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	api := router.Group("/api")
	{
		api.GET("/reports", reportHandler.GetReports)
		api.POST("/reports", reportHandler.SaveReport)
		api.DELETE("/reports", reportHandler.DeleteReport)
		api.POST("/reports/:userId/:date/feedback", reportHandler.SubmitFeedback)
		api.GET("/reports/calendar", reportHandler.GetCalendar)
		api.GET("/reports/stats", reportHandler.GetStats)

		api.GET("/projects", projectHandler.ListProjects)
		api.POST("/projects", projectHandler.CreateProject)
		api.PUT("/projects/:id", projectHandler.UpdateProject)
		api.GET("/projects/:id/tasks", projectHandler.ListTasks)
		api.POST("/projects/:id/tasks", projectHandler.CreateTask)
		api.PUT("/tasks/:id", projectHandler.UpdateTask)
		api.DELETE("/tasks/:id", projectHandler.DeleteTask)
		api.GET("/projects/summaries", projectHandler.GetSummaries)

		api.GET("/users", userHandler.ListUsers)
		api.POST("/users", userHandler.CreateUser)
		api.GET("/activity", userHandler.GetActivity)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
