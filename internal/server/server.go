package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"planner/internal/config"
	"planner/internal/db"
	"planner/internal/handler"
	"planner/internal/middleware"
	"planner/internal/model"
	"planner/internal/repository"
	"planner/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	AuthDB *gorm.DB
	TaskDB *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Two logical stores: users in the auth store, tasks in the task store.
	authDB, err := gorm.Open(postgres.Open(cfg.AuthDB.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to auth DB: %w", err)
	}
	taskDB, err := gorm.Open(postgres.Open(cfg.TaskDB.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to task DB: %w", err)
	}
	log.Println("✅ Connected to databases")

	if err := db.Migrate(authDB, "auth"); err != nil {
		return nil, err
	}
	if err := db.Migrate(taskDB, "tasks"); err != nil {
		return nil, err
	}
	log.Println("✅ Migrations applied")

	// Initialize repositories
	userRepo := repository.NewUserRepository(authDB)
	taskRepo := repository.NewTaskRepository(taskDB)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg)
	taskService := service.NewTaskService(taskRepo)

	if err := authService.SeedAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		return nil, fmt.Errorf("❌ failed to seed admin user: %w", err)
	}

	// Initialize handlers
	userHandler := handler.NewUserHandler(authService, cfg)
	taskHandler := handler.NewTaskHandler(taskService)
	pageHandler := handler.NewPageHandler(taskService, authService)

	// Setup Gin
	r := gin.Default()
	r.LoadHTMLGlob("templates/*.html")

	// Public routes
	r.GET("/", userHandler.Home)
	r.POST("/", userHandler.Login) // the login form posts back to the index page
	r.POST("/login", userHandler.Login)
	r.POST("/register", userHandler.Register)

	// Browser pages - require a session, redirect to login otherwise
	pages := r.Group("/")
	pages.Use(middleware.LoginRequired(cfg.JWTSecret, cfg.SessionCookie))
	{
		pages.GET("/logout", userHandler.Logout)
		pages.GET("/profile", userHandler.Profile)
		pages.GET("/calendar", pageHandler.Calendar)
		pages.GET("/dashboard", pageHandler.Dashboard)
		pages.POST("/dashboard", pageHandler.DashboardCreate)
		pages.GET("/dashboard/edit/:id", pageHandler.EditPage)
		pages.POST("/dashboard/edit/:id", pageHandler.EditSubmit)
		pages.GET("/dashboard/delete/:id", pageHandler.Delete)

		admin := pages.Group("/admin", middleware.RoleRequired(model.RoleAdmin))
		admin.GET("", pageHandler.Admin)
	}

	// Calendar API - require authentication
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, cfg.SessionCookie))
	{
		api.GET("/tasks", taskHandler.List)
		api.POST("/tasks/create", taskHandler.Create)
		api.POST("/tasks/:id/edit", taskHandler.Edit)
		api.POST("/tasks/:id/move", taskHandler.Move)
		api.POST("/tasks/:id/resize", taskHandler.Resize)
		api.POST("/tasks/:id/duplicate", taskHandler.Duplicate)
		api.POST("/tasks/:id/delete", taskHandler.Delete)
	}

	return &Server{
		Engine: r,
		AuthDB: authDB,
		TaskDB: taskDB,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
