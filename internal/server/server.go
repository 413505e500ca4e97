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

	"taskmanager/internal/auth"
	"taskmanager/internal/config"
	"taskmanager/internal/database"
	"taskmanager/internal/handler"
	"taskmanager/internal/middleware"
	"taskmanager/internal/repository"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("❌ failed to access DB pool: %w", err)
	}
	if err := database.Migrate(sqlDB, cfg.DBName); err != nil {
		return nil, fmt.Errorf("❌ failed to migrate DB: %w", err)
	}

	if err := handler.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("❌ failed to register validators: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL())

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, noticeRepo, tokens, int(tokens.TTL().Seconds()), cfg.IsProduction())
	taskHandler := handler.NewTaskHandler(taskRepo, userRepo)

	return &Server{
		Engine: NewRouter(cfg, tokens, userRepo, userHandler, taskHandler),
		DB:     db,
		Config: cfg,
	}, nil
}

// NewRouter wires the API routes onto a fresh gin engine
func NewRouter(
	cfg *config.Config,
	tokens middleware.TokenParser,
	users middleware.UserLookup,
	userHandler *handler.UserHandler,
	taskHandler *handler.TaskHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), middleware.Recovery(cfg.IsProduction()))
	r.NoRoute(middleware.RouteNotFound)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	protect := middleware.Protect(tokens, users)
	adminOnly := middleware.AdminOnly()

	api := r.Group("/api")

	// User routes
	user := api.Group("/user")
	{
		user.POST("/register", userHandler.Register)
		user.POST("/login", userHandler.Login)
		user.POST("/logout", userHandler.Logout)

		user.GET("/get-team", protect, adminOnly, userHandler.GetTeamList)
		user.GET("/notifications", protect, userHandler.GetNotifications)

		user.PUT("/profile", protect, userHandler.UpdateProfile)
		user.PUT("/read-noti", protect, userHandler.MarkNotificationRead)
		user.PUT("/change-password", protect, userHandler.ChangePassword)

		user.PUT("/:id", protect, adminOnly, userHandler.ActivateUserProfile)
		user.DELETE("/:id", protect, adminOnly, userHandler.DeleteUserProfile)
	}

	// Task routes - require authentication
	task := api.Group("/task")
	task.Use(protect)
	{
		task.POST("/create", adminOnly, taskHandler.Create)
		task.POST("/duplicate/:id", adminOnly, taskHandler.Duplicate)
		task.POST("/activity/:id", taskHandler.PostActivity)

		task.GET("/dashboard", taskHandler.Dashboard)
		task.GET("", taskHandler.List)
		task.GET("/:id", taskHandler.GetByID)

		task.PUT("/create-subtask/:id", adminOnly, taskHandler.CreateSubTask)
		task.PUT("/update/:id", adminOnly, taskHandler.Update)
		task.PUT("/change-stage/:id", taskHandler.UpdateStage)
		task.PUT("/change-status/:taskId/:subTaskId", taskHandler.UpdateSubTaskStatus)
		task.PUT("/:id", adminOnly, taskHandler.Trash)

		task.DELETE("/delete-restore", adminOnly, taskHandler.DeleteRestore)
		task.DELETE("/delete-restore/:id", adminOnly, taskHandler.DeleteRestore)
	}

	return r
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

	if sqlDB, err := s.DB.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("✅ Server exited properly")
}
