package app

import (
	"go-hrm/internal/attendance"
	"go-hrm/internal/auth"
	"go-hrm/internal/leave"
	"go-hrm/internal/message"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"
	"go-hrm/internal/rbac/infra"
	"go-hrm/internal/shared/config"
	"go-hrm/internal/task"
	"go-hrm/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg config.Config,
) error {
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	// --- Repositories ---
	userRepo := user.NewRepository(db)
	attendanceRepo := attendance.NewRepository(db)
	leaveRepo := leave.NewRepository(db)
	taskRepo := task.NewRepository(db)
	messageRepo := message.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(userRepo, cfg)
	userService := user.NewServiceWithOutbox(db, userRepo, outboxRepo)
	attendanceService := attendance.NewService(attendanceRepo, userRepo)
	leaveService := leave.NewService(db, leaveRepo, userRepo, outboxRepo)
	taskService := task.NewService(taskRepo, userRepo)
	messageService := message.NewService(messageRepo, userRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.IsProduction())
	userHandler := user.NewHandler(userService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	leaveHandler := leave.NewHandler(leaveService)
	taskHandler := task.NewHandler(taskService)
	messageHandler := message.NewHandlerWithRedis(messageService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, cfg.JWTSecret)
		user.RegisterRoutes(api, userHandler, rbacService, cfg.JWTSecret)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, cfg.JWTSecret)
		leave.RegisterRoutes(api, leaveHandler, rbacService, cfg.JWTSecret)
		task.RegisterRoutes(api, taskHandler, rbacService, cfg.JWTSecret)
		message.RegisterRoutes(api, messageHandler, rbacService, cfg.JWTSecret, rdb)
	}

	return nil
}
