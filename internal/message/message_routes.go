package message

import (
	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	jwtSecret string,
	rdb *redis.Client,
) {
	messages := r.Group("/messages")
	messages.Use(middleware.AuthMiddleware(jwtSecret))
	{
		messages.POST("",
			middleware.RBACAuthorize(rbacService, "message", "create"),
			middleware.Idempotency(rdb),
			handler.Send,
		)
		messages.GET("/received", middleware.RBACAuthorize(rbacService, "message", "read"), handler.GetReceived)
		messages.GET("/sent", middleware.RBACAuthorize(rbacService, "message", "read"), handler.GetSent)
		messages.GET("/unread", middleware.RBACAuthorize(rbacService, "message", "read"), handler.GetUnread)
		messages.GET("/unread/count", middleware.RBACAuthorize(rbacService, "message", "read"), handler.UnreadCount)
		messages.GET("/:id", middleware.RBACAuthorize(rbacService, "message", "read"), handler.GetById)
		messages.POST("/:id/read", middleware.RBACAuthorize(rbacService, "message", "update"), handler.MarkAsRead)
		messages.DELETE("/:id", middleware.RBACAuthorize(rbacService, "message", "delete"), handler.Delete)
	}
}
