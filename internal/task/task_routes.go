package task

import (
	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	jwtSecret string,
) {
	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware(jwtSecret))
	{
		tasks.GET("/me", middleware.RBACAuthorize(rbacService, "task", "read"), handler.GetMine)
		tasks.GET("/created", middleware.RBACAuthorize(rbacService, "task", "read"), handler.GetCreated)
		tasks.GET("", middleware.RBACAuthorize(rbacService, "task", "read_all"), handler.GetAll)
		tasks.GET("/user/:userId", middleware.RBACAuthorize(rbacService, "task", "read_all"), handler.GetByUser)
		tasks.GET("/:id", middleware.RBACAuthorize(rbacService, "task", "read"), handler.GetById)
		tasks.POST("", middleware.RBACAuthorize(rbacService, "task", "create"), handler.Create)
		tasks.PUT("/:id", middleware.RBACAuthorize(rbacService, "task", "update"), handler.Update)
		tasks.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, "task", "update"), handler.UpdateStatus)
		tasks.DELETE("/:id", middleware.RBACAuthorize(rbacService, "task", "delete"), handler.Delete)
	}
}
