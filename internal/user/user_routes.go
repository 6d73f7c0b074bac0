package user

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
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(jwtSecret))
	{
		users.GET("", middleware.RBACAuthorize(rbacService, "user", "read"), handler.GetAll)
		users.GET("/me", handler.GetMe)
		users.PUT("/me", middleware.RBACAuthorize(rbacService, "user", "update"), handler.UpdateMe)
		users.POST("/me/password", handler.ChangePassword)
		users.GET("/:id", middleware.RBACAuthorize(rbacService, "user", "read"), handler.GetById)
	}

	// Pembuatan dan pengelolaan akun hanya lewat jalur admin.
	admin := r.Group("/admin/users")
	admin.Use(middleware.AuthMiddleware(jwtSecret))
	admin.Use(middleware.RBACAuthorize(rbacService, "user", "manage"))
	{
		admin.POST("", handler.Create)
		admin.PUT("/:id", handler.Update)
		admin.POST("/:id/activate", handler.Activate)
		admin.POST("/:id/deactivate", handler.Deactivate)
		admin.POST("/:id/password", handler.ResetPassword)
		admin.DELETE("/:id", handler.Delete)
	}
}
