package attendance

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
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware(jwtSecret))
	{
		attendances.POST("/check-in", middleware.RBACAuthorize(rbacService, "attendance", "check"), handler.CheckIn)
		attendances.POST("/check-out", middleware.RBACAuthorize(rbacService, "attendance", "check"), handler.CheckOut)
		attendances.GET("/me", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.GetMine)

		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read_all"), handler.GetAll)
		attendances.GET("/user/:userId", middleware.RBACAuthorize(rbacService, "attendance", "read_all"), handler.GetByUser)
		attendances.GET("/:id", middleware.RBACAuthorize(rbacService, "attendance", "read_all"), handler.GetById)
		attendances.POST("", middleware.RBACAuthorize(rbacService, "attendance", "create"), handler.Create)
		attendances.PUT("/:id", middleware.RBACAuthorize(rbacService, "attendance", "update"), handler.Update)
		attendances.DELETE("/:id", middleware.RBACAuthorize(rbacService, "attendance", "delete"), handler.Delete)
	}
}
