package attendance

import (
	"inthehaus-hr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	attendances := r.Group("/attendances")
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.GetAll)
		attendances.POST("/check-in",
			middleware.RateLimitByUser(0.1, 2),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			handler.CheckIn,
		)
		attendances.POST("/check-out",
			middleware.RateLimitByUser(0.1, 2),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			handler.CheckOut,
		)
		attendances.POST("/absent", middleware.RBACAuthorize(rbacService, "attendance", "manage"), handler.MarkAbsent)
	}
}
