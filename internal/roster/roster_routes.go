package roster

import (
	"inthehaus-hr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	shifts := r.Group("/shifts")
	{
		shifts.GET("", middleware.RBACAuthorize(rbacService, "shift", "read"), handler.ListShifts)
		shifts.POST("", middleware.RBACAuthorize(rbacService, "shift", "manage"), handler.CreateShift)
		shifts.PUT("/:id", middleware.RBACAuthorize(rbacService, "shift", "manage"), handler.UpdateShift)
		shifts.DELETE("/:id", middleware.RBACAuthorize(rbacService, "shift", "manage"), handler.DeleteShift)
	}

	rosters := r.Group("/rosters")
	{
		rosters.GET("/effective",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "roster", "read"),
			handler.GetEffective,
		)
		rosters.GET("/weekly", middleware.RBACAuthorize(rbacService, "roster", "read"), handler.ListWeekly)
		rosters.PUT("/weekly", middleware.RBACAuthorize(rbacService, "roster", "manage"), handler.UpsertWeekly)
		rosters.GET("/overrides", middleware.RBACAuthorize(rbacService, "roster", "read"), handler.ListOverrides)
		rosters.POST("/overrides", middleware.RBACAuthorize(rbacService, "roster", "manage"), handler.CreateOverride)
		rosters.DELETE("/overrides/:id", middleware.RBACAuthorize(rbacService, "roster", "manage"), handler.DeleteOverride)
	}
}
