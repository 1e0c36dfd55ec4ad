package swap

import (
	"inthehaus-hr/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	swaps := r.Group("/swaps")
	{
		swaps.GET("", middleware.RBACAuthorize(rbacService, "swap", "read"), handler.GetAll)
		swaps.GET("/:id", middleware.RBACAuthorize(rbacService, "swap", "read"), handler.GetByID)

		create := []gin.HandlerFunc{
			middleware.RateLimitByUser(0.2, 3),
			middleware.RBACAuthorize(rbacService, "swap", "create"),
		}
		if rdb != nil {
			create = append(create, middleware.Idempotency(rdb))
		}
		swaps.POST("", append(create, handler.Create)...)

		swaps.POST("/:id/accept", middleware.RBACAuthorize(rbacService, "swap", "respond"), handler.Accept)
		swaps.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "swap", "respond"), handler.Reject)
		swaps.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "swap", "create"), handler.Cancel)
		swaps.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "swap", "approve"), handler.Approve)
	}
}
