package payroll

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
	payrolls := r.Group("/payrolls")
	{
		payrolls.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetAll)
		payrolls.GET("/preview", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.Preview)
		payrolls.GET("/export", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.Export)

		generate := []gin.HandlerFunc{middleware.RBACAuthorize(rbacService, "payroll", "create")}
		if rdb != nil {
			generate = append(generate, middleware.Idempotency(rdb))
		}
		payrolls.POST("/generate", append(generate, handler.Generate)...)

		payrolls.GET("/config", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetConfig)
		payrolls.PUT("/config", middleware.RBACAuthorize(rbacService, "payroll", "configure"), handler.UpdateConfig)

		payrolls.GET("/deductions", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.ListDeductions)
		payrolls.POST("/deductions", middleware.RBACAuthorize(rbacService, "payroll", "create"), handler.CreateDeduction)
		payrolls.DELETE("/deductions/:id", middleware.RBACAuthorize(rbacService, "payroll", "delete"), handler.DeleteDeduction)

		payrolls.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetByID)
		payrolls.GET("/:id/payslip/download", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.DownloadPayslip)
		payrolls.POST("/:id/payslip", middleware.RBACAuthorize(rbacService, "payroll", "approve"), handler.GeneratePayslip)
		payrolls.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "payroll", "approve"), handler.Approve)
		payrolls.POST("/:id/mark-paid", middleware.RBACAuthorize(rbacService, "payroll", "pay"), handler.MarkAsPaid)
		payrolls.DELETE("/:id", middleware.RBACAuthorize(rbacService, "payroll", "delete"), handler.Delete)
	}
}
