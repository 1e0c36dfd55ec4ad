package app

import (
	"inthehaus-hr/internal/attendance"
	"inthehaus-hr/internal/config"
	"inthehaus-hr/internal/employee"
	"inthehaus-hr/internal/messaging/kafka"
	"inthehaus-hr/internal/payroll"
	"inthehaus-hr/internal/rbac"
	"inthehaus-hr/internal/rbac/infra"
	"inthehaus-hr/internal/roster"
	"inthehaus-hr/internal/shared/counter"
	"inthehaus-hr/internal/swap"

	"github.com/gin-gonic/gin"
)

func registerModules(api *gin.RouterGroup, cfg *config.Config, deps *infrastructure) error {
	db, gormDB, rdb := deps.sqlDB, deps.gormDB, deps.rdb
	loc := cfg.Location()

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	rosterRepo := roster.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	swapRepo := swap.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	employeeService := employee.NewService(db, employeeRepo, counterRepo, rdb)
	rosterService := roster.NewService(rosterRepo, employeeRepo, loc)
	attendanceService := attendance.NewService(db, attendanceRepo, employeeRepo, loc)
	swapService := swap.NewService(db, swapRepo, rosterRepo, employeeRepo, outboxRepo, loc)
	payrollService := newPayrollService(cfg, deps, outboxRepo)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	rosterHandler := roster.NewHandler(rosterService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	swapHandler := swap.NewHandler(swapService, rdb)
	payrollHandler := payroll.NewHandler(payrollService, rdb)

	// --- Routes Registration ---
	employee.RegisterRoutes(api, employeeHandler, rbacService)
	roster.RegisterRoutes(api, rosterHandler, rbacService)
	attendance.RegisterRoutes(api, attendanceHandler, rbacService)
	swap.RegisterRoutes(api, swapHandler, rbacService, rdb)
	payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)

	return nil
}

// newPayrollService is shared by the API and the payslip consumer.
func newPayrollService(cfg *config.Config, deps *infrastructure, outbox kafka.OutboxRepository) payroll.Service {
	return payroll.NewService(
		deps.sqlDB,
		payroll.NewRepository(deps.gormDB),
		employee.NewRepository(deps.gormDB),
		attendance.NewRepository(deps.gormDB),
		roster.NewRepository(deps.gormDB),
		outbox,
		payroll.Options{
			Location:      cfg.Location(),
			StorageDir:    cfg.PayslipStorageDir,
			PublicBaseURL: cfg.PayslipPublicBaseURL,
		},
	)
}
