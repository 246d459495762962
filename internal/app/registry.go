package app

import (
	"dayflow-hrms/internal/attendance"
	"dayflow-hrms/internal/config"
	"dayflow-hrms/internal/department"
	"dayflow-hrms/internal/employee"
	"dayflow-hrms/internal/employeesalary"
	"dayflow-hrms/internal/leave"
	"dayflow-hrms/internal/messaging/kafka"
	"dayflow-hrms/internal/middleware"
	"dayflow-hrms/internal/payroll"
	"dayflow-hrms/internal/rbac"
	"dayflow-hrms/internal/shared/counter"
	"dayflow-hrms/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func rateLimit(rps float64) rate.Limit {
	return rate.Limit(rps)
}

func registerModules(router *gin.Engine, cfg config.Config, infra *Infra, logger *zap.Logger) error {
	db, gormDB, rdb := infra.DB, infra.GormDB, infra.Redis

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	employeeSalaryRepo := employeesalary.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)

	// --- RBAC ---
	enforcer, err := rbac.NewEnforcer(rbac.Rules, rbac.Inheritance)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo, logger)
	departmentService := department.NewService(departmentRepo)
	employeeService := employee.NewService(
		db, employeeRepo, userRepo, counterRepo, outboxRepo,
		rbacService, rdb, cfg.CompanyName, logger,
	)
	employeeSalaryService := employeesalary.NewService(db, employeeSalaryRepo, logger)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo, logger)
	payrollService := payroll.NewService(db, payrollRepo, cfg.DefaultCurrency, logger)
	userService := user.NewService(userRepo, logger)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService, logger)
	employeeSalaryHandler := employeesalary.NewHandler(employeeSalaryService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	payrollHandler := payroll.NewHandler(payrollService, logger)
	rbacHandler := rbac.NewHandler(rbacService)
	userHandler := user.NewHandler(userService, logger)

	auth := middleware.AuthMiddleware([]byte(cfg.JWTSecret))

	// --- Routes ---
	api := router.Group("/api/v1")
	api.GET("/health", healthHandler(db, rdb))
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, auth)
		department.RegisterRoutes(api, departmentHandler, rbacService, auth)
		employee.RegisterRoutes(api, employeeHandler, rbacService, rdb, auth)
		employeesalary.RegisterRoutes(api, employeeSalaryHandler, rbacService, auth)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb, auth)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb, auth)
		rbac.RegisterRoutes(api, rbacHandler, rbacService, auth)
		user.RegisterRoutes(api, userHandler, rbacService, auth)
	}

	return nil
}
