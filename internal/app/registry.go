package app

import (
	"context"
	"database/sql"
	"os"

	"saral-hr/internal/attendance"
	"saral-hr/internal/auth"
	"saral-hr/internal/category"
	"saral-hr/internal/company"
	"saral-hr/internal/companylink"
	"saral-hr/internal/employee"
	"saral-hr/internal/holiday"
	"saral-hr/internal/messaging/kafka"
	"saral-hr/internal/rbac"
	"saral-hr/internal/rbac/infra"
	"saral-hr/internal/register"
	"saral-hr/internal/rpc"
	"saral-hr/internal/salarycomponent"
	"saral-hr/internal/salaryhold"
	"saral-hr/internal/salaryslip"
	"saral-hr/internal/salarystructure"
	"saral-hr/internal/shared/counter"
	"saral-hr/internal/shared/storage"
	"saral-hr/internal/variablepay"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// payrollServices dipakai bersama oleh API dan consumer.
type payrollServices struct {
	attendance attendance.Service
	structures salarystructure.Service
	variable   variablepay.Service
	holds      salaryhold.Service
	slips      salaryslip.Service
}

func newPayrollServices(
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	store storage.ObjectStorage,
	logger *zap.Logger,
) payrollServices {
	outboxRepo := kafka.NewOutboxRepository(db)

	p := payrollServices{
		attendance: attendance.NewService(db, attendance.NewRepository(gormDB), outboxRepo, logger),
		structures: salarystructure.NewService(db, salarystructure.NewRepository(gormDB), logger),
		variable:   variablepay.NewService(db, variablepay.NewRepository(gormDB), logger),
		holds:      salaryhold.NewService(db, salaryhold.NewRepository(gormDB), logger),
	}
	p.slips = salaryslip.NewService(db, salaryslip.NewRepository(gormDB), salaryslip.Dependencies{
		Structures:  p.structures,
		Attendance:  p.attendance,
		VariablePay: p.variable,
		Holds:       p.holds,
		Outbox:      outboxRepo,
		Redis:       rdb,
		Storage:     store,
	}, logger)
	return p
}

// newPayslipStorage mengembalikan nil kalau PAYSLIP_BUCKET kosong; render
// payslip lalu gagal dengan ErrStorageUnavailable, modul lain tetap jalan.
func newPayslipStorage(ctx context.Context, logger *zap.Logger) (storage.ObjectStorage, error) {
	bucket := os.Getenv("PAYSLIP_BUCKET")
	if bucket == "" {
		logger.Warn("PAYSLIP_BUCKET is not set, payslip upload disabled")
		return nil, nil
	}
	return storage.NewS3Storage(ctx, bucket)
}

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	store storage.ObjectStorage,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	categoryRepo := category.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	companyLinkRepo := companylink.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	salaryComponentRepo := salarycomponent.NewRepository(gormDB)
	registerRepo := register.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(os.Getenv("RBAC_MODEL_PATH"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)

	// --- Services ---
	authService := auth.NewService(authRepo, rbacService, logger)
	companyService := company.NewService(companyRepo, logger)
	categoryService := category.NewService(db, categoryRepo, rdb)
	companyLinkService := companylink.NewService(db, companyLinkRepo, counterRepo, rdb, logger)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, companyLinkService, logger)
	holidayService := holiday.NewService(db, holidayRepo, companyService, logger)
	salaryComponentService := salarycomponent.NewService(db, salaryComponentRepo, logger)
	payroll := newPayrollServices(db, gormDB, rdb, store, logger)
	registerService := register.NewService(registerRepo, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	rbacHandler := rbac.NewHandler(rbacService)
	companyHandler := company.NewHandler(companyService, logger)
	categoryHandler := category.NewHandler(categoryService)
	employeeHandler := employee.NewHandler(employeeService, logger)
	companyLinkHandler := companylink.NewHandler(companyLinkService, logger)
	holidayHandler := holiday.NewHandler(holidayService, logger)
	attendanceHandler := attendance.NewHandler(payroll.attendance, rdb)
	salaryComponentHandler := salarycomponent.NewHandler(salaryComponentService, logger)
	salaryStructureHandler := salarystructure.NewHandler(payroll.structures, logger)
	variablePayHandler := variablepay.NewHandler(payroll.variable, logger)
	salarySlipHandler := salaryslip.NewHandler(payroll.slips, rdb, logger)
	salaryHoldHandler := salaryhold.NewHandler(payroll.holds)
	registerHandler := register.NewHandler(registerService)

	// --- Remote procedures ---
	procedures := rpc.NewRegistry()
	companylink.RegisterProcedures(procedures, companyLinkService)
	holiday.RegisterProcedures(procedures, holidayService)
	attendance.RegisterProcedures(procedures, payroll.attendance)
	salaryslip.RegisterProcedures(procedures, payroll.slips)
	salaryhold.RegisterProcedures(procedures, payroll.holds)
	rpcHandler := rpc.NewHandler(procedures, rbacService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
		company.RegisterRoutes(api, companyHandler, rbacService, rbacService)
		category.RegisterRoutes(api, categoryHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		companylink.RegisterRoutes(api, companyLinkHandler, rbacService, rbacService, logger)
		holiday.RegisterRoutes(api, holidayHandler, rbacService, rbacService, logger)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, rbacService, rdb)
		salarycomponent.RegisterRoutes(api, salaryComponentHandler, rbacService, rbacService, logger)
		salarystructure.RegisterRoutes(api, salaryStructureHandler, rbacService, rbacService, logger)
		variablepay.RegisterRoutes(api, variablePayHandler, rbacService, rbacService, logger)
		salaryslip.RegisterRoutes(api, salarySlipHandler, rbacService, rbacService, rdb, logger)
		salaryhold.RegisterRoutes(api, salaryHoldHandler, rbacService, rbacService)
		register.RegisterRoutes(api, registerHandler, rbacService, rbacService)
	}

	rpc.RegisterRoutes(router.Group("/api"), rpcHandler, rbacService)

	return nil
}
