package app

import (
	"database/sql"

	"github.com/Sedmeq/WorkTrack/internal/auth"
	"github.com/Sedmeq/WorkTrack/internal/employee"
	"github.com/Sedmeq/WorkTrack/internal/leave"
	"github.com/Sedmeq/WorkTrack/internal/messaging/kafka"
	"github.com/Sedmeq/WorkTrack/internal/rbac"
	"github.com/Sedmeq/WorkTrack/internal/role"
	"github.com/Sedmeq/WorkTrack/internal/timelog"
	"github.com/Sedmeq/WorkTrack/internal/workschedule"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg Config,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	roleRepo := role.NewRepository(gormDB)
	workScheduleRepo := workschedule.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	timelogRepo := timelog.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer(rbac.DefaultRules)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Services ---
	authService := auth.NewService(authRepo, auth.TokenConfig{Secret: cfg.JWTSecret, TTL: auth.DefaultTokenTTL}, logger)
	roleService := role.NewService(roleRepo, rdb, role.ParsePolicy(cfg.RolePolicy), logger)
	workScheduleService := workschedule.NewService(workScheduleRepo, rdb, logger)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo, logger)
	employeeService := employee.NewService(db, employeeRepo, roleService, leaveService, outboxRepo, logger)
	timelogService := timelog.NewService(db, timelogRepo, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, logger)
	workScheduleHandler := workschedule.NewHandler(workScheduleService)
	employeeHandler := employee.NewHandler(employeeService, logger)
	timelogHandler := timelog.NewHandler(timelogService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, employeeService, rbacService, rdb)
		timelog.RegisterRoutes(api, timelogHandler, employeeService, rbacService)
		leave.RegisterRoutes(api, leaveHandler, employeeService, rbacService, rdb)
		workschedule.RegisterRoutes(api, workScheduleHandler)
		rbac.RegisterRoutes(api, rbacHandler, employeeService, rbacService)
	}

	return nil
}
