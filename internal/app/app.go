package app

import (
	"context"
	"net/http"

	"github.com/Sedmeq/WorkTrack/internal/bootstrap"
	"github.com/Sedmeq/WorkTrack/internal/middleware"
	"github.com/Sedmeq/WorkTrack/internal/shared/connection"
	"github.com/Sedmeq/WorkTrack/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const connectRetries = 5

// App holds the wired router and the resources that must be released on exit.
type App struct {
	Router  *gin.Engine
	Audit   bootstrap.AuditLogger
	closers []func()
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func connectDatabase(cfg Config) (*gorm.DB, error) {
	return connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		connectRetries,
	)
}

// auditLogger picks the mongo audit store when MONGO_URI is set.
func auditLogger(cfg Config, logger *zap.Logger) (bootstrap.AuditLogger, func(), error) {
	if cfg.MongoURI == "" {
		logger.Info("MONGO_URI not set, audit entries go to the log")
		return bootstrap.NewStdoutAuditLogger(logger), func() {}, nil
	}
	mdb, err := connection.ConnectMongoWithRetry(cfg.MongoURI, cfg.MongoDB, connectRetries)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = mdb.Client().Disconnect(context.Background()) }
	return bootstrap.NewMongoAuditLogger(mdb), closeFn, nil
}

func newRouter(cfg Config, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.Locale(),
		middleware.Recovery(logger),
	)
	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	})
	return r
}

// BuildApp connects the infrastructure, seeds the database and registers every module.
func BuildApp(ctx context.Context, cfg Config, logger *zap.Logger) (*App, error) {
	log := logger.Named("app")
	a := &App{}

	gormDB, err := connectDatabase(cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = sqlDB.Close() })

	if err := bootstrap.Seed(ctx, gormDB, bootstrap.SeedConfig{AdminPassword: cfg.SeedAdminPassword}, logger); err != nil {
		a.Close()
		return nil, err
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
	} else {
		log.Info("REDIS_ADDR not set, caches and idempotency disabled")
	}

	audit, closeAudit, err := auditLogger(cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, closeAudit)
	a.Audit = audit

	a.Router = newRouter(cfg, logger)
	if err := registerModules(a.Router, sqlDB, gormDB, rdb, cfg, logger); err != nil {
		a.Close()
		return nil, err
	}

	if err := audit.Log(ctx, bootstrap.AuditLog{Action: "SERVER_START", Message: "API started", Meta: map[string]any{"env": cfg.AppEnv}}); err != nil {
		log.Warn("audit start entry failed", zap.Error(err))
	}
	return a, nil
}
