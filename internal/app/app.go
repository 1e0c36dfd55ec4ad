package app

import (
	"context"
	"database/sql"
	"net/http"

	"inthehaus-hr/internal/bootstrap"
	"inthehaus-hr/internal/config"
	"inthehaus-hr/internal/middleware"
	"inthehaus-hr/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type infrastructure struct {
	gormDB *gorm.DB
	sqlDB  *sql.DB
	rdb    *redis.Client
}

func (i *infrastructure) Close() {
	if i.rdb != nil {
		_ = i.rdb.Close()
	}
	if i.sqlDB != nil {
		_ = i.sqlDB.Close()
	}
}

func connectDatabase(cfg *config.Config) (*infrastructure, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB.DSN(), cfg.ConnectRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	return &infrastructure{gormDB: gormDB, sqlDB: sqlDB}, nil
}

// BuildApp connects Postgres, Redis and (optionally) MongoDB, then mounts
// every module on router. The returned func releases the connections.
func BuildApp(ctx context.Context, cfg *config.Config, router *gin.Engine) (bootstrap.AuditLogger, func(), error) {
	logger := zap.L().Named("app")

	infra, err := connectDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.RedisAddr != "" {
		infra.rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
		if err != nil {
			infra.Close()
			return nil, nil, err
		}
	} else {
		logger.Warn("REDIS_ADDR not set, idempotency and options cache disabled")
	}

	audit := bootstrap.MultiAuditLogger{bootstrap.NewStdoutAuditLogger()}
	if cfg.Mongo.Enabled() {
		mdb, err := connection.ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			logger.Warn("mongo audit sink unavailable", zap.Error(err))
		} else {
			audit = append(audit, bootstrap.NewMongoAuditLogger(mdb))
		}
	}

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(zap.L()),
	)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.Static(cfg.PayslipPublicBaseURL, cfg.PayslipStorageDir)

	api := router.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	if err := registerModules(api, cfg, infra); err != nil {
		infra.Close()
		return nil, nil, err
	}

	logger.Info("modules registered", zap.String("env", cfg.Env))
	return audit, infra.Close, nil
}
