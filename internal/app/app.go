package app

import (
	"context"
	"database/sql"
	"os"

	"saral-hr/internal/middleware"
	"saral-hr/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func connectDatabase(ctx context.Context, logger *zap.Logger) (*gorm.DB, *sql.DB, error) {
	gormDB, err := connection.ConnectGORM(ctx, connection.DBConfigFromEnv(), logger)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}
	return gormDB, sqlDB, nil
}

func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")
	ctx := context.Background()

	gormDB, sqlDB, err := connectDatabase(ctx, logger)
	if err != nil {
		return err
	}
	redisClient, err := connection.ConnectRedis(ctx, connection.RedisConfigFromEnv(), logger)
	if err != nil {
		return err
	}
	store, err := newPayslipStorage(ctx, logger)
	if err != nil {
		return err
	}

	router.Use(
		middleware.RequestID(),
		middleware.AccessLog(logger),
		middleware.CORS(os.Getenv("CORS_ALLOWED_ORIGINS")),
	)

	return registerModules(router, sqlDB, gormDB, redisClient, store, logger)
}
