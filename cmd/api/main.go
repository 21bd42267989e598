package main

import (
	"saral-hr/internal/app"
	"saral-hr/internal/bootstrap"
	"saral-hr/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := bootstrap.NewLogger("saral-hr-api")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	apperror.Init()
	if bootstrap.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	if err := app.BuildApp(r); err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(r, bootstrap.ServerConfigFromEnv(), bootstrap.NewStdoutAuditLogger(logger))
}
