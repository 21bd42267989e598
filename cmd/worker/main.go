package main

import (
	"saral-hr/internal/app"
	"saral-hr/internal/bootstrap"
	"saral-hr/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// worker memindahkan outbox_events ke Kafka.
func main() {
	_ = godotenv.Load()
	logger, err := bootstrap.NewLogger("saral-hr-worker")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	apperror.Init()

	if err := app.RunWorker(); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
