package main

import (
	"saral-hr/internal/app"
	"saral-hr/internal/bootstrap"
	"saral-hr/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// consumer merender payslip PDF dan menyegarkan absensi di slip draft.
func main() {
	_ = godotenv.Load()
	logger, err := bootstrap.NewLogger("saral-hr-consumer")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	apperror.Init()

	if err := app.RunConsumer(); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
