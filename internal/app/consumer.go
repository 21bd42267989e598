package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"saral-hr/internal/events"
	"saral-hr/internal/messaging/kafka/consumer"
	"saral-hr/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const consumerGroupPrefix = "saral-hr-"

func newReader(broker, topic, group string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        consumerGroupPrefix + group,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, sqlDB, err := connectDatabase(ctx, logger)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	redisClient, err := connection.ConnectRedis(ctx, connection.RedisConfigFromEnv(), logger)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	store, err := newPayslipStorage(ctx, logger)
	if err != nil {
		return err
	}
	payroll := newPayrollServices(sqlDB, gormDB, redisClient, store, logger)

	payslipReader := newReader(kafkaBroker, events.SalarySlipSubmittedTopic, "payslip-render")
	defer payslipReader.Close()
	attendanceReader := newReader(kafkaBroker, events.AttendanceBatchSavedTopic, "slip-attendance-refresh")
	defer attendanceReader.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumeSalarySlipSubmitted(ctx, payslipReader, payroll.slips, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumeAttendanceBatchSaved(ctx, attendanceReader, payroll.slips, logger)
	}()

	<-ctx.Done()
	logger.Info("consumer shutting down")
	wg.Wait()

	return nil
}
