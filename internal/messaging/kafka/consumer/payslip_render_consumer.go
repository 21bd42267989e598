package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"saral-hr/internal/events"
	salarysliperrors "saral-hr/internal/salaryslip/errors"

	"go.uber.org/zap"
)

type PayslipRenderer interface {
	RenderPayslip(ctx context.Context, id string) error
}

func ConsumeSalarySlipSubmitted(
	ctx context.Context,
	reader MessageReader,
	renderer PayslipRenderer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payslip_render")
	log.Info("payslip render consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payslip render consumer stopped")
				return
			}
			log.Error("fetch salary slip message failed", zap.Error(err))
			continue
		}

		var event events.SalarySlipSubmittedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode salary_slip_submitted event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := renderer.RenderPayslip(ctx, event.SalarySlipID); err != nil {
			if errors.Is(err, salarysliperrors.ErrSlipNotFound) {
				log.Warn("salary slip no longer exists, skipping",
					zap.String("salary_slip_id", event.SalarySlipID),
					zap.String("company_id", event.CompanyID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}
			if errors.Is(err, salarysliperrors.ErrStorageUnavailable) {
				log.Warn("payslip storage not configured, skipping",
					zap.String("salary_slip_id", event.SalarySlipID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("render payslip failed",
				zap.String("salary_slip_id", event.SalarySlipID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit salary slip message failed", zap.Error(err))
			continue
		}

		log.Info("payslip rendered",
			zap.String("salary_slip_id", event.SalarySlipID),
			zap.String("company_id", event.CompanyID),
		)
	}
}
