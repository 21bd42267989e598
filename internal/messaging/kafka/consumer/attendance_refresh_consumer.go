package consumer

import (
	"context"
	"encoding/json"

	"saral-hr/internal/events"

	"go.uber.org/zap"
)

type AttendanceRefresher interface {
	RefreshAttendance(ctx context.Context, linkID string, months []string) (int, error)
}

// ConsumeAttendanceBatchSaved menyegarkan hitungan attendance pada salary slip
// Draft setelah Bulk Attendance Entry Grid menyimpan batch.
func ConsumeAttendanceBatchSaved(
	ctx context.Context,
	reader MessageReader,
	refresher AttendanceRefresher,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.attendance_refresh")
	log.Info("attendance refresh consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("attendance refresh consumer stopped")
				return
			}
			log.Error("fetch attendance batch message failed", zap.Error(err))
			continue
		}

		var event events.AttendanceBatchSavedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode attendance_batch_saved event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		refreshed, err := refresher.RefreshAttendance(ctx, event.CompanyLinkID, event.Months)
		if err != nil {
			log.Error("refresh draft salary slips failed",
				zap.String("company_link_id", event.CompanyLinkID),
				zap.Strings("months", event.Months),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit attendance batch message failed", zap.Error(err))
			continue
		}

		log.Info("draft salary slips refreshed",
			zap.String("company_link_id", event.CompanyLinkID),
			zap.Int("refreshed", refreshed),
		)
	}
}
