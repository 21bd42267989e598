package producer

import (
	"context"
	"database/sql"
	"time"

	"saral-hr/internal/messaging/kafka"

	"go.uber.org/zap"
)

const outboxBatchSize = 50

type RelayConfig struct {
	PollInterval time.Duration
	// Retention event terkirim sebelum dihapus; 0 berarti tidak pernah dipurge.
	Retention     time.Duration
	PurgeInterval time.Duration
}

func (c RelayConfig) withDefaults() RelayConfig {
	if c.PollInterval <= 0 {
		c.PollInterval = 3 * time.Second
	}
	if c.PurgeInterval <= 0 {
		c.PurgeInterval = time.Hour
	}
	return c
}

// Relay memindahkan outbox_events ke Kafka. Jika db diisi, satu batch
// diambil dan ditandai di dalam satu transaksi (row lock SKIP LOCKED).
type Relay struct {
	db     *sql.DB
	repo   kafka.OutboxRepository
	writer MessageWriter
	cfg    RelayConfig
	logger *zap.Logger
	now    func() time.Time
}

func NewRelay(db *sql.DB, repo kafka.OutboxRepository, writer MessageWriter, cfg RelayConfig, logger *zap.Logger) *Relay {
	if logger == nil {
		logger = zap.L()
	}
	return &Relay{
		db:     db,
		repo:   repo,
		writer: writer,
		cfg:    cfg.withDefaults(),
		logger: logger.Named("kafka.producer.relay"),
		now:    time.Now,
	}
}

// Run memblok sampai ctx dibatalkan.
func (r *Relay) Run(ctx context.Context) {
	poll := time.NewTicker(r.cfg.PollInterval)
	defer poll.Stop()
	purge := time.NewTicker(r.cfg.PurgeInterval)
	defer purge.Stop()

	r.logger.Info("outbox relay started",
		zap.Duration("poll_interval", r.cfg.PollInterval),
		zap.Duration("retention", r.cfg.Retention),
	)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-poll.C:
			if _, err := r.ProcessBatch(ctx); err != nil {
				r.logger.Error("process outbox batch failed", zap.Error(err))
			}
		case <-purge.C:
			if _, err := r.Purge(ctx); err != nil {
				r.logger.Error("purge outbox failed", zap.Error(err))
			}
		}
	}
}

// ProcessBatch mengirim satu batch dan mengembalikan jumlah event yang terkirim.
func (r *Relay) ProcessBatch(ctx context.Context) (int, error) {
	repo := r.repo
	var tx *sql.Tx
	if r.db != nil {
		var err error
		if tx, err = r.db.BeginTx(ctx, nil); err != nil {
			return 0, err
		}
		defer tx.Rollback()
		repo = repo.WithTx(tx)
	}

	sent, err := processPendingEvents(ctx, repo, r.writer, r.logger)
	if err != nil {
		return 0, err
	}
	if tx != nil {
		if err := tx.Commit(); err != nil {
			return 0, err
		}
	}
	return sent, nil
}

func (r *Relay) Purge(ctx context.Context) (int64, error) {
	if r.cfg.Retention <= 0 {
		return 0, nil
	}
	n, err := r.repo.PurgeSent(ctx, r.now().Add(-r.cfg.Retention))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		r.logger.Info("purged sent outbox events", zap.Int64("count", n))
	}
	return n, nil
}

func processPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) (int, error) {
	events, err := repo.ListPending(ctx, outboxBatchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	logger.Debug("processing pending outbox events", zap.Int("count", len(events)))

	sent := 0
	for _, ev := range events {
		fields := []zap.Field{
			zap.String("outbox_id", ev.ID),
			zap.String("request_id", ev.RequestID),
			zap.String("event_type", ev.EventType),
			zap.String("topic", ev.Topic),
		}

		if err := publishEvent(ctx, writer, ev); err != nil {
			if ev.RetryCount+1 >= kafka.MaxOutboxAttempts {
				logger.Error("outbox event dead-lettered", append(fields, zap.Int("retry_count", ev.RetryCount), zap.Error(err))...)
			} else {
				logger.Warn("publish outbox event failed", append(fields, zap.Int("retry_count", ev.RetryCount), zap.Error(err))...)
			}
			if markErr := repo.MarkFailed(ctx, ev.ID, err.Error()); markErr != nil {
				return sent, markErr
			}
			continue
		}

		if err := repo.MarkSent(ctx, ev.ID); err != nil {
			return sent, err
		}
		sent++
		logger.Info("outbox event sent", fields...)
	}

	return sent, nil
}
