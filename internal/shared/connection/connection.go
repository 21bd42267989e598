package connection

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultAttempts = 5
	defaultDelay    = 5 * time.Second
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func DBConfigFromEnv() DBConfig {
	cfg := DBConfig{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	return cfg
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

// Retry menjalankan fn sampai berhasil atau attempts habis.
func Retry(ctx context.Context, logger *zap.Logger, target string, attempts int, delay time.Duration, fn func(ctx context.Context) error) error {
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for i := 1; i <= attempts; i++ {
		if lastErr = fn(ctx); lastErr == nil {
			logger.Info("connected", zap.String("target", target), zap.Int("attempt", i))
			return nil
		}
		logger.Warn("connect failed",
			zap.String("target", target),
			zap.Int("attempt", i),
			zap.Int("max_attempts", attempts),
			zap.Error(lastErr),
		)
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("%s connection failed after %d attempts: %w", target, attempts, lastErr)
}

func ConnectGORM(ctx context.Context, cfg DBConfig, logger *zap.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	err := Retry(ctx, logger, "postgres", defaultAttempts, defaultDelay, func(ctx context.Context) error {
		g, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			return err
		}
		sqlDB, err := g.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return err
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
		db = g
		return nil
	})
	return db, err
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func RedisConfigFromEnv() RedisConfig {
	cfg := RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	if n, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		cfg.DB = n
	}
	return cfg
}

func ConnectRedis(ctx context.Context, cfg RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	err := Retry(ctx, logger, "redis", defaultAttempts, defaultDelay, func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	if err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// ConnectKafkaWriter memastikan broker bisa dijangkau sebelum writer dipakai relay.
// Topic tidak di-set di writer karena setiap outbox event membawa topic sendiri.
func ConnectKafkaWriter(ctx context.Context, broker string, logger *zap.Logger) (*kafkago.Writer, error) {
	if broker == "" {
		return nil, fmt.Errorf("KAFKA_BROKER is required")
	}
	err := Retry(ctx, logger, "kafka", defaultAttempts, defaultDelay, func(ctx context.Context) error {
		conn, err := kafkago.DialContext(ctx, "tcp", broker)
		if err != nil {
			return err
		}
		defer conn.Close()
		_, err = conn.Brokers()
		return err
	})
	if err != nil {
		return nil, err
	}
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(broker),
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}, nil
}
