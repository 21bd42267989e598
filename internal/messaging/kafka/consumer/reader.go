package consumer

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageReader adalah bagian dari *kafkago.Reader yang dipakai consumer.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}
