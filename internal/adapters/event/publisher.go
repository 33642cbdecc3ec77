package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/classpoll/api/internal/core/domain"
	"github.com/classpoll/api/internal/core/ports"
	"github.com/segmentio/kafka-go"
)

type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher writes vote events keyed by poll id so per-poll ordering is
// preserved across partitions. RequireAll trades latency for not losing
// events on leader failover.
func NewPublisher(brokers []string, topic string) ports.VotePublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
		MaxAttempts:  5,
		Compression:  kafka.Snappy,
	}

	return &Publisher{writer: w}
}

func (p *Publisher) Publish(ctx context.Context, event domain.VoteEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal vote event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.PollID),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write vote event: %w", err)
	}

	return nil
}

func (p *Publisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}
	return nil
}
