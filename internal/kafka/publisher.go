// Package kafka emits audit events for mutations (comments, complaints).
// Publishing is best effort; the interactive operation never fails because
// the broker is down.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/minhtran-ct/collab-view/internal/config"
	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"
)

const (
	PatternCommentAdded   = "comment.added"
	PatternComplaintFiled = "complaint.filed"
)

type Event struct {
	Pattern string    `json:"pattern"`
	Tenant  string    `json:"tenant"`
	At      time.Time `json:"at"`
	Data    any       `json:"data"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

func NewPublisher(lc fx.Lifecycle, conf *config.Config) Publisher {
	if !conf.Kafka.Enabled {
		log.Warnf(context.Background(), "Kafka publisher is disabled in configuration")
		return nopPublisher{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(conf.Kafka.Brokers...),
		Topic:        conf.Kafka.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return writer.Close()
		},
	})

	return &kafkaPublisher{writer: writer}
}

type kafkaPublisher struct {
	writer *kafka.Writer
}

func (p *kafkaPublisher) Publish(ctx context.Context, event Event) error {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Tenant),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to write audit event: %w", err)
	}
	return nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) error { return nil }
