package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Azis2405/wpdev-copy-button/internal/app/model"
	apprepository "github.com/Azis2405/wpdev-copy-button/internal/app/repository"
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// seenCapacity sizes the duplicate filter; at the expected click volume a
// false-positive rate of 1e-4 drops a negligible number of real events.
const (
	seenCapacity = 1_000_000
	seenFPRate   = 0.0001
)

// EventConsumer drains the copy stream into the event store. JetStream is
// at-least-once, so a bloom filter over message ids suppresses
// redelivered duplicates before they reach the append-only table.
type EventConsumer struct {
	js     nats.JetStreamContext
	logger *zap.Logger
	repo   apprepository.CopyEventRepository
	seen   *bloom.BloomFilter
}

// NewEventConsumer creates a copy event consumer.
func NewEventConsumer(js nats.JetStreamContext, logger *zap.Logger, repo apprepository.CopyEventRepository) *EventConsumer {
	return &EventConsumer{
		js:     js,
		logger: logger,
		repo:   repo,
		seen:   bloom.NewWithEstimates(seenCapacity, seenFPRate),
	}
}

// Start ensures the stream and durable consumer exist, then begins
// consuming in the background.
func (c *EventConsumer) Start() error {
	_, err := c.js.StreamInfo(model.CopyStreamName)
	if err != nil {
		_, err = c.js.AddStream(&nats.StreamConfig{
			Name:     model.CopyStreamName,
			Subjects: []string{model.CopyStreamSubject},
			MaxBytes: model.CopyStreamMaxBytes,
		})
		if err != nil {
			return fmt.Errorf("failed to create stream: %w", err)
		}
	}

	_, err = c.js.ConsumerInfo(model.CopyStreamName, model.CopyConsumerName)
	if err != nil {
		_, err = c.js.AddConsumer(model.CopyStreamName, &nats.ConsumerConfig{
			Durable:   model.CopyConsumerName,
			AckPolicy: nats.AckExplicitPolicy,
		})
		if err != nil {
			return fmt.Errorf("failed to create consumer: %w", err)
		}
	}

	sub, err := c.js.PullSubscribe(model.CopyStreamSubject, model.CopyConsumerName)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	go c.consume(sub)
	return nil
}

func (c *EventConsumer) consume(sub *nats.Subscription) {
	ctx := context.Background()
	for {
		msgs, err := sub.Fetch(10, nats.MaxWait(5*time.Second))
		if err != nil && err != nats.ErrTimeout {
			c.logger.Error("failed to fetch messages", zap.Error(err))
			continue
		}

		for _, msg := range msgs {
			var envelope copyMessage
			if err := json.Unmarshal(msg.Data, &envelope); err != nil {
				c.logger.Error("failed to unmarshal copy event", zap.Error(err))
				msg.Nak()
				continue
			}

			if envelope.MsgID != "" && c.seen.TestOrAddString(envelope.MsgID) {
				c.logger.Debug("duplicate copy event dropped",
					zap.String("msg_id", envelope.MsgID))
				msg.Ack()
				continue
			}

			if err := c.repo.Create(ctx, &envelope.Event); err != nil {
				c.logger.Error("failed to store copy event",
					zap.String("msg_id", envelope.MsgID),
					zap.String("target_id", envelope.Event.TargetID),
					zap.Error(err))
				msg.Nak()
				continue
			}

			c.logger.Debug("copy event stored",
				zap.String("msg_id", envelope.MsgID),
				zap.String("target_id", envelope.Event.TargetID),
				zap.Time("time", envelope.Event.Time),
			)

			msg.Ack()
		}
	}
}
