// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package behavior

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// # Kafka Publisher

// KafkaPublisher writes events to the behavior topic. Messages are keyed by
// visitor ID so one shopper's events stay ordered within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

/*
NewKafkaPublisher constructs a publisher for the given brokers and topic.

Parameters:
  - brokers: []string (Bootstrap broker addresses)
  - topic: string

Returns:
  - *KafkaPublisher: Ready publisher; connections open lazily on first write
*/
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (publisher *KafkaPublisher) Publish(context context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: failed to marshal event: %w", err)
	}

	err = publisher.writer.WriteMessages(context, kafka.Message{
		Key:   []byte(event.VisitorID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("kafka: failed to publish event: %w", err)
	}

	return nil
}

func (publisher *KafkaPublisher) Close() error {
	return publisher.writer.Close()
}

// # Noop Publisher

// NoopPublisher discards events. Used when no brokers are configured, so
// single-node deployments still accept storefront events.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close() error                         { return nil }
