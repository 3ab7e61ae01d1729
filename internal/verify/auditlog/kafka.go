package auditlog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaPublisher streams audit rows to a Kafka topic for downstream
// compliance consumers. Production is fire-and-forget; delivery failures are
// logged, the database store remains the system of record.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("auditlog: at least one kafka broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("auditlog: kafka topic is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("auditlog: kafka client: %w", err)
	}
	return &KafkaPublisher{client: client, topic: topic, logger: logger}, nil
}

func (p *KafkaPublisher) Append(ctx context.Context, row Row) error {
	value, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("auditlog: marshal kafka row: %w", err)
	}
	record := &kgo.Record{
		Key:   []byte(row.Service),
		Value: value,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Error("auditlog: kafka produce failed", "topic", p.topic, "error", err)
		}
	})
	return nil
}

// Close flushes buffered records and releases the client.
func (p *KafkaPublisher) Close(ctx context.Context) error {
	if err := p.client.Flush(ctx); err != nil {
		return fmt.Errorf("auditlog: kafka flush: %w", err)
	}
	p.client.Close()
	return nil
}
