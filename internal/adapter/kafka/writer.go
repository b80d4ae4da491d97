package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/disaster-atlas/internal/config"
	"github.com/couchcryptid/disaster-atlas/internal/domain"
)

// messageWriter is the subset of *kafkago.Writer the Writer depends on.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer produces disaster records to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer   messageWriter
	loadedAt time.Time
	logger   *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic. loadedAt is
// stamped on every message so consumers can tell dataset loads apart.
func NewWriter(cfg *config.Config, loadedAt time.Time, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, loadedAt: loadedAt, logger: logger}
}

// LoadBatch serializes and publishes records in a single WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, records []domain.DisasterRecord) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(records[i], w.loadedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d messages: %w", len(msgs), err)
	}
	w.logger.Debug("batch written", "records", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a DisasterRecord into a Kafka message keyed by record ID.
func serializeToMessage(r domain.DisasterRecord, loadedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize disaster record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(r.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "disaster_type", Value: []byte(r.DisasterType)},
			{Key: "loaded_at", Value: []byte(loadedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
