package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/gps-points-dashboard/internal/config"
	"github.com/couchcryptid/gps-points-dashboard/internal/domain"
	"github.com/couchcryptid/gps-points-dashboard/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes selection events to a Kafka topic.
// It implements dashboard.SelectionRecorder.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates an asynchronous Kafka producer for the selection topic.
// Delivery results are reported through the logger and metrics; a request
// never waits on the broker.
func NewWriter(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSelectionTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireOne,
		Async:        true,
		BatchTimeout: 100 * time.Millisecond,
		Completion:   completion(logger, metrics),
	}
	return &Writer{writer: w, logger: logger}
}

// RecordSelection enqueues one event.
func (w *Writer) RecordSelection(ctx context.Context, event domain.SelectionEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

// Close flushes pending events and releases the connection.
func (w *Writer) Close() error {
	return w.writer.Close()
}

func completion(logger *slog.Logger, metrics *observability.Metrics) func([]kafkago.Message, error) {
	return func(messages []kafkago.Message, err error) {
		if err != nil {
			metrics.SelectionEventErrors.Add(float64(len(messages)))
			logger.Warn("selection events not delivered", "error", err, "count", len(messages))
			return
		}
		metrics.SelectionEventsPublished.Add(float64(len(messages)))
	}
}

// serializeToMessage marshals a SelectionEvent into a Kafka message keyed by region.
func serializeToMessage(event domain.SelectionEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize selection event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.Selection.Region),
		Value: data,
		Time:  event.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "changed", Value: []byte(event.Changed)},
			{Key: "occurred_at", Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
	}, nil
}
