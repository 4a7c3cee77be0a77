// Package kafka publishes grouping activity events to the optional sink topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/zonal-anomaly-viz/internal/config"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/domain"
)

// Writer produces grouping activity events to a Kafka topic.
// It implements state.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured activity topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.EventsTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireOne,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes and writes one grouping event.
func (w *Writer) Publish(ctx context.Context, evt domain.GroupingEvent) error {
	msg, err := serializeToMessage(evt)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a GroupingEvent into a Kafka message. The key
// is the action so consumers can compact per interaction type.
func serializeToMessage(evt domain.GroupingEvent) (kafkago.Message, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize grouping event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(evt.Action),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "action", Value: []byte(evt.Action)},
			{Key: "occurred_at", Value: []byte(evt.OccurredAt.Format(time.RFC3339))},
		},
	}, nil
}
