// Package kafka publishes report aggregations to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/accident-eda/internal/config"
	"github.com/couchcryptid/accident-eda/internal/domain"
	"github.com/couchcryptid/accident-eda/internal/observability"
)

// Writer publishes one message per report aggregation.
// It implements pipeline.Publisher.
type Writer struct {
	writer  messageWriter
	logger  *slog.Logger
	metrics *observability.Metrics
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// NewWriter creates a Kafka producer for the configured aggregation topic.
func NewWriter(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger, metrics: metrics}
}

// Publish writes every aggregation of rep in a single WriteMessages call.
func (w *Writer) Publish(ctx context.Context, rep *domain.Report) error {
	msgs, err := reportMessages(rep)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish aggregations: %w", err)
	}
	w.metrics.MessagesPublished.Add(float64(len(msgs)))
	w.logger.Info("aggregations published", "messages", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// Envelope is the JSON value of every published message.
type Envelope struct {
	Aggregation string          `json:"aggregation"`
	Source      string          `json:"source"`
	GeneratedAt time.Time       `json:"generated_at"`
	Data        json.RawMessage `json:"data"`
}

// Summary is the payload of the "summary" aggregation.
type Summary struct {
	Rows       domain.RowStats `json:"rows"`
	MapCenter  domain.Geo      `json:"map_center"`
	SampleSize int             `json:"sample_size"`
	SampleSeed uint64          `json:"sample_seed"`
}

func reportMessages(rep *domain.Report) ([]kafkago.Message, error) {
	parts := []struct {
		name string
		data any
	}{
		{"summary", Summary{Rows: rep.Rows, MapCenter: rep.MapCenter, SampleSize: len(rep.MapSample), SampleSeed: rep.SampleSeed}},
		{"by_hour", rep.ByHour},
		{"by_weekday", rep.ByWeekday},
		{"by_month", rep.ByMonth},
		{"road_features", rep.RoadFeatures},
		{"weather", rep.Weather},
		{"hotspots", rep.Hotspots},
	}
	msgs := make([]kafkago.Message, 0, len(parts))
	for _, p := range parts {
		msg, err := serializeToMessage(rep, p.name, p.data)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// serializeToMessage wraps one aggregation in an Envelope keyed by its name.
func serializeToMessage(rep *domain.Report, name string, data any) (kafkago.Message, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s: %w", name, err)
	}
	value, err := json.Marshal(Envelope{
		Aggregation: name,
		Source:      rep.Source,
		GeneratedAt: rep.GeneratedAt,
		Data:        payload,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s envelope: %w", name, err)
	}
	return kafkago.Message{
		Key:   []byte(name),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "aggregation", Value: []byte(name)},
			{Key: "generated_at", Value: []byte(rep.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
