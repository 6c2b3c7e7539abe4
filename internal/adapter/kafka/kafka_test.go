package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/accident-eda/internal/domain"
	"github.com/couchcryptid/accident-eda/internal/observability"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

var generatedAt = time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)

func testReport() *domain.Report {
	return &domain.Report{
		Source:      "accidents.csv",
		GeneratedAt: generatedAt,
		Rows:        domain.RowStats{Loaded: 10, Cleaned: 8, Parsed: 7},
		ByHour:      []domain.HourCount{{Hour: 5, Count: 3}, {Hour: 17, Count: 4}},
		ByWeekday:   []domain.Bucket{{Label: "Monday", Count: 7}},
		ByMonth:     []domain.Bucket{{Label: "February", Count: 7}},
		Weather:     []domain.Bucket{{Label: "Light Rain", Count: 5}},
		MapSample:   make([]domain.Accident, 7),
		SampleSeed:  42,
	}
}

func newTestWriter(fw *fakeWriter) *Writer {
	return &Writer{
		writer:  fw,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: observability.NewMetricsForTesting(),
	}
}

func TestSerializeToMessage(t *testing.T) {
	rep := testReport()

	msg, err := serializeToMessage(rep, "by_hour", rep.ByHour)
	require.NoError(t, err)

	assert.Equal(t, []byte("by_hour"), msg.Key)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "aggregation", msg.Headers[0].Key)
	assert.Equal(t, []byte("by_hour"), msg.Headers[0].Value)
	assert.Equal(t, "generated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(generatedAt.Format(time.RFC3339)), msg.Headers[1].Value)

	var env Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, "by_hour", env.Aggregation)
	assert.Equal(t, "accidents.csv", env.Source)
	assert.True(t, generatedAt.Equal(env.GeneratedAt))
	assert.JSONEq(t, `[{"hour":5,"count":3},{"hour":17,"count":4}]`, string(env.Data))
}

func TestWriter_Publish(t *testing.T) {
	fw := &fakeWriter{}
	w := newTestWriter(fw)

	require.NoError(t, w.Publish(context.Background(), testReport()))

	keys := make([]string, len(fw.msgs))
	for i, m := range fw.msgs {
		keys[i] = string(m.Key)
	}
	assert.Equal(t, []string{"summary", "by_hour", "by_weekday", "by_month", "road_features", "weather", "hotspots"}, keys)
	assert.Equal(t, float64(7), testutil.ToFloat64(w.metrics.MessagesPublished))

	var env Envelope
	require.NoError(t, json.Unmarshal(fw.msgs[0].Value, &env))
	var summary Summary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 7, summary.SampleSize)
	assert.Equal(t, uint64(42), summary.SampleSeed)
	assert.Equal(t, 8, summary.Rows.Cleaned)
}

func TestWriter_Publish_Error(t *testing.T) {
	fw := &fakeWriter{err: errors.New("broker down")}
	w := newTestWriter(fw)

	err := w.Publish(context.Background(), testReport())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Zero(t, testutil.ToFloat64(w.metrics.MessagesPublished))
}

func TestWriter_Close(t *testing.T) {
	fw := &fakeWriter{}
	w := newTestWriter(fw)

	require.NoError(t, w.Close())
	assert.True(t, fw.closed)
}
