//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/gps-points-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/gps-points-dashboard/internal/config"
	"github.com/couchcryptid/gps-points-dashboard/internal/dashboard"
	"github.com/couchcryptid/gps-points-dashboard/internal/domain"
	"github.com/couchcryptid/gps-points-dashboard/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testSelectionTopic = "test-dashboard-selections"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node broker and returns its bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	ctr, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("dashboard-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	brokers, err := ctr.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	cconn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer cconn.Close()

	require.NoError(t, cconn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

type stubMaps struct{}

func (stubMaps) RenderOrFallback([]domain.Boundary, []domain.Point) string { return "" }

type stubCharts struct{}

func (stubCharts) Bar(io.Writer, domain.Series) error { return nil }
func (stubCharts) Pie(io.Writer, domain.Series) error { return nil }

// TestSelectionEventsReachKafka drives a dropdown change through the dashboard
// service and reads the resulting event back from the topic.
func TestSelectionEventsReachKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSelectionTopic)

	cfg := &config.Config{
		KafkaBrokers:        []string{broker},
		KafkaSelectionTopic: testSelectionTopic,
	}
	metrics := observability.NewMetricsForTesting()
	writer := kafka.NewWriter(cfg, discardLogger(), metrics)

	data := domain.NewDataset([]domain.Point{
		{Region: "Oromia", Zone: "Arsi", Woreda: "Tiyo", Kebele: "K01", Lat: 7.95, Lon: 39.12},
		{Region: "Amhara", Zone: "West Gojam", Woreda: "Bure", Kebele: "K30", Lat: 10.70, Lon: 37.06},
	}, nil)
	svc := dashboard.New(data, stubMaps{}, stubCharts{}, writer, discardLogger(), metrics)

	view := svc.View(ctx, domain.Selection{Region: "Oromia", Zone: "West Gojam"}, domain.LevelRegion)
	assert.Equal(t, 1, view.Summary.Total)

	// Close flushes the async batch.
	require.NoError(t, writer.Close())

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSelectionTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from selection topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "Oromia", string(msg.Key))
	assert.Equal(t, "region", headers["changed"])
	_, err = time.Parse(time.RFC3339, headers["occurred_at"])
	assert.NoError(t, err, "occurred_at should be valid RFC3339")

	var event domain.SelectionEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, headers["event_id"], event.ID)
	assert.Equal(t, domain.Selection{Region: "Oromia", Zone: domain.All, Woreda: domain.All}, event.Selection)
	assert.Equal(t, 1, event.MatchedPoints)
}
