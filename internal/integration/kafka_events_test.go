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

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	kafkatc "github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkaadapter "github.com/couchcryptid/zonal-anomaly-viz/internal/adapter/kafka"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/config"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/domain"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/observability"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/state"
)

const testEventsTopic = "test-grouping-activity"

// activityMessage holds a deserialized message read from the events topic.
type activityMessage struct {
	Event   domain.GroupingEvent
	Key     string
	Headers map[string]string
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-node Kafka broker in a container and returns
// its advertised broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := kafkatc.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		kafkatc.WithClusterID("test-cluster"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "resolve kafka brokers")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a topic on the broker's controller so the first produce
// does not race topic auto-creation.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer func() { _ = conn.Close() }()

	controller, err := conn.Controller()
	require.NoError(t, err, "resolve controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer func() { _ = controllerConn.Close() }()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}), "create topic")
}

// readActivity reads a single message from the events consumer and deserializes it.
func readActivity(ctx context.Context, t *testing.T, consumer *kafkago.Reader) activityMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from events topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var event domain.GroupingEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event), "unmarshal event message")

	return activityMessage{
		Event:   event,
		Key:     string(msg.Key),
		Headers: headers,
	}
}

// TestGroupingEventsEndToEnd verifies that store mutations publish grouping
// activity events through the Kafka writer and that the events round-trip with
// their action key, headers, and full grouping snapshot intact.
func TestGroupingEventsEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testEventsTopic)

	cfg := &config.Config{
		KafkaBrokers: []string{broker},
		EventsTopic:  testEventsTopic,
	}

	writer := kafkaadapter.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	store := state.NewStore(domain.DefaultGrouping(), writer, discardLogger(), metrics)

	// Cycle band 4 once: group 2 -> group 3 in the default preset.
	after, err := store.Cycle(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, domain.GroupID(3), after.Group(4))

	// Then clear everything.
	cleared := store.Clear(ctx)
	assert.Equal(t, domain.EmptyGrouping(), cleared)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testEventsTopic,
		GroupID:     fmt.Sprintf("test-events-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	cycleMsg := readActivity(ctx, t, consumer)
	assert.Equal(t, domain.ActionCycle, cycleMsg.Key)
	assert.Equal(t, domain.ActionCycle, cycleMsg.Event.Action)
	require.NotNil(t, cycleMsg.Event.Band)
	assert.Equal(t, 4, *cycleMsg.Event.Band)
	assert.Equal(t, after, cycleMsg.Event.Grouping)

	clearMsg := readActivity(ctx, t, consumer)
	assert.Equal(t, domain.ActionClear, clearMsg.Key)
	assert.Equal(t, domain.ActionClear, clearMsg.Event.Action)
	assert.Nil(t, clearMsg.Event.Band)
	assert.Equal(t, domain.EmptyGrouping(), clearMsg.Event.Grouping)

	// Every message must carry action and occurred_at headers.
	for _, tm := range []activityMessage{cycleMsg, clearMsg} {
		assert.Equal(t, tm.Event.Action, tm.Headers["action"], "action header")
		require.Contains(t, tm.Headers, "occurred_at", "missing occurred_at header")
		_, err := time.Parse(time.RFC3339, tm.Headers["occurred_at"])
		assert.NoError(t, err, "invalid occurred_at format")
	}

	// No further messages should be waiting.
	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err = consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no extra message on events topic")
}
