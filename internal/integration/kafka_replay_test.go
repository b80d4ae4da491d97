//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkaadapter "github.com/couchcryptid/disaster-atlas/internal/adapter/kafka"
	"github.com/couchcryptid/disaster-atlas/internal/atlas/atlastest"
	"github.com/couchcryptid/disaster-atlas/internal/config"
	"github.com/couchcryptid/disaster-atlas/internal/domain"
	"github.com/couchcryptid/disaster-atlas/internal/observability"
	"github.com/couchcryptid/disaster-atlas/internal/pipeline"
)

const testTopic = "test-disaster-records"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node broker and returns its bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	kc, err := kafka.Run(ctx, "confluentinc/confluent-local:7.5.0", kafka.WithClusterID("disaster-atlas-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = kc.Terminate(context.Background()) })

	brokers, err := kc.Brokers(ctx)
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
	cc, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer cc.Close()

	require.NoError(t, cc.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestReplayToKafka publishes the fixture dataset in batches and reads every
// record back, checking keys, headers and payloads.
func TestReplayToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testTopic}
	ds := atlastest.Dataset()
	writer := kafkaadapter.NewWriter(cfg, ds.LoadedAt(), discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	replay := pipeline.New(writer, discardLogger(), observability.NewMetricsForTesting(), 5)
	n, err := replay.Run(ctx, ds.Records())
	require.NoError(t, err)
	require.Equal(t, ds.Len(), n)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	want := make(map[string]domain.DisasterRecord, ds.Len())
	for _, r := range ds.Records() {
		want[r.ID] = r
	}
	loadedAt := ds.LoadedAt().UTC().Format(time.RFC3339)

	for range ds.Len() {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read replayed record")

		headers := make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}

		var got domain.DisasterRecord
		require.NoError(t, json.Unmarshal(msg.Value, &got))

		expected, ok := want[string(msg.Key)]
		require.True(t, ok, "unexpected key %q", msg.Key)
		assert.Equal(t, expected.ID, got.ID)
		assert.Equal(t, expected.Row, got.Row)
		assert.Equal(t, expected.DisasterType, headers["disaster_type"])
		assert.Equal(t, loadedAt, headers["loaded_at"])
		delete(want, expected.ID)
	}
	assert.Empty(t, want, "every record is replayed exactly once")
}
