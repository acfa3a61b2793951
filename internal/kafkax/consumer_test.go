package kafkax

import (
	"io"
	"log/slog"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger { return slog.New(slog.NewJSONHandler(io.Discard, nil)) }

func TestNewConsumerStartsAtFirstOffset(t *testing.T) {
	c := NewConsumer([]string{"kafka:9092"}, "stock-alerter", "stock.debited", 4, discard())
	defer c.r.Close()

	cfg := c.r.Config()
	assert.Equal(t, kafka.FirstOffset, cfg.StartOffset)
	assert.Equal(t, "stock-alerter", cfg.GroupID)
}

// Group broadcast dibuat baru tiap start dan tidak punya offset tersimpan;
// mulai dari ekor log, bukan replay riwayat.
func TestNewBroadcastConsumerStartsAtLastOffset(t *testing.T) {
	c := NewBroadcastConsumer([]string{"kafka:9092"}, "api-fanout-abc", "notification.created", 4, discard())
	defer c.r.Close()

	require.Equal(t, kafka.LastOffset, c.r.Config().StartOffset)
}

func TestNewConsumerWorkerFloor(t *testing.T) {
	c := NewConsumer([]string{"kafka:9092"}, "g", "t", 0, discard())
	defer c.r.Close()
	assert.Equal(t, 1, c.workers)
}
