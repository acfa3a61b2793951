package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"kafka:9092", []string{"kafka:9092"}},
		{"a:9092, b:9092", []string{"a:9092", "b:9092"}},
		{"a:9092,,b:9092,", []string{"a:9092", "b:9092"}},
		{" ", []string{}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, splitCSV(c.in), "input %q", c.in)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("CONSUMER_WORKERS", "")

	cfg := Load()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 4, cfg.ConsumerWorkers)
}

func TestLoadConsumerWorkersInvalid(t *testing.T) {
	t.Setenv("CONSUMER_WORKERS", "banana")
	assert.Equal(t, 4, Load().ConsumerWorkers)

	t.Setenv("CONSUMER_WORKERS", "-3")
	assert.Equal(t, 4, Load().ConsumerWorkers)
}
