package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	payload, err := json.Marshal(KitchenStatusPayload{OrderID: "o-1", Status: "ready"})
	require.NoError(t, err)

	env := NewEnvelope(EventKitchenStatus, "kafepos-api", "o-1", payload)

	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, EventKitchenStatus, env.EventType)
	assert.Equal(t, 1, env.EventVersion)
	assert.Equal(t, "kafepos-api", env.Producer)
	assert.Equal(t, "o-1", env.CorrelationID)
	assert.WithinDuration(t, time.Now().UTC(), env.OccurredAt, time.Second)

	var got KitchenStatusPayload
	require.NoError(t, json.Unmarshal(env.Payload, &got))
	assert.Equal(t, "ready", got.Status)
}

func TestPartitionKey(t *testing.T) {
	assert.Equal(t, []byte("abc"), PartitionKey("abc"))
}
