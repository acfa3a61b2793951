package alerter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merahputih/kafepos/internal/events"
)

func TestStockMovementsDebited(t *testing.T) {
	payload, err := json.Marshal(events.StockDebitedPayload{
		Source:   "sale",
		SourceID: "t-1",
		Movements: []events.StockMovement{
			{MaterialID: "m1", Delta: -0.04, NewQty: 1.96},
			{MaterialID: "m2", Delta: -60, NewQty: 440},
		},
	})
	require.NoError(t, err)

	env := events.NewEnvelope(events.EventStockDebited, "kafepos-api", "t-1", payload)
	mvs, err := stockMovements(env)
	require.NoError(t, err)
	require.Len(t, mvs, 2)
	assert.Equal(t, "m1", mvs[0].MaterialID)
	assert.Equal(t, "m2", mvs[1].MaterialID)
}

func TestStockMovementsCredited(t *testing.T) {
	payload, err := json.Marshal(events.StockCreditedPayload{
		ProcurementID: "po-1",
		Movement:      events.StockMovement{MaterialID: "m1", Delta: 5, NewQty: 6.96},
	})
	require.NoError(t, err)

	env := events.NewEnvelope(events.EventStockCredited, "kafepos-api", "po-1", payload)
	mvs, err := stockMovements(env)
	require.NoError(t, err)
	require.Len(t, mvs, 1)
	assert.Equal(t, 5.0, mvs[0].Delta)
}

func TestStockMovementsIgnoresOtherEventTypes(t *testing.T) {
	env := events.NewEnvelope(events.EventKitchenStatus, "kafepos-api", "o-1", json.RawMessage(`{}`))
	mvs, err := stockMovements(env)
	require.NoError(t, err)
	assert.Empty(t, mvs)
}

func TestStockMovementsBadPayload(t *testing.T) {
	env := events.NewEnvelope(events.EventStockDebited, "kafepos-api", "t-1", json.RawMessage(`{`))
	_, err := stockMovements(env)
	assert.Error(t, err)
}
