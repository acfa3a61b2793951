package fulfillment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merahputih/kafepos/internal/core"
)

func TestCanTransitionForwardChain(t *testing.T) {
	assert.True(t, CanTransition(StatusWaiting, StatusProcessing))
	assert.True(t, CanTransition(StatusProcessing, StatusReady))
	assert.True(t, CanTransition(StatusReady, StatusCompleted))
}

func TestCanTransitionRejectsSkipsAndBackward(t *testing.T) {
	cases := []struct{ from, to Status }{
		{StatusWaiting, StatusReady}, // lompat
		{StatusWaiting, StatusCompleted},
		{StatusProcessing, StatusCompleted},
		{StatusProcessing, StatusWaiting}, // mundur
		{StatusReady, StatusProcessing},
		{StatusCompleted, StatusWaiting}, // keluar dari terminal
		{StatusCompleted, StatusCompleted},
		{StatusWaiting, StatusWaiting},
	}
	for _, c := range cases {
		assert.False(t, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestNext(t *testing.T) {
	n, ok := Next(StatusWaiting)
	require.True(t, ok)
	assert.Equal(t, StatusProcessing, n)

	_, ok = Next(StatusCompleted)
	assert.False(t, ok)
}

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusWaiting, StatusProcessing, StatusReady, StatusCompleted} {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("cancelled"))
	assert.False(t, ValidStatus(""))
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 5, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		num := NewOrderNumber(now)
		require.Len(t, num, 6)
		assert.Equal(t, "0905", num[:4])
	}
}

func TestCreateOrderInputValidate(t *testing.T) {
	valid := CreateOrderInput{Items: []ItemInput{{ProductID: "p1", Qty: 2, Notes: "less sugar"}}}
	require.NoError(t, valid.Validate())

	assert.ErrorIs(t, CreateOrderInput{}.Validate(), core.ErrValidation)

	in := CreateOrderInput{Items: []ItemInput{{ProductID: "", Qty: 1}}}
	assert.ErrorIs(t, in.Validate(), core.ErrValidation)

	in = CreateOrderInput{Items: []ItemInput{{ProductID: "p1", Qty: 0}}}
	assert.ErrorIs(t, in.Validate(), core.ErrValidation)
}
