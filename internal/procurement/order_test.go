package procurement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merahputih/kafepos/internal/core"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusDikirim, true},
		{StatusPending, StatusDiterima, true}, // terima tanpa tahap kirim ditoleransi
		{StatusDikirim, StatusDiterima, true},
		{StatusDikirim, StatusPending, false},
		{StatusDiterima, StatusPending, false},
		{StatusDiterima, StatusDikirim, false},
		{StatusDiterima, StatusDiterima, false},
		{StatusPending, StatusPending, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestCreateOrderInputValidate(t *testing.T) {
	valid := CreateOrderInput{MaterialID: "m1", Qty: 5, UnitCost: 25000}
	require.NoError(t, valid.Validate())

	in := valid
	in.MaterialID = ""
	assert.ErrorIs(t, in.Validate(), core.ErrValidation)

	in = valid
	in.Qty = 0
	assert.ErrorIs(t, in.Validate(), core.ErrValidation)

	in = valid
	in.UnitCost = -1
	assert.ErrorIs(t, in.Validate(), core.ErrValidation)
}
