package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merahputih/kafepos/internal/core"
)

func TestComputeTotal(t *testing.T) {
	items := []Item{
		{ProductID: "p1", Qty: 1, UnitPrice: 18000},
		{ProductID: "p2", Qty: 3, UnitPrice: 22000},
	}
	assert.Equal(t, 84000, ComputeTotal(items))
	assert.Equal(t, 0, ComputeTotal(nil))
}

func TestItemSubtotal(t *testing.T) {
	assert.Equal(t, 66000, Item{Qty: 3, UnitPrice: 22000}.Subtotal())
}

func TestRecordSaleInputValidate(t *testing.T) {
	valid := RecordSaleInput{Items: []ItemInput{{ProductID: "p1", Qty: 2}}}
	require.NoError(t, valid.Validate())

	assert.ErrorIs(t, RecordSaleInput{}.Validate(), core.ErrValidation)

	in := RecordSaleInput{Items: []ItemInput{{ProductID: "", Qty: 1}}}
	assert.ErrorIs(t, in.Validate(), core.ErrValidation)

	in = RecordSaleInput{Items: []ItemInput{{ProductID: "p1", Qty: -1}}}
	assert.ErrorIs(t, in.Validate(), core.ErrValidation)
}
