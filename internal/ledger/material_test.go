package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merahputih/kafepos/internal/core"
)

func TestMaterialStatus(t *testing.T) {
	cases := []struct {
		name    string
		current float64
		minimum float64
		want    StockStatus
	}{
		{"above minimum", 5, 2, StatusSafe},
		{"exactly minimum", 2, 2, StatusSafe},
		{"below minimum", 1.9, 2, StatusLow},
		{"zero stock zero minimum", 0, 0, StatusSafe},
		{"zero stock positive minimum", 0, 0.5, StatusLow},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := Material{CurrentStock: c.current, MinimumStock: c.minimum}
			assert.Equal(t, c.want, m.Status())
			assert.Equal(t, c.want == StatusLow, m.Low())
		})
	}
}

func TestValidUnit(t *testing.T) {
	for _, u := range []Unit{UnitKg, UnitLiter, UnitPcs, UnitGram, UnitMl} {
		assert.True(t, ValidUnit(u), string(u))
	}
	assert.False(t, ValidUnit("ton"))
	assert.False(t, ValidUnit(""))
}

func TestCreateMaterialInputValidate(t *testing.T) {
	valid := CreateMaterialInput{Name: "Susu", CurrentStock: 3, MinimumStock: 1, Unit: UnitLiter}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name string
		mut  func(*CreateMaterialInput)
	}{
		{"missing name", func(in *CreateMaterialInput) { in.Name = "" }},
		{"unknown unit", func(in *CreateMaterialInput) { in.Unit = "karung" }},
		{"negative stock", func(in *CreateMaterialInput) { in.CurrentStock = -1 }},
		{"negative minimum", func(in *CreateMaterialInput) { in.MinimumStock = -0.1 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := valid
			c.mut(&in)
			err := in.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrValidation)
		})
	}
}

func TestUpdateMaterialInputValidate(t *testing.T) {
	name := "Gula"
	min := 2.0
	unit := UnitKg
	require.NoError(t, UpdateMaterialInput{Name: &name, MinimumStock: &min, Unit: &unit}.Validate())
	require.NoError(t, UpdateMaterialInput{}.Validate())

	empty := ""
	assert.ErrorIs(t, UpdateMaterialInput{Name: &empty}.Validate(), core.ErrValidation)
	bad := Unit("lusin")
	assert.ErrorIs(t, UpdateMaterialInput{Unit: &bad}.Validate(), core.ErrValidation)
	neg := -1.0
	assert.ErrorIs(t, UpdateMaterialInput{MinimumStock: &neg}.Validate(), core.ErrValidation)
}
