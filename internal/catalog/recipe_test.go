package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merahputih/kafepos/internal/core"
	"github.com/merahputih/kafepos/internal/ledger"
)

func TestComputeAvailabilityEmptyRecipe(t *testing.T) {
	av := ComputeAvailability(nil)
	assert.True(t, av.Available)
	assert.Empty(t, av.Missing)
}

func TestComputeAvailabilitySatisfied(t *testing.T) {
	av := ComputeAvailability([]RecipeLineDetail{
		{MaterialID: "m1", Qty: 0.02, CurrentStock: 0.02},
		{MaterialID: "m2", Qty: 1, CurrentStock: 10},
	})
	assert.True(t, av.Available)
	assert.Empty(t, av.Missing)
}

func TestComputeAvailabilityShortage(t *testing.T) {
	av := ComputeAvailability([]RecipeLineDetail{
		{MaterialID: "m1", MaterialName: "Kopi Arabika", Unit: ledger.UnitGram, Qty: 20, CurrentStock: 5},
		{MaterialID: "m2", MaterialName: "Susu", Unit: ledger.UnitMl, Qty: 100, CurrentStock: 500},
	})
	assert.False(t, av.Available)
	require.Len(t, av.Missing, 1)
	assert.Equal(t, "m1", av.Missing[0].MaterialID)
	assert.Equal(t, 20.0, av.Missing[0].Required)
	assert.Equal(t, 5.0, av.Missing[0].Available)
}

func TestRequirements(t *testing.T) {
	lines := []RecipeLine{
		{ProductID: "p", MaterialID: "m2", Qty: 30},
		{ProductID: "p", MaterialID: "m1", Qty: 0.02},
		{ProductID: "p", MaterialID: "m2", Qty: 5},
	}
	req := Requirements(lines, 2)
	require.Len(t, req, 2)
	// terurut naik per bahan_id, duplikat terjumlah
	assert.Equal(t, "m1", req[0].MaterialID)
	assert.InDelta(t, 0.04, req[0].Qty, 1e-9)
	assert.Equal(t, "m2", req[1].MaterialID)
	assert.InDelta(t, 70, req[1].Qty, 1e-9)

	assert.Empty(t, Requirements(nil, 5))
}

func TestCombineRequirements(t *testing.T) {
	a := Requirements([]RecipeLine{
		{MaterialID: "m3", Qty: 1},
		{MaterialID: "m1", Qty: 0.5},
	}, 2)
	b := Requirements([]RecipeLine{
		{MaterialID: "m2", Qty: 10},
		{MaterialID: "m1", Qty: 0.5},
	}, 1)

	combined := CombineRequirements(a, b)
	require.Len(t, combined, 3)
	assert.Equal(t, Requirement{MaterialID: "m1", Qty: 1.5}, combined[0])
	assert.Equal(t, Requirement{MaterialID: "m2", Qty: 10}, combined[1])
	assert.Equal(t, Requirement{MaterialID: "m3", Qty: 2}, combined[2])

	assert.Empty(t, CombineRequirements())
}

// Dua order yang menyentuh bahan sama harus mendebit dalam urutan identik,
// apa pun urutan item dan baris resepnya.
func TestRequirementsOrderIsDeterministic(t *testing.T) {
	forward := []RecipeLine{
		{MaterialID: "m1", Qty: 1},
		{MaterialID: "m2", Qty: 1},
		{MaterialID: "m3", Qty: 1},
	}
	reversed := []RecipeLine{
		{MaterialID: "m3", Qty: 1},
		{MaterialID: "m2", Qty: 1},
		{MaterialID: "m1", Qty: 1},
	}
	assert.Equal(t, Requirements(forward, 1), Requirements(reversed, 1))

	batchA := CombineRequirements(Requirements(forward, 1), Requirements(reversed, 2))
	batchB := CombineRequirements(Requirements(reversed, 2), Requirements(forward, 1))
	assert.Equal(t, batchA, batchB)
	for i := 1; i < len(batchA); i++ {
		assert.Less(t, batchA[i-1].MaterialID, batchA[i].MaterialID)
	}
}

func TestValidateRecipeLines(t *testing.T) {
	require.NoError(t, ValidateRecipeLines(nil))
	require.NoError(t, ValidateRecipeLines([]RecipeLineInput{
		{MaterialID: "m1", Qty: 0.5},
		{MaterialID: "m2", Qty: 2},
	}))

	err := ValidateRecipeLines([]RecipeLineInput{{MaterialID: "", Qty: 1}})
	assert.ErrorIs(t, err, core.ErrValidation)

	err = ValidateRecipeLines([]RecipeLineInput{{MaterialID: "m1", Qty: 0}})
	assert.ErrorIs(t, err, core.ErrValidation)

	err = ValidateRecipeLines([]RecipeLineInput{
		{MaterialID: "m1", Qty: 1},
		{MaterialID: "m1", Qty: 2},
	})
	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestCreateProductInputValidate(t *testing.T) {
	valid := CreateProductInput{Name: "Kopi Susu", Price: 18000, Category: CategoryKopi}
	require.NoError(t, valid.Validate())

	in := valid
	in.Name = ""
	assert.ErrorIs(t, in.Validate(), core.ErrValidation)

	in = valid
	in.Price = 0
	assert.ErrorIs(t, in.Validate(), core.ErrValidation)

	in = valid
	in.Category = "Minuman Keras"
	assert.ErrorIs(t, in.Validate(), core.ErrValidation)
}
