package catalog

import (
	"fmt"
	"sort"

	"github.com/merahputih/kafepos/internal/core"
	"github.com/merahputih/kafepos/internal/ledger"
)

// RecipeLine: kebutuhan satu bahan per satu unit produk terjual.
type RecipeLine struct {
	ProductID  string  `json:"produk_id"`
	MaterialID string  `json:"bahan_id"`
	Qty        float64 `json:"jumlah"`
}

type RecipeLineInput struct {
	MaterialID string  `json:"bahan_id"`
	Qty        float64 `json:"jumlah"`
}

func ValidateRecipeLines(lines []RecipeLineInput) error {
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if l.MaterialID == "" {
			return fmt.Errorf("%w: bahan_id is required", core.ErrValidation)
		}
		if l.Qty <= 0 {
			return fmt.Errorf("%w: jumlah must be positive for material %s", core.ErrValidation, l.MaterialID)
		}
		if _, dup := seen[l.MaterialID]; dup {
			return fmt.Errorf("%w: duplicate recipe line for material %s", core.ErrConflict, l.MaterialID)
		}
		seen[l.MaterialID] = struct{}{}
	}
	return nil
}

// RecipeLineDetail: baris resep plus keadaan stok bahan saat dibaca.
type RecipeLineDetail struct {
	MaterialID   string      `json:"bahan_id"`
	MaterialName string      `json:"nama_bahan"`
	Unit         ledger.Unit `json:"satuan"`
	Qty          float64     `json:"jumlah"`
	CurrentStock float64     `json:"stok_saat_ini"`
}

type MaterialShortage struct {
	MaterialID   string      `json:"bahan_id"`
	MaterialName string      `json:"nama_bahan"`
	Unit         ledger.Unit `json:"satuan"`
	Required     float64     `json:"required"`
	Available    float64     `json:"available"`
}

type Availability struct {
	Available bool               `json:"is_available"`
	Missing   []MaterialShortage `json:"missing,omitempty"`
}

// ComputeAvailability menurunkan ketersediaan dari resep dan stok live.
// Produk tanpa resep selalu tersedia. Tidak pernah di-cache: staleness di sini
// berarti kasir bisa menjual stok yang tidak ada.
func ComputeAvailability(lines []RecipeLineDetail) Availability {
	av := Availability{Available: true}
	for _, l := range lines {
		if l.CurrentStock < l.Qty {
			av.Available = false
			av.Missing = append(av.Missing, MaterialShortage{
				MaterialID:   l.MaterialID,
				MaterialName: l.MaterialName,
				Unit:         l.Unit,
				Required:     l.Qty,
				Available:    l.CurrentStock,
			})
		}
	}
	return av
}

// Requirement: total kebutuhan satu bahan.
type Requirement struct {
	MaterialID string
	Qty        float64
}

// Requirements menghitung total kebutuhan bahan untuk qty unit produk,
// terurut naik per bahan_id. Pendebit stok memegang urutan ini saat mengambil
// row lock; transaksi konkuren yang menyentuh bahan yang sama mengantri dalam
// urutan global yang sama, bukan saling tunggu berlawanan arah.
func Requirements(lines []RecipeLine, qty int) []Requirement {
	need := make(map[string]float64, len(lines))
	for _, l := range lines {
		need[l.MaterialID] += l.Qty * float64(qty)
	}
	return sortRequirements(need)
}

// CombineRequirements menggabungkan kebutuhan beberapa produk dalam satu
// order jadi satu daftar terurut; tiap bahan muncul sekali dengan totalnya.
func CombineRequirements(batches ...[]Requirement) []Requirement {
	need := make(map[string]float64)
	for _, batch := range batches {
		for _, r := range batch {
			need[r.MaterialID] += r.Qty
		}
	}
	return sortRequirements(need)
}

func sortRequirements(need map[string]float64) []Requirement {
	out := make([]Requirement, 0, len(need))
	for id, qty := range need {
		out = append(out, Requirement{MaterialID: id, Qty: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MaterialID < out[j].MaterialID })
	return out
}
