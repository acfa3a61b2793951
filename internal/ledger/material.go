package ledger

import (
	"fmt"
	"time"

	"github.com/merahputih/kafepos/internal/core"
)

type Unit string

const (
	UnitKg    Unit = "kg"
	UnitLiter Unit = "liter"
	UnitPcs   Unit = "pcs"
	UnitGram  Unit = "gram"
	UnitMl    Unit = "ml"
)

func ValidUnit(u Unit) bool {
	switch u {
	case UnitKg, UnitLiter, UnitPcs, UnitGram, UnitMl:
		return true
	}
	return false
}

type StockStatus string

const (
	StatusSafe StockStatus = "Aman"
	StatusLow  StockStatus = "Stok Rendah"
)

type Material struct {
	ID           string    `json:"bahan_id"`
	Name         string    `json:"nama_bahan"`
	CurrentStock float64   `json:"stok_saat_ini"`
	MinimumStock float64   `json:"stok_minimum"`
	Unit         Unit      `json:"satuan"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Low: stok saat ini di bawah ambang minimum.
func (m Material) Low() bool { return m.CurrentStock < m.MinimumStock }

func (m Material) Status() StockStatus {
	if m.Low() {
		return StatusLow
	}
	return StatusSafe
}

type CreateMaterialInput struct {
	Name         string  `json:"nama_bahan"`
	CurrentStock float64 `json:"stok_saat_ini"`
	MinimumStock float64 `json:"stok_minimum"`
	Unit         Unit    `json:"satuan"`
}

func (in CreateMaterialInput) Validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: nama_bahan is required", core.ErrValidation)
	}
	if !ValidUnit(in.Unit) {
		return fmt.Errorf("%w: unknown unit %q", core.ErrValidation, in.Unit)
	}
	if in.CurrentStock < 0 {
		return fmt.Errorf("%w: stok_saat_ini must not be negative", core.ErrValidation)
	}
	if in.MinimumStock < 0 {
		return fmt.Errorf("%w: stok_minimum must not be negative", core.ErrValidation)
	}
	return nil
}

type UpdateMaterialInput struct {
	Name         *string  `json:"nama_bahan"`
	MinimumStock *float64 `json:"stok_minimum"`
	Unit         *Unit    `json:"satuan"`
}

func (in UpdateMaterialInput) Validate() error {
	if in.Name != nil && *in.Name == "" {
		return fmt.Errorf("%w: nama_bahan must not be empty", core.ErrValidation)
	}
	if in.Unit != nil && !ValidUnit(*in.Unit) {
		return fmt.Errorf("%w: unknown unit %q", core.ErrValidation, *in.Unit)
	}
	if in.MinimumStock != nil && *in.MinimumStock < 0 {
		return fmt.Errorf("%w: stok_minimum must not be negative", core.ErrValidation)
	}
	return nil
}
