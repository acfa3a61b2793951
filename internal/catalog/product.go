package catalog

import (
	"fmt"
	"time"

	"github.com/merahputih/kafepos/internal/core"
)

type Category string

const (
	CategoryKopi    Category = "Kopi"
	CategoryNonKopi Category = "Non-Kopi"
	CategoryMakanan Category = "Makanan"
)

func ValidCategory(c Category) bool {
	switch c {
	case CategoryKopi, CategoryNonKopi, CategoryMakanan:
		return true
	}
	return false
}

type Product struct {
	ID          string    `json:"produk_id"`
	Name        string    `json:"nama_produk"`
	Price       int       `json:"harga"` // rupiah, bulat
	Description string    `json:"deskripsi,omitempty"`
	Category    Category  `json:"jenis_produk"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateProductInput struct {
	Name        string   `json:"nama_produk"`
	Price       int      `json:"harga"`
	Description string   `json:"deskripsi"`
	Category    Category `json:"jenis_produk"`
}

func (in CreateProductInput) Validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: nama_produk is required", core.ErrValidation)
	}
	if in.Price <= 0 {
		return fmt.Errorf("%w: harga must be positive", core.ErrValidation)
	}
	if !ValidCategory(in.Category) {
		return fmt.Errorf("%w: unknown category %q", core.ErrValidation, in.Category)
	}
	return nil
}
