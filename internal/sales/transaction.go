package sales

import (
	"fmt"
	"time"

	"github.com/merahputih/kafepos/internal/core"
)

// Transaction: catatan komersial penjualan, immutable setelah dibuat.
// Harga satuan dibekukan saat transaksi; perubahan harga produk belakangan
// tidak mengubah total historis.
type Transaction struct {
	ID        string    `json:"transaksi_id"`
	CashierID string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Total     int       `json:"total_harga"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"tanggal"`
}

type Item struct {
	ID            string `json:"detail_id"`
	TransactionID string `json:"transaksi_id"`
	ProductID     string `json:"produk_id"`
	ProductName   string `json:"nama_produk,omitempty"`
	Qty           int    `json:"jumlah"`
	UnitPrice     int    `json:"harga_satuan"`
}

func (it Item) Subtotal() int { return it.UnitPrice * it.Qty }

type ItemInput struct {
	ProductID string `json:"produk_id"`
	Qty       int    `json:"jumlah"`
	Notes     string `json:"notes"`
}

type RecordSaleInput struct {
	Items []ItemInput `json:"items"`
	// SpawnKitchenOrder: checkout juga membuat tiket dapur yang terhubung.
	SpawnKitchenOrder bool `json:"create_kitchen_order"`
}

func (in RecordSaleInput) Validate() error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: sale needs at least one item", core.ErrValidation)
	}
	for _, it := range in.Items {
		if it.ProductID == "" {
			return fmt.Errorf("%w: produk_id is required", core.ErrValidation)
		}
		if it.Qty <= 0 {
			return fmt.Errorf("%w: jumlah must be positive for product %s", core.ErrValidation, it.ProductID)
		}
	}
	return nil
}

// ComputeTotal menjumlahkan harga beku x jumlah.
func ComputeTotal(items []Item) int {
	total := 0
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}
