package fulfillment

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/merahputih/kafepos/internal/core"
)

// Order: tiket kerja dapur untuk satu penjualan.
type Order struct {
	ID            string    `json:"order_id"`
	OrderNumber   string    `json:"order_number"`
	TransactionID *string   `json:"transaksi_id,omitempty"`
	CashierID     string    `json:"cashier_id"`
	CashierName   string    `json:"cashier_name,omitempty"`
	Status        Status    `json:"status"`
	Items         []Item    `json:"items"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Item struct {
	ID          string `json:"item_id"`
	OrderID     string `json:"order_id"`
	ProductID   string `json:"produk_id"`
	ProductName string `json:"nama_produk,omitempty"`
	Qty         int    `json:"jumlah"`
	Notes       string `json:"notes,omitempty"`
}

type ItemInput struct {
	ProductID string `json:"produk_id"`
	Qty       int    `json:"jumlah"`
	Notes     string `json:"notes"`
}

type CreateOrderInput struct {
	TransactionID *string     `json:"transaksi_id"`
	Items         []ItemInput `json:"items"`
}

func (in CreateOrderInput) Validate() error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: order needs at least one item", core.ErrValidation)
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

// NewOrderNumber: nomor antrian pendek untuk layar dapur (HHMM + 2 digit
// acak). Human-facing, tidak dijamin unik global; order_id yang unik.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("%02d%02d%02d", now.Hour(), now.Minute(), rand.Intn(100))
}
