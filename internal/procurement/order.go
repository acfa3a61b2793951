package procurement

import (
	"fmt"
	"time"

	"github.com/merahputih/kafepos/internal/core"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusDikirim  Status = "Dikirim"
	StatusDiterima Status = "Diterima"
)

// Status monoton maju; Diterima terminal.
var validNext = map[Status]map[Status]bool{
	StatusPending:  {StatusDikirim: true, StatusDiterima: true},
	StatusDikirim:  {StatusDiterima: true},
	StatusDiterima: {},
}

func CanTransition(from, to Status) bool { return validNext[from][to] }

// Order: pemesanan bahan baku ke supplier.
type Order struct {
	ID         string     `json:"pengadaan_id"`
	MaterialID string     `json:"bahan_id"`
	UserID     string     `json:"user_id"`
	Qty        float64    `json:"jumlah"`
	UnitCost   int        `json:"harga"`
	OrderedAt  time.Time  `json:"tanggal_pesan"`
	ReceivedAt *time.Time `json:"tanggal_terima,omitempty"`
	Status     Status     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// denormalisasi untuk tampilan
	MaterialName string `json:"nama_bahan,omitempty"`
	MaterialUnit string `json:"satuan,omitempty"`
	Username     string `json:"username,omitempty"`
}

type CreateOrderInput struct {
	MaterialID string  `json:"bahan_id"`
	Qty        float64 `json:"jumlah"`
	UnitCost   int     `json:"harga"`
}

func (in CreateOrderInput) Validate() error {
	if in.MaterialID == "" {
		return fmt.Errorf("%w: bahan_id is required", core.ErrValidation)
	}
	if in.Qty <= 0 {
		return fmt.Errorf("%w: jumlah must be positive", core.ErrValidation)
	}
	if in.UnitCost < 0 {
		return fmt.Errorf("%w: harga must not be negative", core.ErrValidation)
	}
	return nil
}
