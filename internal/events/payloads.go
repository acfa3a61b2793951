package events

import (
	"encoding/json"
	"time"
)

type StockMovement struct {
	MaterialID string  `json:"material_id"`
	Delta      float64 `json:"delta"`
	NewQty     float64 `json:"new_qty"`
}

// StockCreditedPayload terbit saat penerimaan pengadaan menambah stok.
type StockCreditedPayload struct {
	ProcurementID string        `json:"procurement_id"`
	Movement      StockMovement `json:"movement"`
}

// StockDebitedPayload terbit saat penjualan atau penyelesaian order dapur
// mengurangi stok.
type StockDebitedPayload struct {
	Source    string          `json:"source"` // "sale" | "kitchen"
	SourceID  string          `json:"source_id"`
	Movements []StockMovement `json:"movements"`
}

type KitchenStatusPayload struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
}

type NotificationCreatedPayload struct {
	NotificationID string          `json:"notification_id"`
	UserID         string          `json:"user_id"`
	Type           string          `json:"type"`
	Title          string          `json:"title"`
	Message        string          `json:"message"`
	Data           json.RawMessage `json:"data,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
