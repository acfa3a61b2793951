package notify

import (
	"encoding/json"
	"time"
)

type Type string

const (
	TypeNewProduct     Type = "NEW_PRODUCT"
	TypeMaterialUpdate Type = "MATERIAL_UPDATE"
	TypeStockAlert     Type = "STOCK_ALERT"
)

func ValidType(t Type) bool {
	switch t {
	case TypeNewProduct, TypeMaterialUpdate, TypeStockAlert:
		return true
	}
	return false
}

// Notification append-only; satu-satunya mutasi adalah flag is_read,
// dan hanya oleh pemiliknya.
type Notification struct {
	ID        string          `json:"notification_id"`
	UserID    string          `json:"user_id"`
	Type      Type            `json:"type"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data,omitempty"`
	IsRead    bool            `json:"is_read"`
	CreatedAt time.Time       `json:"created_at"`
}
