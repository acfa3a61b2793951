package redisx

import "time"

const (
	// Cache status order dapur: kitchen_status:{order_id} -> {"status":"..."}
	KeyKitchenStatus = "kitchen_status:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Throttle stock alert per bahan: alert:stock:{material_id}
	KeyStockAlert = "alert:stock:%s"
)

var (
	TTLStatusCache = 5 * time.Minute
	TTLDedup       = 48 * time.Hour
	TTLStockAlert  = 6 * time.Hour
)
