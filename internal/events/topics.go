package events

const (
	TopicStockCredited       = "stock.credited"
	TopicStockDebited        = "stock.debited"
	TopicKitchenStatus       = "kitchen.order.status"
	TopicNotificationCreated = "notification.created"
)

// Partition key = id entitas, supaya event satu entitas tetap berurutan.
func PartitionKey(id string) []byte { return []byte(id) }
