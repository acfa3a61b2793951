package events

import (
	kafkago "github.com/segmentio/kafka-go"

	"github.com/merahputih/kafepos/internal/kafkax"
)

// Publisher membungkus satu producer per topic. Semua publish terjadi
// SETELAH commit transaksi database; event adalah fakta, bukan intent.
type Publisher struct {
	StockCredited *kafkax.Producer
	StockDebited  *kafkax.Producer
	KitchenStatus *kafkax.Producer
	Notifications *kafkax.Producer
	ServiceName   string
}

func (p *Publisher) publish(prod *kafkax.Producer, eventType, key string, payload any) {
	if prod == nil {
		return
	}
	env := NewEnvelope(eventType, p.ServiceName, key, kafkax.MustMarshal(payload))
	prod.Publish(PartitionKey(key), kafkax.MustMarshal(env),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (p *Publisher) PublishStockCredited(procurementID string, mv StockMovement) {
	p.publish(p.StockCredited, EventStockCredited, procurementID, StockCreditedPayload{
		ProcurementID: procurementID,
		Movement:      mv,
	})
}

func (p *Publisher) PublishStockDebited(source, sourceID string, mvs []StockMovement) {
	if len(mvs) == 0 {
		return
	}
	p.publish(p.StockDebited, EventStockDebited, sourceID, StockDebitedPayload{
		Source:    source,
		SourceID:  sourceID,
		Movements: mvs,
	})
}

func (p *Publisher) PublishKitchenStatus(orderID, orderNumber, status string) {
	p.publish(p.KitchenStatus, EventKitchenStatus, orderID, KitchenStatusPayload{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		Status:      status,
	})
}

func (p *Publisher) PublishNotificationCreated(n NotificationCreatedPayload) {
	p.publish(p.Notifications, EventNotificationCreated, n.UserID, n)
}
