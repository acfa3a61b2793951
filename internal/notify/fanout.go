package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/merahputih/kafepos/internal/events"
	"github.com/merahputih/kafepos/internal/kafkax"
)

// FanoutHandler meneruskan event notification.created ke koneksi live lokal.
// Tiap instance api meng-consume topic ini dengan group id unik (broadcast),
// jadi user yang terhubung ke instance mana pun tetap dapat push-nya.
// framer membungkus payload jadi frame wire (SSE) milik transport.
func FanoutHandler(hub *Hub, framer func(json.RawMessage) []byte, log *slog.Logger) kafkax.Handler {
	return func(ctx context.Context, m kafkago.Message) error {
		var env events.Envelope
		if err := json.Unmarshal(m.Value, &env); err != nil {
			log.Warn("bad notification event", "error", err)
			return nil // jangan retry frame rusak
		}
		if env.EventType != events.EventNotificationCreated {
			return nil
		}
		p, err := kafkax.UnwrapPayload[events.NotificationCreatedPayload](env.Payload)
		if err != nil {
			log.Warn("bad notification payload", "error", err)
			return nil
		}
		body, _ := json.Marshal(p)
		hub.Push(p.UserID, framer(body))
		return nil
	}
}
