package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/merahputih/kafepos/internal/events"
)

// Service menyimpan baris notifikasi durable lalu mem-publish event
// notification.created; fan-out ke koneksi live terjadi lewat consumer
// broadcast di tiap instance api, bukan langsung ke hub lokal, supaya
// deployment multi-instance tetap benar.
type Service struct {
	Store     *Store
	Publisher *events.Publisher
	Log       *slog.Logger
}

func (s *Service) CreateForUser(ctx context.Context, userID string, typ Type, title, message string, data json.RawMessage) (Notification, error) {
	n, err := s.Store.Create(ctx, userID, typ, title, message, data)
	if err != nil {
		return Notification{}, err
	}
	s.Publisher.PublishNotificationCreated(events.NotificationCreatedPayload{
		NotificationID: n.ID,
		UserID:         n.UserID,
		Type:           string(n.Type),
		Title:          n.Title,
		Message:        n.Message,
		Data:           n.Data,
		CreatedAt:      n.CreatedAt,
	})
	return n, nil
}

// CreateForRole membuat satu baris per user aktif pemegang role.
func (s *Service) CreateForRole(ctx context.Context, role string, typ Type, title, message string, data json.RawMessage) error {
	users, err := s.Store.ActiveUsersByRole(ctx, role)
	if err != nil {
		return err
	}
	for _, userID := range users {
		if _, err := s.CreateForUser(ctx, userID, typ, title, message, data); err != nil {
			return err
		}
	}
	s.Log.Debug("role notification created", "role", role, "type", typ, "recipients", len(users))
	return nil
}
