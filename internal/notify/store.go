package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/merahputih/kafepos/internal/core"
)

type Store struct{ DB *pgxpool.Pool }

const notifCols = `notification_id, user_id, type, title, message, data, is_read, created_at`

func scanNotification(row pgx.Row) (Notification, error) {
	var n Notification
	var data []byte
	err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &data, &n.IsRead, &n.CreatedAt)
	if len(data) > 0 {
		n.Data = json.RawMessage(data)
	}
	return n, err
}

func (s *Store) Create(ctx context.Context, userID string, typ Type, title, message string, data json.RawMessage) (Notification, error) {
	if !ValidType(typ) {
		return Notification{}, fmt.Errorf("%w: unknown notification type %q", core.ErrValidation, typ)
	}
	id := uuid.NewString()
	_, err := s.DB.Exec(ctx, `
		INSERT INTO notifications(notification_id, user_id, type, title, message, data)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		id, userID, typ, title, message, data)
	if err != nil {
		return Notification{}, err
	}
	return s.Get(ctx, id)
}

func (s *Store) Get(ctx context.Context, id string) (Notification, error) {
	n, err := scanNotification(s.DB.QueryRow(ctx,
		`SELECT `+notifCols+` FROM notifications WHERE notification_id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Notification{}, fmt.Errorf("%w: notification %s", core.ErrNotFound, id)
	}
	return n, err
}

func (s *Store) ByUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error) {
	sql := `SELECT ` + notifCols + ` FROM notifications WHERE user_id=$1`
	if unreadOnly {
		sql += ` AND is_read = FALSE`
	}
	sql += ` ORDER BY created_at DESC LIMIT 50`

	rows, err := s.DB.Query(ctx, sql, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) UnreadCount(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id=$1 AND is_read = FALSE`, userID).Scan(&n)
	return n, err
}

// MarkRead menandai notifikasi terbaca. Id yang bukan milik userID ditolak
// seluruhnya; caller tidak boleh menandai notifikasi orang lain.
func (s *Store) MarkRead(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	var foreign int
	err := s.DB.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE notification_id = ANY($1) AND user_id <> $2`, ids, userID).Scan(&foreign)
	if err != nil {
		return err
	}
	if foreign > 0 {
		return fmt.Errorf("%w: notification belongs to another user", core.ErrUnauthorized)
	}
	_, err = s.DB.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE notification_id = ANY($1) AND user_id = $2`, ids, userID)
	return err
}

// ActiveUsersByRole mengembalikan user aktif pemegang role.
func (s *Store) ActiveUsersByRole(ctx context.Context, role string) ([]string, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT u.user_id
		FROM users u
		JOIN roles r ON r.role_id = u.role_id
		WHERE r.nama_role = $1 AND u.status = 'Aktif'`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
