package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sohamkakraa/TabScape/internal/core"
)

func (r *SQLiteRepository) CreateNotification(ctx context.Context, userID string, n core.Notification) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, user_id, notif_type, title, message) VALUES (?, ?, ?, ?, ?)`,
		n.ID, userID, n.Type, n.Title, n.Message)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]core.Notification, error) {
	query := `SELECT id, notif_type, title, message, created_at, read_at
	          FROM notifications WHERE user_id = ?`
	if unreadOnly {
		query += ` AND read_at IS NULL`
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifs []core.Notification
	for rows.Next() {
		var n core.Notification
		var readAt sql.NullTime
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &n.CreatedAt, &readAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		if readAt.Valid {
			t := readAt.Time
			n.ReadAt = &t
		}
		notifs = append(notifs, n)
	}
	return notifs, rows.Err()
}

func (r *SQLiteRepository) MarkNotificationRead(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read_at = ? WHERE id = ? AND user_id = ? AND read_at IS NULL`,
		time.Now(), id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark notification read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
