package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/NordCoder/Foodcart/internal/domain/notification"
)

var _ notification.Repo = (*NotificationRepoImpl)(nil)

type NotificationRepoImpl struct{ db *DB }

func NewNotificationRepo(db *DB) *NotificationRepoImpl { return &NotificationRepoImpl{db: db} }

const (
	qNotifInsert = `
INSERT INTO order_notifications (order_id, user_id, type, sent_at, payload)
VALUES ($1, $2, $3, COALESCE($4, now()), $5)
ON CONFLICT (order_id, type) DO NOTHING
RETURNING id, sent_at;
`
	qNotifSent = `
SELECT EXISTS (SELECT 1 FROM order_notifications WHERE order_id = $1 AND type = $2);
`
)

// Create records a delivered notification. A duplicate (order, type) pair is a no-op
// and leaves n.ID zero.
func (r *NotificationRepoImpl) Create(ctx context.Context, n *notification.Notification) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.execQueryer(ctx).Query(ctx, qNotifInsert,
		n.OrderID,
		n.UserID,
		n.Type,
		nullTime(n.SentAt),
		n.Payload,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&n.ID, &n.SentAt); err != nil {
			return fmt.Errorf("scan notification: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepoImpl) Sent(ctx context.Context, orderID, typ string) (bool, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var ok bool
	if err := r.db.execQueryer(ctx).QueryRow(ctx, qNotifSent, orderID, typ).Scan(&ok); err != nil {
		return false, fmt.Errorf("notification sent: %w", err)
	}
	return ok, nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
