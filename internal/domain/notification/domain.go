package notification

import (
	"context"
	"time"
)

const TypeOrderConfirmation = "order_confirmation"

type Notification struct {
	ID      int64     `json:"id"`
	OrderID string    `json:"order_id"`
	UserID  string    `json:"user_id"`
	Type    string    `json:"type"`
	SentAt  time.Time `json:"sent_at"`
	Payload string    `json:"payload"`
}

type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Clock interface {
	Now() time.Time
}
