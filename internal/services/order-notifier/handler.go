package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NordCoder/Foodcart/internal/domain/notification"
	"github.com/NordCoder/Foodcart/internal/domain/order"
	"github.com/NordCoder/Foodcart/internal/obs"
	"github.com/NordCoder/Foodcart/internal/obs/retry"
	"go.uber.org/zap"
)

type Handler struct {
	Store notification.Repo
	Out   notification.EmailSender
	Clock notification.Clock
	Retry retry.Policy
	Log   *zap.Logger
}

func confirmation(ev order.Placed) (subject, body string) {
	subject = fmt.Sprintf("Order %s confirmed", shortID(ev.OrderID))

	var b strings.Builder
	name := ev.FullName
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "Hello %s!\n\n", name)
	fmt.Fprintf(&b, "We received your order %s placed at %s.\n\n", ev.OrderID, ev.PlacedAt.UTC().Format(time.RFC1123))
	for _, it := range ev.Items {
		fmt.Fprintf(&b, "  product #%d x %d\n", it.ProductID, it.Quantity)
	}
	fmt.Fprintf(&b, "\nTotal items: %d\n\nThank you for ordering with Foodcart.", ev.TotalItems)
	return subject, b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// HandleOrderPlaced sends one confirmation per order. Redelivered events for an
// order that was already notified are dropped.
func (h *Handler) HandleOrderPlaced(ctx context.Context, ev order.Placed) error {
	log := obs.WithTrace(ctx, h.Log).With(zap.String("order_id", ev.OrderID))

	sent, err := h.Store.Sent(ctx, ev.OrderID, notification.TypeOrderConfirmation)
	if err != nil {
		return fmt.Errorf("check notification: %w", err)
	}
	if sent {
		log.Info("confirmation already sent, skipping")
		return nil
	}

	subject, body := confirmation(ev)
	err = retry.Do(ctx, func() error {
		return h.Out.Send(ctx, ev.Email, subject, body)
	}, h.Retry)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	if err := h.Store.Create(ctx, &notification.Notification{
		OrderID: ev.OrderID,
		UserID:  ev.UserID,
		Type:    notification.TypeOrderConfirmation,
		SentAt:  h.Clock.Now().UTC(),
		Payload: body,
	}); err != nil {
		log.Warn("record notification", zap.Error(err))
	}
	return nil
}
