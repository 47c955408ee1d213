package notifier

import (
	"context"
	"errors"

	"github.com/NordCoder/Foodcart/internal/domain/order"
	kafkax "github.com/NordCoder/Foodcart/internal/repository/kafka"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	mConsumed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_notifier_messages_consumed_total",
		Help: "OrderPlaced events consumed",
	})
	mSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_notifier_messages_skipped_total",
		Help: "OrderPlaced events dropped as invalid",
	})
	mSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_notifier_emails_sent_total",
		Help: "Confirmation emails handled",
	})
	mErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_notifier_errors_total",
		Help: "Errors",
	})
)

type Subscriber interface {
	Consume(ctx context.Context, h kafkax.Handler) error
}

type Controller struct {
	Log *zap.Logger
	Sub Subscriber
	UC  *Handler
}

func (c *Controller) handle(ctx context.Context, _ []byte, ev order.Placed) error {
	mConsumed.Inc()
	if ev.OrderID == "" || ev.Email == "" {
		mSkipped.Inc()
		c.Log.Warn("order-placed: invalid event",
			zap.String("order_id", ev.OrderID),
			zap.Bool("has_email", ev.Email != ""),
		)
		return nil
	}
	if err := c.UC.HandleOrderPlaced(ctx, ev); err != nil {
		mErrors.Inc()
		return err
	}
	mSent.Inc()
	return nil
}

func (c *Controller) Run(ctx context.Context) error {
	err := c.Sub.Consume(ctx, kafkax.JSONHandler(c.handle))
	if err != nil && !errors.Is(err, context.Canceled) {
		c.Log.Warn("kafka consume", zap.Error(err))
		return err
	}
	return ctx.Err()
}
