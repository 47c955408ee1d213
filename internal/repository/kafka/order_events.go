package kafka

import (
	"context"

	"github.com/NordCoder/Foodcart/internal/domain/order"
)

var _ order.EventPublisher = (*OrderEventsKafka)(nil)

type OrderEventsKafka struct {
	p *Producer
}

func NewOrderEventsKafka(p *Producer) *OrderEventsKafka { return &OrderEventsKafka{p: p} }

// PublishOrderPlaced keys by order id so every event of one order lands on one partition.
func (e *OrderEventsKafka) PublishOrderPlaced(ctx context.Context, ev order.Placed) error {
	return e.p.PublishJSON(ctx, []byte(ev.OrderID), ev)
}
