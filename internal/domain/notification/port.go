package notification

import "context"

type Repo interface {
	Create(ctx context.Context, n *Notification) error
	// Sent reports whether a notification of this type already went out for the order.
	Sent(ctx context.Context, orderID, typ string) (bool, error)
}
