package order

import (
	"context"
	"time"

	"github.com/NordCoder/Foodcart/internal/domain/cart"
)

type Contact struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type Delivery struct {
	District string  `json:"district"`
	Address  string  `json:"address"`
	Landmark *string `json:"landmark,omitempty"`
}

type Order struct {
	ID                string
	UserID            string
	Contact           Contact
	Delivery          Delivery
	PaymentMethod     string
	PaymentScreenshot *string
	Items             []cart.Item
	CreatedAt         time.Time
}

func (o *Order) TotalItems() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// Placed is the integration event emitted once an order is committed.
type Placed struct {
	OrderID    string      `json:"order_id"`
	UserID     string      `json:"user_id"`
	Email      string      `json:"email"`
	FullName   string      `json:"full_name"`
	Items      []cart.Item `json:"items"`
	TotalItems int         `json:"total_items"`
	PlacedAt   time.Time   `json:"placed_at"`
}

func (o *Order) Placed() Placed {
	return Placed{
		OrderID:    o.ID,
		UserID:     o.UserID,
		Email:      o.Contact.Email,
		FullName:   o.Contact.FullName,
		Items:      o.Items,
		TotalItems: o.TotalItems(),
		PlacedAt:   o.CreatedAt,
	}
}

type Repo interface {
	Create(ctx context.Context, o *Order) error
}

type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, ev Placed) error
}
