package postgres

import (
	"context"
	"fmt"

	"github.com/NordCoder/Foodcart/internal/domain/order"
)

var _ order.Repo = (*OrderRepo)(nil)

type OrderRepo struct{ db *DB }

func NewOrderRepo(db *DB) *OrderRepo { return &OrderRepo{db: db} }

const qOrderLineInsert = `
INSERT INTO order_details (
    order_id, user_id, product_id, quantity,
    full_name, email, phone_number,
    payment_method, district, address, landmark, payment_screenshot, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`

// Create writes one row per cart line. Callers wanting atomicity with other
// writes run it under Transactor.WithTx.
func (r *OrderRepo) Create(ctx context.Context, o *order.Order) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	eq := r.db.execQueryer(ctx)
	for _, it := range o.Items {
		if _, err := eq.Exec(ctx, qOrderLineInsert, orderLineArgs(o, it.ProductID, it.Quantity)...); err != nil {
			if fk := asForeignKey(err); fk != nil {
				return fmt.Errorf("insert order line for product %d: %w", it.ProductID, fk)
			}
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

func orderLineArgs(o *order.Order, productID int64, qty int) []any {
	return []any{
		o.ID, o.UserID, productID, qty,
		o.Contact.FullName, o.Contact.Email, o.Contact.PhoneNumber,
		o.PaymentMethod, o.Delivery.District, o.Delivery.Address, o.Delivery.Landmark,
		o.PaymentScreenshot, o.CreatedAt,
	}
}
