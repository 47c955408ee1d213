package postgres

import (
	"context"
	"fmt"

	"github.com/NordCoder/Foodcart/internal/domain/cart"
)

var _ cart.Repo = (*CartRepo)(nil)

type CartRepo struct{ db *DB }

func NewCartRepo(db *DB) *CartRepo { return &CartRepo{db: db} }

const (
	qCartList = `
SELECT product_id, quantity
FROM user_cart
WHERE user_id = $1
ORDER BY id;`

	qCartAdd = `
INSERT INTO user_cart (user_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, product_id) DO UPDATE
SET quantity = user_cart.quantity + EXCLUDED.quantity;`

	qCartSet = `
UPDATE user_cart SET quantity = $3
WHERE user_id = $1 AND product_id = $2;`

	qCartRemove = `
DELETE FROM user_cart WHERE user_id = $1 AND product_id = $2;`

	qCartClear = `
DELETE FROM user_cart WHERE user_id = $1;`
)

func (r *CartRepo) List(ctx context.Context, userID string) ([]cart.Item, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.execQueryer(ctx).Query(ctx, qCartList, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart: %w", err)
	}
	defer rows.Close()

	out := []cart.Item{}
	for rows.Next() {
		var it cart.Item
		if err := rows.Scan(&it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (r *CartRepo) Add(ctx context.Context, userID string, item cart.Item) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.execQueryer(ctx).Exec(ctx, qCartAdd, userID, item.ProductID, item.Quantity); err != nil {
		return fmt.Errorf("cart add: %w", err)
	}
	return nil
}

func (r *CartRepo) SetQuantity(ctx context.Context, userID string, item cart.Item) (bool, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.execQueryer(ctx).Exec(ctx, qCartSet, userID, item.ProductID, item.Quantity)
	if err != nil {
		return false, fmt.Errorf("cart set quantity: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *CartRepo) Remove(ctx context.Context, userID string, productID int64) (bool, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.execQueryer(ctx).Exec(ctx, qCartRemove, userID, productID)
	if err != nil {
		return false, fmt.Errorf("cart remove: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *CartRepo) Clear(ctx context.Context, userID string) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.execQueryer(ctx).Exec(ctx, qCartClear, userID); err != nil {
		return fmt.Errorf("cart clear: %w", err)
	}
	return nil
}
