package cart

import "context"

type Item struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type Repo interface {
	List(ctx context.Context, userID string) ([]Item, error)
	// Add inserts the line or increases the existing quantity.
	Add(ctx context.Context, userID string, item Item) error
	SetQuantity(ctx context.Context, userID string, item Item) (bool, error)
	Remove(ctx context.Context, userID string, productID int64) (bool, error)
	Clear(ctx context.Context, userID string) error
}
