package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/NordCoder/Foodcart/internal/domain/catalog"
	"github.com/jackc/pgx/v5"
)

var _ catalog.Repo = (*ProductRepo)(nil)

type ProductRepo struct{ db *DB }

func NewProductRepo(db *DB) *ProductRepo { return &ProductRepo{db: db} }

const (
	qProductList = `
SELECT id, name, description, price::float8, category, product_image_url, popular
FROM products
WHERE ($1 = '' OR category = $1)
  AND (NOT $2 OR popular)
ORDER BY id;`

	qProductByName = `
SELECT id, name, description, price::float8, category, product_image_url, popular
FROM products
WHERE name = $1;`

	qProductExists = `
SELECT EXISTS (SELECT 1 FROM products WHERE id = $1);`
)

func (r *ProductRepo) List(ctx context.Context, f catalog.Filter) ([]*catalog.Product, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.execQueryer(ctx).Query(ctx, qProductList, f.Category, f.PopularOnly)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []*catalog.Product
	for rows.Next() {
		var p catalog.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (r *ProductRepo) GetByName(ctx context.Context, name string) (*catalog.Product, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var p catalog.Product
	if err := scanProduct(r.db.execQueryer(ctx).QueryRow(ctx, qProductByName, name), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Exists(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var ok bool
	if err := r.db.execQueryer(ctx).QueryRow(ctx, qProductExists, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("product exists: %w", err)
	}
	return ok, nil
}

func scanProduct(row pgx.Row, p *catalog.Product) error {
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.ImageURL, &p.Popular); err != nil {
		return fmt.Errorf("scan product: %w", err)
	}
	return nil
}
