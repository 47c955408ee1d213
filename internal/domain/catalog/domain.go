package catalog

import (
	"context"
	"strings"
)

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"product_image_url"`
	Popular     bool    `json:"popular"`
}

type Filter struct {
	Category    string
	PopularOnly bool
}

type Repo interface {
	List(ctx context.Context, f Filter) ([]*Product, error)
	GetByName(ctx context.Context, name string) (*Product, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// NameFromSlug turns "chicken-momo" into "Chicken Momo".
func NameFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
