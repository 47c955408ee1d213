package catalog

import (
	"context"
	"errors"
	"net/http"

	"github.com/NordCoder/Foodcart/internal/apperr"
	"github.com/NordCoder/Foodcart/internal/domain/catalog"
	"github.com/NordCoder/Foodcart/internal/repository/postgres"
)

type Usecase struct {
	products catalog.Repo
}

func NewUsecase(products catalog.Repo) *Usecase { return &Usecase{products: products} }

func (u *Usecase) List(ctx context.Context, f catalog.Filter) ([]*catalog.Product, error) {
	out, err := u.products.List(ctx, f)
	if err != nil {
		return nil, apperr.Wrap(http.StatusInternalServerError, apperr.CodeProductNotFetched, "Products could not be fetched!", err)
	}
	if out == nil {
		out = []*catalog.Product{}
	}
	return out, nil
}

// BySlug resolves a URL slug such as "chicken-momo" to the product named "Chicken Momo".
func (u *Usecase) BySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	p, err := u.products.GetByName(ctx, catalog.NameFromSlug(slug))
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, apperr.New(http.StatusNotFound, apperr.CodeProductNotFound, "Product not found!")
		}
		return nil, apperr.Unexpected(err)
	}
	return p, nil
}
