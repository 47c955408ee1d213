package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NordCoder/Foodcart/internal/domain/catalog"
	"github.com/NordCoder/Foodcart/internal/repository/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProducts struct {
	items   []*catalog.Product
	err     error
	gotName string
	filter  catalog.Filter
}

func (f *fakeProducts) List(_ context.Context, flt catalog.Filter) ([]*catalog.Product, error) {
	f.filter = flt
	return f.items, f.err
}

func (f *fakeProducts) GetByName(_ context.Context, name string) (*catalog.Product, error) {
	f.gotName = name
	for _, p := range f.items {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, postgres.ErrNotFound
}

func (f *fakeProducts) Exists(context.Context, int64) (bool, error) { return true, nil }

func serve(repo *fakeProducts, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Route("/api/product", NewHandler(NewUsecase(repo), zap.NewNop()).Routes)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGetProduct_BySlug(t *testing.T) {
	repo := &fakeProducts{items: []*catalog.Product{{ID: 1, Name: "Chicken Momo", Price: 180}}}

	rec := serve(repo, "/api/product/chicken-momo")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Chicken Momo", repo.gotName)
	assert.Contains(t, rec.Body.String(), `"product_image_url"`)
}

func TestGetProduct_NotFound(t *testing.T) {
	rec := serve(&fakeProducts{}, "/api/product/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"errorCode":"ER_PRODUCT_NOT_FOUND"`)
}

func TestListProducts_Filters(t *testing.T) {
	repo := &fakeProducts{}
	rec := serve(repo, "/api/product?category=momo&popular=true")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, catalog.Filter{Category: "momo", PopularOnly: true}, repo.filter)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestListProducts_DBError(t *testing.T) {
	rec := serve(&fakeProducts{err: errors.New("timeout")}, "/api/product")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"errorCode":"ER_PRODUCT_NOT_FETCHED"`)
}
