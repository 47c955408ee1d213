package postgres

import (
	"context"
	"testing"

	"github.com/NordCoder/Foodcart/internal/domain/cart"
	"github.com/NordCoder/Foodcart/internal/domain/catalog"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepo_ListEmptyIsNotNil(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("FROM user_cart").WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "quantity"}))

	items, err := NewCartRepo(db).List(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCartRepo_AddUpserts(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("ON CONFLICT \\(user_id, product_id\\) DO UPDATE").
		WithArgs("u1", int64(7), 2).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, NewCartRepo(db).Add(context.Background(), "u1", cart.Item{ProductID: 7, Quantity: 2}))
}

func TestCartRepo_SetQuantityAndRemoveReportRows(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("UPDATE user_cart").WithArgs("u1", int64(7), 5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec("DELETE FROM user_cart WHERE user_id = \\$1 AND product_id").WithArgs("u1", int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	repo := NewCartRepo(db)
	ok, err := repo.SetQuantity(context.Background(), "u1", cart.Item{ProductID: 7, Quantity: 5})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Remove(context.Background(), "u1", 7)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProductRepo_ListFilters(t *testing.T) {
	db, mock := newMockDB(t)
	cols := []string{"id", "name", "description", "price", "category", "product_image_url", "popular"}
	mock.ExpectQuery("FROM products").WithArgs("momo", true).
		WillReturnRows(pgxmock.NewRows(cols).AddRow(int64(1), "Chicken Momo", "steamed", 180.0, "momo", "m.png", true))

	out, err := NewProductRepo(db).List(context.Background(), catalog.Filter{Category: "momo", PopularOnly: true})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Chicken Momo", out[0].Name)
	assert.Equal(t, 180.0, out[0].Price)
}
