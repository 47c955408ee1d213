package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NordCoder/Foodcart/internal/domain/cart"
	"github.com/NordCoder/Foodcart/internal/domain/order"
	"github.com/NordCoder/Foodcart/internal/domain/outbox"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testOrder() *order.Order {
	return &order.Order{
		ID:            "0123456789abcdef0123456789abcdef",
		UserID:        "u1",
		Contact:       order.Contact{FullName: "Ann", Email: "a@b.c", PhoneNumber: "98"},
		Delivery:      order.Delivery{District: "Kathmandu", Address: "Street 1"},
		PaymentMethod: "cod",
		Items:         []cart.Item{{ProductID: 1, Quantity: 2}, {ProductID: 3, Quantity: 1}},
		CreatedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestTransactor_OrderAndOutboxCommitTogether(t *testing.T) {
	db, mock := newMockDB(t)
	tx := NewTransactor(db, zap.NewNop())
	orders := NewOrderRepo(db)
	box := NewOutboxRepo(db)
	o := testOrder()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO order_details").WithArgs(append([]any{o.ID, "u1", int64(1), 2}, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg())...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_details").WithArgs(append([]any{o.ID, "u1", int64(3), 1}, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg())...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO outbox").
		WithArgs("order_placed:"+o.ID, []byte(`{}`), int(outbox.KindOrderPlaced), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := tx.WithTx(context.Background(), func(ctx context.Context) error {
		if err := orders.Create(ctx, o); err != nil {
			return err
		}
		return box.Enqueue(ctx, "order_placed:"+o.ID, outbox.KindOrderPlaced, []byte(`{}`))
	})
	require.NoError(t, err)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	tx := NewTransactor(db, zap.NewNop())
	o := testOrder()
	o.Items = o.Items[:1]

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO order_details").WithArgs(anyArgs(13)...).WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	err := tx.WithTx(context.Background(), func(ctx context.Context) error {
		return NewOrderRepo(db).Create(ctx, o)
	})
	assert.ErrorContains(t, err, "fk violation")
	assert.NotErrorIs(t, err, ErrUnknownReference)
}

func TestOrderRepo_UnknownProductIsUnknownReference(t *testing.T) {
	db, mock := newMockDB(t)
	o := testOrder()
	o.Items = o.Items[:1]

	mock.ExpectExec("INSERT INTO order_details").WithArgs(anyArgs(13)...).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "order_details_product_id_fkey"})

	err := NewOrderRepo(db).Create(context.Background(), o)
	require.ErrorIs(t, err, ErrUnknownReference)
	var fk *ForeignKeyError
	require.ErrorAs(t, err, &fk)
	assert.Equal(t, "order_details_product_id_fkey", fk.Constraint)
}

func anyArgs(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = pgxmock.AnyArg()
	}
	return out
}

func TestOutboxRepo_PickBatch(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()
	mock.ExpectQuery("FOR UPDATE SKIP LOCKED").WithArgs(10, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{
			"idempotency_key", "kind", "data", "status", "created_at", "updated_at", "traceparent", "tracestate", "baggage",
		}).AddRow("k1", 1, []byte(`{"order_id":"o1"}`), "in_progress", now, now, "", "", ""))

	msgs, err := NewOutboxRepo(db).PickBatch(context.Background(), 10, 30*time.Second)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, outbox.KindOrderPlaced, msgs[0].Kind)
	assert.Equal(t, outbox.StatusInProgress, msgs[0].Status)
}

func TestOutboxRepo_MarkSuccessSkipsEmpty(t *testing.T) {
	db, _ := newMockDB(t)
	assert.NoError(t, NewOutboxRepo(db).MarkSuccess(context.Background(), nil))
}
