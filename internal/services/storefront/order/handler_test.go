package order

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	domainauth "github.com/NordCoder/Foodcart/internal/domain/auth"
	domainorder "github.com/NordCoder/Foodcart/internal/domain/order"
	"github.com/NordCoder/Foodcart/internal/domain/outbox"
	"github.com/NordCoder/Foodcart/internal/domain/user"
	"github.com/NordCoder/Foodcart/internal/repository/postgres"
	storefrontauth "github.com/NordCoder/Foodcart/internal/services/storefront/auth"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUsers struct{}

func (fakeUsers) Create(context.Context, *user.User) error               { return nil }
func (fakeUsers) Exists(context.Context, user.Identifier) (bool, error) { return false, nil }
func (fakeUsers) GetByIdentifier(_ context.Context, id user.Identifier) (*user.User, error) {
	if id.Value() != "a@b.c" {
		return nil, postgres.ErrNotFound
	}
	return &user.User{ID: "u1", Email: id.Value()}, nil
}

// fakeTx buffers writes and only publishes them when fn succeeds.
type fakeTx struct {
	orders *fakeOrders
	box    *fakeBox
}

func (t *fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	orders, msgs := len(t.orders.created), len(t.box.msgs)
	if err := fn(ctx); err != nil {
		t.orders.created = t.orders.created[:orders]
		t.box.msgs = t.box.msgs[:msgs]
		return err
	}
	return nil
}

type fakeOrders struct {
	created []*domainorder.Order
	err     error
}

func (f *fakeOrders) Create(_ context.Context, o *domainorder.Order) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, o)
	return nil
}

type fakeBox struct {
	msgs []outbox.Message
	err  error
}

func (f *fakeBox) Enqueue(_ context.Context, key string, kind outbox.Kind, data []byte) error {
	f.msgs = append(f.msgs, outbox.Message{IdempotencyKey: key, Kind: kind, Data: data})
	return f.err
}
func (f *fakeBox) PickBatch(context.Context, int, time.Duration) ([]outbox.Message, error) {
	return nil, nil
}
func (f *fakeBox) MarkSuccess(context.Context, []string) error { return nil }

type fakeBlobs struct {
	keys []string
	err  error
}

func (f *fakeBlobs) Put(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	_, _ = io.Copy(io.Discard, body)
	f.keys = append(f.keys, key)
	return "http://blobs/" + key, nil
}

type harness struct {
	orders *fakeOrders
	box    *fakeBox
	blobs  *fakeBlobs
	router http.Handler
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{orders: &fakeOrders{}, box: &fakeBox{}, blobs: &fakeBlobs{}}
	uc := NewUsecase(fakeUsers{}, h.orders, h.box, &fakeTx{orders: h.orders, box: h.box}, h.blobs)
	uc.now = func() time.Time { return time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC) }

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := storefrontauth.WithPrincipal(r.Context(), domainauth.Principal{Email: "a@b.c"})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	r.Route("/api/place-order", NewHandler(uc, zap.NewNop()).Routes)
	h.router = r
	return h
}

type upload struct {
	name, contentType string
	body              []byte
}

func placeRequest(t *testing.T, fields map[string]string, file *upload) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="payment_screenshot"; filename=%q`, file.name))
		hdr.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(file.body)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/place-order", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func validFields() map[string]string {
	return map[string]string{
		"full_name":      "Ann Lee",
		"email":          "a@b.c",
		"phone_number":   "9800000000",
		"payment_method": "esewa",
		"district":       "Lalitpur",
		"address":        "Jhamsikhel",
		"landmark":       "near the park",
		"cart_items":     `[{"product_id":1,"quantity":2},{"product_id":4,"quantity":1}]`,
	}
}

func (h *harness) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func TestPlaceOrder_WritesOrderAndOutboxMessage(t *testing.T) {
	h := newHarness(t)
	rec := h.serve(placeRequest(t, validFields(), &upload{name: "Proof.PNG", contentType: "image/png", body: []byte("png")}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Message string `json:"message"`
		Data    struct {
			OrderID string `json:"order_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Order placed successfully", body.Message)
	assert.Len(t, body.Data.OrderID, 32)

	require.Len(t, h.orders.created, 1)
	o := h.orders.created[0]
	assert.Equal(t, body.Data.OrderID, o.ID)
	assert.Equal(t, "u1", o.UserID)
	require.NotNil(t, o.Delivery.Landmark)
	assert.Equal(t, "near the park", *o.Delivery.Landmark)
	require.NotNil(t, o.PaymentScreenshot)

	require.Len(t, h.blobs.keys, 1)
	assert.Regexp(t, `^payments/2025/03/07/[0-9a-f-]{36}\.png$`, h.blobs.keys[0])
	assert.Equal(t, "http://blobs/"+h.blobs.keys[0], *o.PaymentScreenshot)

	require.Len(t, h.box.msgs, 1)
	msg := h.box.msgs[0]
	assert.Equal(t, "order_placed:"+o.ID, msg.IdempotencyKey)
	assert.Equal(t, outbox.KindOrderPlaced, msg.Kind)

	var ev domainorder.Placed
	require.NoError(t, json.Unmarshal(msg.Data, &ev))
	assert.Equal(t, o.ID, ev.OrderID)
	assert.Equal(t, "a@b.c", ev.Email)
	assert.Equal(t, 3, ev.TotalItems)
}

func TestPlaceOrder_WithoutScreenshot(t *testing.T) {
	h := newHarness(t)
	rec := h.serve(placeRequest(t, validFields(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, h.orders.created, 1)
	assert.Nil(t, h.orders.created[0].PaymentScreenshot)
	assert.Empty(t, h.blobs.keys)
}

func TestPlaceOrder_RejectsNonImage(t *testing.T) {
	h := newHarness(t)
	rec := h.serve(placeRequest(t, validFields(), &upload{name: "a.pdf", contentType: "application/pdf", body: []byte("%PDF")}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"errorCode":"ER_FILE_NOT_IMAGE"`)
	assert.Empty(t, h.orders.created)
	assert.Empty(t, h.blobs.keys)
}

func TestPlaceOrder_UploadFailure(t *testing.T) {
	h := newHarness(t)
	h.blobs.err = errors.New("bucket gone")
	rec := h.serve(placeRequest(t, validFields(), &upload{name: "a.jpg", contentType: "image/jpeg", body: []byte("jpg")}))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"errorCode":"ER_FILE_NOT_UPLOADED"`)
	assert.Empty(t, h.orders.created)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	h := newHarness(t)
	fields := validFields()
	fields["cart_items"] = `[]`
	rec := h.serve(placeRequest(t, fields, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	fields["cart_items"] = `not json`
	rec = h.serve(placeRequest(t, fields, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlaceOrder_OutboxFailureRollsBack(t *testing.T) {
	h := newHarness(t)
	h.box.err = errors.New("outbox insert failed")
	rec := h.serve(placeRequest(t, validFields(), nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, h.orders.created)
	assert.Empty(t, h.box.msgs)
}

func TestScreenshotKey(t *testing.T) {
	at := time.Date(2024, 12, 31, 23, 0, 0, 0, time.FixedZone("x", -3*3600))
	assert.Regexp(t, `^payments/2025/01/01/[0-9a-f-]{36}\.jpeg$`, screenshotKey(at, "x.JPEG"))
	assert.Regexp(t, `^payments/2025/01/01/[0-9a-f-]{36}$`, screenshotKey(at, "noext"))
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	h := newHarness(t)
	h.orders.err = fmt.Errorf("insert order line for product 99: %w",
		&postgres.ForeignKeyError{Constraint: "order_details_product_id_fkey"})

	rec := h.serve(placeRequest(t, validFields(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"errorCode":"ER_PRODUCT_DOES_NOT_EXIST"`)
	assert.NotContains(t, rec.Body.String(), "order_details_product_id_fkey")
	assert.Empty(t, h.box.msgs)
}
