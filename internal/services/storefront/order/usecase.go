package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/NordCoder/Foodcart/internal/apperr"
	domainauth "github.com/NordCoder/Foodcart/internal/domain/auth"
	"github.com/NordCoder/Foodcart/internal/domain/cart"
	domainorder "github.com/NordCoder/Foodcart/internal/domain/order"
	"github.com/NordCoder/Foodcart/internal/domain/outbox"
	"github.com/NordCoder/Foodcart/internal/domain/user"
	"github.com/NordCoder/Foodcart/internal/repository/postgres"
	storefrontcart "github.com/NordCoder/Foodcart/internal/services/storefront/cart"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const MaxScreenshotSize = 5 << 20

type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

// Screenshot is an uploaded payment proof that has not been stored yet.
type Screenshot struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type PlaceInput struct {
	Contact       domainorder.Contact
	Delivery      domainorder.Delivery
	PaymentMethod string
	Items         []cart.Item
	Screenshot    *Screenshot
}

type Usecase struct {
	users  user.Repo
	orders domainorder.Repo
	box    outbox.Repository
	tx     postgres.Transactor
	blobs  BlobStore
	now    func() time.Time
}

func NewUsecase(users user.Repo, orders domainorder.Repo, box outbox.Repository, tx postgres.Transactor, blobs BlobStore) *Usecase {
	return &Usecase{users: users, orders: orders, box: box, tx: tx, blobs: blobs, now: time.Now}
}

func (in *PlaceInput) validate() error {
	in.Contact.FullName = strings.TrimSpace(in.Contact.FullName)
	in.Contact.Email = strings.TrimSpace(in.Contact.Email)
	in.Contact.PhoneNumber = strings.TrimSpace(in.Contact.PhoneNumber)
	switch {
	case in.Contact.FullName == "":
		return apperr.BadRequest("full_name is required!")
	case in.Contact.Email == "":
		return apperr.BadRequest("email is required!")
	case in.Contact.PhoneNumber == "":
		return apperr.BadRequest("phone_number is required!")
	case in.PaymentMethod == "":
		return apperr.BadRequest("payment_method is required!")
	case in.Delivery.District == "" || in.Delivery.Address == "":
		return apperr.BadRequest("district and address are required!")
	case len(in.Items) == 0:
		return apperr.BadRequest("Cart is empty!")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 || it.Quantity <= 0 {
			return apperr.BadRequest("cart_items must have positive product_id and quantity!")
		}
	}
	if s := in.Screenshot; s != nil {
		if !strings.HasPrefix(s.ContentType, "image/") {
			return apperr.New(http.StatusBadRequest, apperr.CodeFileNotImage, "File is not an image!")
		}
		if s.Size > MaxScreenshotSize {
			return apperr.BadRequest("File is larger than 5 MiB!")
		}
	}
	return nil
}

func screenshotKey(at time.Time, filename string) string {
	return fmt.Sprintf("payments/%s/%s%s",
		at.UTC().Format("2006/01/02"), uuid.NewString(), strings.ToLower(path.Ext(filename)))
}

// Place stores the screenshot, then writes the order lines and the
// order_placed outbox message in a single transaction.
func (u *Usecase) Place(ctx context.Context, p domainauth.Principal, in PlaceInput) (string, error) {
	ctx, span := otel.Tracer("storefront/order").Start(ctx, "order.Place")
	defer span.End()

	if err := in.validate(); err != nil {
		return "", err
	}
	owner, err := storefrontcart.ResolveUser(ctx, u.users, p)
	if err != nil {
		return "", err
	}

	now := u.now()
	o := &domainorder.Order{
		ID:            strings.ReplaceAll(uuid.NewString(), "-", ""),
		UserID:        owner.ID,
		Contact:       in.Contact,
		Delivery:      in.Delivery,
		PaymentMethod: in.PaymentMethod,
		Items:         in.Items,
		CreatedAt:     now,
	}
	span.SetAttributes(attribute.String("order.id", o.ID), attribute.Int("order.total_items", o.TotalItems()))

	if s := in.Screenshot; s != nil {
		url, err := u.blobs.Put(ctx, screenshotKey(now, s.Filename), s.ContentType, s.Body, s.Size)
		if err != nil {
			return "", apperr.Wrap(http.StatusInternalServerError, apperr.CodeFileNotUploaded, "File could not be uploaded!", err)
		}
		o.PaymentScreenshot = &url
	}

	payload, err := json.Marshal(o.Placed())
	if err != nil {
		return "", apperr.Unexpected(err)
	}
	err = u.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := u.orders.Create(ctx, o); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return u.box.Enqueue(ctx, outbox.KindOrderPlaced.String()+":"+o.ID, outbox.KindOrderPlaced, payload)
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, postgres.ErrUnknownReference) {
			return "", apperr.Wrap(http.StatusNotFound, apperr.CodeProductDoesNotExist, "Product does not exist!", err)
		}
		return "", apperr.Unexpected(err)
	}
	return o.ID, nil
}
