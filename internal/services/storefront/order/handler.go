package order

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/NordCoder/Foodcart/internal/apperr"
	"github.com/NordCoder/Foodcart/internal/domain/cart"
	domainorder "github.com/NordCoder/Foodcart/internal/domain/order"
	"github.com/NordCoder/Foodcart/internal/httpx"
	storefrontauth "github.com/NordCoder/Foodcart/internal/services/storefront/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	formMemory  = 8 << 20
	maxFormBody = MaxScreenshotSize + 1<<20
)

type Handler struct {
	uc  *Usecase
	log *zap.Logger
}

func NewHandler(uc *Usecase, log *zap.Logger) *Handler { return &Handler{uc: uc, log: log} }

// Routes expects to be mounted behind the auth gate.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.place)
}

type placeResponse struct {
	OrderID string `json:"order_id"`
}

func (h *Handler) place(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, _ := storefrontauth.PrincipalFrom(ctx)

	in, cleanup, err := readPlaceForm(w, r)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	id, err := h.uc.Place(ctx, p, in)
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	httpx.WriteOK(w, "Order placed successfully", placeResponse{OrderID: id})
}

func readPlaceForm(w http.ResponseWriter, r *http.Request) (PlaceInput, func(), error) {
	var in PlaceInput
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if err := r.ParseMultipartForm(formMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return in, nil, apperr.BadRequest("File is larger than 5 MiB!")
		}
		return in, nil, apperr.Wrap(http.StatusBadRequest, apperr.CodeBadRequest, "Malformed multipart form!", err)
	}
	cleanup := func() { _ = r.MultipartForm.RemoveAll() }

	in.Contact = domainorder.Contact{
		FullName:    r.FormValue("full_name"),
		Email:       r.FormValue("email"),
		PhoneNumber: r.FormValue("phone_number"),
	}
	in.Delivery = domainorder.Delivery{
		District: strings.TrimSpace(r.FormValue("district")),
		Address:  strings.TrimSpace(r.FormValue("address")),
	}
	if lm := strings.TrimSpace(r.FormValue("landmark")); lm != "" {
		in.Delivery.Landmark = &lm
	}
	in.PaymentMethod = strings.TrimSpace(r.FormValue("payment_method"))

	if raw := r.FormValue("cart_items"); raw != "" {
		var items []cart.Item
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return in, cleanup, apperr.Wrap(http.StatusBadRequest, apperr.CodeBadRequest, "cart_items must be a JSON array!", err)
		}
		in.Items = items
	}

	f, fh, err := r.FormFile("payment_screenshot")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		return in, cleanup, apperr.Wrap(http.StatusBadRequest, apperr.CodeBadRequest, "Malformed payment_screenshot!", err)
	default:
		in.Screenshot = screenshotOf(f, fh)
		cleanup = func() {
			_ = f.Close()
			_ = r.MultipartForm.RemoveAll()
		}
	}
	return in, cleanup, nil
}

func screenshotOf(f multipart.File, fh *multipart.FileHeader) *Screenshot {
	return &Screenshot{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}
}
