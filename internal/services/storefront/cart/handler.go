package cart

import (
	"net/http"
	"strconv"

	"github.com/NordCoder/Foodcart/internal/apperr"
	domaincart "github.com/NordCoder/Foodcart/internal/domain/cart"
	"github.com/NordCoder/Foodcart/internal/httpx"
	storefrontauth "github.com/NordCoder/Foodcart/internal/services/storefront/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	uc  *Usecase
	log *zap.Logger
}

func NewHandler(uc *Usecase, log *zap.Logger) *Handler { return &Handler{uc: uc, log: log} }

// Routes expects to be mounted behind the auth gate.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.add)
	r.Patch("/", h.update)
	r.Delete("/", h.clear)
	r.Delete("/{product_id}", h.remove)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, _ := storefrontauth.PrincipalFrom(ctx)
	items, err := h.uc.List(ctx, p)
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	httpx.WriteOK(w, "Cart items successfully extracted!", items)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, _ := storefrontauth.PrincipalFrom(ctx)
	it, err := httpx.DecodeJSON[domaincart.Item](r)
	if err == nil {
		err = h.uc.Add(ctx, p, it)
	}
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	httpx.WriteOK(w, "Product added to cart!", nil)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, _ := storefrontauth.PrincipalFrom(ctx)
	it, err := httpx.DecodeJSON[domaincart.Item](r)
	if err == nil {
		err = h.uc.SetQuantity(ctx, p, it)
	}
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	httpx.WriteOK(w, "Product quantity updated!", nil)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, _ := storefrontauth.PrincipalFrom(ctx)
	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil {
		httpx.WriteError(ctx, w, h.log, apperr.BadRequest("product_id must be a number!"))
		return
	}
	if err := h.uc.Remove(ctx, p, id); err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	httpx.WriteOK(w, "Product deleted from cart!", nil)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, _ := storefrontauth.PrincipalFrom(ctx)
	if err := h.uc.Clear(ctx, p); err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	httpx.WriteOK(w, "Cart cleared!", nil)
}
