package catalog

import (
	"net/http"
	"strconv"

	"github.com/NordCoder/Foodcart/internal/domain/catalog"
	"github.com/NordCoder/Foodcart/internal/httpx"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	uc  *Usecase
	log *zap.Logger
}

func NewHandler(uc *Usecase, log *zap.Logger) *Handler { return &Handler{uc: uc, log: log} }

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{product_name}", h.get)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	popular, _ := strconv.ParseBool(q.Get("popular"))
	out, err := h.uc.List(r.Context(), catalog.Filter{Category: q.Get("category"), PopularOnly: popular})
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	httpx.WriteOK(w, "Products fetched successfully!", out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.BySlug(r.Context(), chi.URLParam(r, "product_name"))
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	httpx.WriteOK(w, "Product fetched successfully!", p)
}
