package auth

import (
	"net/http"

	"github.com/NordCoder/Foodcart/internal/apperr"
	authx "github.com/NordCoder/Foodcart/internal/auth"
	domainauth "github.com/NordCoder/Foodcart/internal/domain/auth"
	"github.com/NordCoder/Foodcart/internal/domain/user"
	"github.com/NordCoder/Foodcart/internal/httpx"
	"github.com/NordCoder/Foodcart/internal/obs"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	uc      *Usecase
	sealer  *authx.ProfileSealer
	cookies CookieConfig
	log     *zap.Logger
}

func NewHandler(uc *Usecase, sealer *authx.ProfileSealer, cookies CookieConfig, log *zap.Logger) *Handler {
	return &Handler{uc: uc, sealer: sealer, cookies: cookies, log: log}
}

// Routes mounts the auth endpoints; gate protects /me.
func (h *Handler) Routes(r chi.Router, gate *Gate) {
	r.Post("/login", h.login)
	r.Post("/signup", h.signup)
	r.Post("/logout/{id}", h.logout)
	r.With(gate.Require).Get("/me", h.me)
}

type loginRequest struct {
	EmailOrPhoneNumber string `json:"emailOrPhoneNumber"`
	Password           string `json:"password"`
	IsEmail            bool   `json:"isEmail"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := httpx.DecodeJSON[loginRequest](r)
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}

	s, err := h.uc.Login(ctx, user.IdentifierFromLogin(req.EmailOrPhoneNumber, req.IsEmail), req.Password)
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	sealed, err := h.sealer.Seal(domainauth.DisplayProfileOf(s.Profile))
	if err != nil {
		httpx.WriteError(ctx, w, h.log, apperr.Unexpected(err))
		return
	}

	h.cookies.setBearer(w, r, s.Bearer)
	h.cookies.setSession(w, r, s.Refresh, sealed)
	obs.WithTrace(ctx, h.log).Info("login", zap.String("user_id", s.Profile.ID))
	httpx.WriteOK(w, "Login successfull!", s.Profile)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := httpx.DecodeJSON[SignUpInput](r)
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	p, err := h.uc.SignUp(ctx, req)
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	obs.WithTrace(ctx, h.log).Info("signup", zap.String("user_id", p.ID))
	httpx.WriteOK(w, "Sign up successfull!", nil)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if id == "" {
		httpx.WriteError(ctx, w, h.log, apperr.BadRequest("User id is required!"))
		return
	}
	n, err := h.uc.Logout(ctx, id)
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	h.cookies.clear(w, r)
	obs.WithTrace(ctx, h.log).Info("logout", zap.String("user_id", id), zap.Int64("revoked", n))
	httpx.WriteOK(w, "Logout successfull!", nil)
}

type meResponse struct {
	Email   string                     `json:"email"`
	Profile *domainauth.DisplayProfile `json:"profile,omitempty"`
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := PrincipalFrom(ctx)
	if !ok {
		httpx.WriteError(ctx, w, h.log, apperr.Unauthorized())
		return
	}
	resp := meResponse{Email: p.Email}
	if prof, ok := ProfileFrom(ctx); ok {
		resp.Profile = &prof
	}
	httpx.WriteOK(w, "User fetched successfully!", resp)
}
