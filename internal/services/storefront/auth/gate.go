package auth

import (
	"context"
	"net/http"

	"github.com/NordCoder/Foodcart/internal/apperr"
	authx "github.com/NordCoder/Foodcart/internal/auth"
	domainauth "github.com/NordCoder/Foodcart/internal/domain/auth"
	"github.com/NordCoder/Foodcart/internal/httpx"
	"github.com/NordCoder/Foodcart/internal/obs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var gateOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "storefront_auth_gate_total",
	Help: "Auth gate decisions by outcome.",
}, []string{"outcome"})

type ctxKey int

const (
	principalKey ctxKey = iota
	profileKey
)

// PrincipalFrom returns the identity proven by the gate for this request.
func PrincipalFrom(ctx context.Context) (domainauth.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domainauth.Principal)
	return p, ok
}

// ProfileFrom returns the client-held display profile, if the cookie was readable.
// It is display data only.
func ProfileFrom(ctx context.Context) (domainauth.DisplayProfile, bool) {
	p, ok := ctx.Value(profileKey).(domainauth.DisplayProfile)
	return p, ok
}

func WithPrincipal(ctx context.Context, p domainauth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

type Gate struct {
	uc      *Usecase
	sealer  *authx.ProfileSealer
	cookies CookieConfig
	log     *zap.Logger
}

func NewGate(uc *Usecase, sealer *authx.ProfileSealer, cookies CookieConfig, log *zap.Logger) *Gate {
	return &Gate{uc: uc, sealer: sealer, cookies: cookies, log: log}
}

// Require lets a request through with a valid bearer, or renews the bearer from
// a ledger-listed refresh token. Otherwise it answers 401 (no refresh token),
// 403 (refresh token rejected) or 500 (ledger unavailable).
func (g *Gate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if sealed := cookieValue(r, CookieProfile); sealed != "" {
			if p, err := g.sealer.Open(sealed); err == nil {
				ctx = context.WithValue(ctx, profileKey, p)
			} else {
				obs.WithTrace(ctx, g.log).Debug("ignoring unreadable profile cookie")
			}
		}

		if p, ok := g.uc.Authenticate(cookieValue(r, CookieBearer)); ok {
			gateOutcomes.WithLabelValues("bearer").Inc()
			next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, p)))
			return
		}

		p, bearer, err := g.uc.Renew(ctx, cookieValue(r, CookieRefresh))
		if err != nil {
			switch apperr.As(err).Code {
			case apperr.CodeUnauthorized:
				gateOutcomes.WithLabelValues("unauthorized").Inc()
			case apperr.CodeForbidden:
				gateOutcomes.WithLabelValues("forbidden").Inc()
			default:
				gateOutcomes.WithLabelValues("error").Inc()
			}
			httpx.WriteError(ctx, w, g.log, err)
			return
		}

		gateOutcomes.WithLabelValues("renewed").Inc()
		g.cookies.setBearer(w, r, bearer)
		next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, p)))
	})
}
