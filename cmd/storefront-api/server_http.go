package main

import (
	"context"
	"net/http"
	"time"

	authx "github.com/NordCoder/Foodcart/internal/auth"
	config "github.com/NordCoder/Foodcart/internal/config/storefront-api"
	"github.com/NordCoder/Foodcart/internal/httpx"
	"github.com/NordCoder/Foodcart/internal/obs"
	pg "github.com/NordCoder/Foodcart/internal/repository/postgres"
	"github.com/NordCoder/Foodcart/internal/services/storefront/auth"
	"github.com/NordCoder/Foodcart/internal/services/storefront/cart"
	"github.com/NordCoder/Foodcart/internal/services/storefront/catalog"
	"github.com/NordCoder/Foodcart/internal/services/storefront/order"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func buildRouter(cfg *config.Config, logger *zap.Logger, db *pg.DB, blobs order.BlobStore) (http.Handler, error) {
	issuer, err := authx.NewIssuer(authx.Secrets{
		Bearer:    cfg.Auth.BearerSecret,
		Refresh:   cfg.Auth.RefreshSecret,
		BearerTTL: cfg.Auth.BearerTTL,
	}, time.Now)
	if err != nil {
		return nil, err
	}
	sealer, err := authx.NewProfileSealer(cfg.Auth.CookieSecret)
	if err != nil {
		return nil, err
	}
	cookies := auth.CookieConfig{
		BearerTTL:  issuer.BearerTTL(),
		SessionTTL: cfg.Auth.SessionTTL,
		Secure:     cfg.Auth.CookieSecure,
	}

	users := pg.NewUserRepo(db)
	products := pg.NewProductRepo(db)

	authUC := auth.NewUsecase(users, pg.NewRefreshTokenRepo(db), issuer)
	gate := auth.NewGate(authUC, sealer, cookies, logger)
	authH := auth.NewHandler(authUC, sealer, cookies, logger)
	catalogH := catalog.NewHandler(catalog.NewUsecase(products), logger)
	cartH := cart.NewHandler(cart.NewUsecase(users, products, pg.NewCartRepo(db)), logger)
	orderH := order.NewHandler(order.NewUsecase(
		users, pg.NewOrderRepo(db), pg.NewOutboxRepo(db), pg.NewTransactor(db, logger), blobs,
	), logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(httpx.CORS(cfg.Server.CORSOrigins))
	r.Use(obs.RequestLogger(logger))
	r.Use(obs.HTTPMetrics)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", obs.HealthHandler(func(ctx context.Context) error { return db.Ping(ctx) }))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) { authH.Routes(r, gate) })
		r.Route("/product", catalogH.Routes)
		r.Group(func(r chi.Router) {
			r.Use(gate.Require)
			r.Route("/cart", cartH.Routes)
			r.Route("/place-order", orderH.Routes)
		})
	})

	return obs.HTTPHandler(r, "storefront-api"), nil
}

func buildHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
}

func serveHTTP(srv *http.Server, logger *zap.Logger) error {
	logger.Info("http listening", zap.String("addr", srv.Addr))
	return srv.ListenAndServe()
}
