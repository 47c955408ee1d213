package main

import (
	"context"

	config "github.com/NordCoder/Foodcart/internal/config/storefront-api"
	"github.com/NordCoder/Foodcart/internal/obs"
)

func initOTel(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	closer, err := obs.SetupOTel(ctx, cfg.OTEL.AsOTELConfig(cfg.App.Version))
	if err != nil {
		return nil, err
	}
	return closer.Shutdown, nil
}
