package main

import (
	config "github.com/NordCoder/Foodcart/internal/config/storefront-api"
	"github.com/NordCoder/Foodcart/internal/obs"
	"go.uber.org/zap"
)

func initLogger(cfg *config.Config) (*zap.Logger, error) {
	return obs.NewLogger(cfg.AsLoggerConfig())
}
