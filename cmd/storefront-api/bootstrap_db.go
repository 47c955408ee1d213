package main

import (
	"context"

	config "github.com/NordCoder/Foodcart/internal/config/storefront-api"
	pg "github.com/NordCoder/Foodcart/internal/repository/postgres"
	"go.uber.org/zap"
)

func initDB(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*pg.DB, error) {
	db, _, err := pg.New(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	logger.Info("db connected", zap.Int32("max_conns", cfg.DB.MaxConns))
	return db, nil
}
