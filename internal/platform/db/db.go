package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"qmatrix/internal/platform/config"
)

// poolConfig applies the operator-tunable pool sizing. Snapshot loads for
// reports fan out over many queries, so the pool ceiling matters more
// here than for the CRUD paths.
func poolConfig(cfg config.Config) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConns = int32(cfg.DBMaxConns)
	poolCfg.MinConns = int32(cfg.DBMinConns)
	poolCfg.MaxConnLifetime = cfg.DBConnLifetime
	return poolCfg, nil
}

func Connect(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}
	return pgxpool.NewWithConfig(ctx, poolCfg)
}
