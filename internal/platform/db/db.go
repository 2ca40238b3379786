package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"checador/internal/platform/config"
)

func Connect(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConns = cfg.DBMaxConns
	poolCfg.MinConns = cfg.DBMinConns
	// CURRENT_DATE inside registrar_asistencia follows the session zone.
	poolCfg.ConnConfig.RuntimeParams["timezone"] = cfg.Location().String()
	return pgxpool.NewWithConfig(ctx, poolCfg)
}
