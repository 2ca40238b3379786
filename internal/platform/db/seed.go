package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"checador/internal/domain/auth"
	"checador/internal/platform/config"
	"checador/internal/platform/db/postgres"
)

// SeedDB is satisfied by *pgxpool.Pool and pgxmock pools.
type SeedDB interface {
	postgres.Querier
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// Seed makes sure the base roles exist and, when configured, creates the first admin account.
// It is idempotent.
func Seed(ctx context.Context, pool SeedDB, cfg config.Config) error {
	if err := ensureRoles(ctx, pool); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.SeedAdminUsername) == "" {
		return nil
	}
	return ensureAdminUser(ctx, pool, cfg)
}

func ensureRoles(ctx context.Context, q postgres.Querier) error {
	for _, name := range auth.SeedRoles {
		if _, err := q.Exec(ctx, "INSERT INTO roles (nombre) VALUES ($1) ON CONFLICT (nombre) DO NOTHING", name); err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
	}
	return nil
}

func ensureAdminUser(ctx context.Context, pool SeedDB, cfg config.Config) error {
	username := strings.TrimSpace(cfg.SeedAdminUsername)
	if cfg.SeedAdminPassword == "" {
		return errors.New("SEED_ADMIN_PASSWORD is required when SEED_ADMIN_USERNAME is set")
	}

	var exists bool
	if err := pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM usuarios WHERE username = $1)", username).Scan(&exists); err != nil {
		return fmt.Errorf("seed admin lookup: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return fmt.Errorf("seed admin hash: %w", err)
	}

	return postgres.NewTxManager(pool).WithinTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromContext(ctx, pool)

		var roleID int64
		if err := q.QueryRow(ctx, "SELECT id FROM roles WHERE nombre = $1", auth.RoleNameAdmin).Scan(&roleID); err != nil {
			return fmt.Errorf("seed admin role: %w", err)
		}
		var personID int64
		if err := q.QueryRow(ctx, `
    INSERT INTO personas (nombre, apellido_paterno, curp)
    VALUES ($1, $2, $3)
    RETURNING id
  `, "Administrador", "Sistema", cfg.SeedAdminCURP).Scan(&personID); err != nil {
			return fmt.Errorf("seed admin person: %w", err)
		}
		if _, err := q.Exec(ctx, `
    INSERT INTO usuarios (persona_id, username, password_hash, rol_id)
    VALUES ($1, $2, $3, $4)
  `, personID, username, hash, roleID); err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}
		return nil
	})
}
