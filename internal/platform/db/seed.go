package db

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"qmatrix/internal/domain/auth"
	"qmatrix/internal/platform/config"
)

// Seed creates the initial admin user when the user table is empty.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	store := auth.NewStore(pool)
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := cfg.SeedAdminEmail
	if email == "" {
		email = "admin@example.com"
	}
	password := cfg.SeedAdminPassword
	if password == "" {
		password = "admin"
		slog.Warn("seeding admin with default password, change it immediately", "email", email)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := store.Create(ctx, email, hash, auth.RoleAdmin); err != nil {
		return err
	}
	slog.Info("seeded admin user", "email", email)
	return nil
}
