package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/geocoder89/staffhub/internal/config"
	"github.com/geocoder89/staffhub/internal/domain/user"
	"github.com/geocoder89/staffhub/internal/repo"
)

// EnsureAdminUser makes sure the configured admin account exists. Roles are
// never granted through signup, so this is the only way an admin appears.
func EnsureAdminUser(ctx context.Context, users repo.UserRepo, cfg config.Config) error {
	if cfg.AdminEmail == "" {
		return nil
	}

	u := user.User{
		Name:       cfg.AdminName,
		Email:      cfg.AdminEmail,
		Role:       user.RoleAdmin,
		IsVerified: true,
		CreatedAt:  time.Now().UTC(),
	}

	got, created, err := users.CreateIfAbsent(ctx, u)
	if err != nil {
		return err
	}

	if created {
		slog.Default().Info("admin user seeded", "email", got.Email)
		return nil
	}

	if got.Role != user.RoleAdmin {
		if _, err := users.SetRole(ctx, got.ID, user.RoleAdmin); err != nil {
			return err
		}
		slog.Default().Info("admin role restored", "email", got.Email)
	}

	return nil
}
