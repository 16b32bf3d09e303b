// app/bootstrap.go
package app

import (
	"context"
	"errors"
	"fmt"

	"Gin_postgres_redis_lend_tool/db"
	"Gin_postgres_redis_lend_tool/models"
	"Gin_postgres_redis_lend_tool/service"

	"github.com/rs/zerolog"
)

var demoItems = []models.Item{
	{Name: "Arduino Uno", Total: 10},
	{Name: "Raspberry Pi 4", Total: 5},
	{Name: "Breadboard", Total: 20},
	{Name: "Stepper Motor", Total: 6},
	{Name: "Servo Motor", Total: 12},
}

var demoUsers = []struct {
	username, password string
	admin              bool
}{
	{"student1", "student", false},
	{"admin", "admin", true},
}

// SeedDemo loads the sample catalog and accounts into an empty database.
func SeedDemo(ctx context.Context, repo *db.Repo, log zerolog.Logger) error {
	n, err := repo.CountItems(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, it := range demoItems {
		it.Available = it.Total
		if err := repo.CreateItem(ctx, &it); err != nil {
			return fmt.Errorf("seed item %s: %w", it.Name, err)
		}
	}
	for _, du := range demoUsers {
		if _, err := repo.FindUserByUsername(ctx, du.username); err == nil {
			continue
		}
		hash, err := service.HashPassword(du.password)
		if err != nil {
			return err
		}
		if err := repo.CreateUser(ctx, &models.User{Username: du.username, PasswordHash: hash, IsAdmin: du.admin}); err != nil {
			return fmt.Errorf("seed user %s: %w", du.username, err)
		}
	}
	log.Info().Int("items", len(demoItems)).Int("users", len(demoUsers)).Msg("demo data seeded")
	return nil
}

// BootstrapFirstAdmin promotes or creates the configured account when no
// administrator exists yet.
func BootstrapFirstAdmin(ctx context.Context, username, password string, repo *db.Repo, log zerolog.Logger) error {
	if username == "" {
		return nil
	}
	n, err := repo.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	u, err := repo.FindUserByUsername(ctx, username)
	switch {
	case err == nil:
		if err := repo.SetUserAdmin(ctx, u.ID, true); err != nil {
			return err
		}
		log.Info().Str("username", username).Msg("bootstrap: promoted existing user to admin")
		return nil
	case !errors.Is(err, models.ErrNotFound):
		return err
	}

	if password == "" {
		return fmt.Errorf("bootstrap: BOOTSTRAP_ADMIN_PASSWORD is required to create %s", username)
	}
	hash, err := service.HashPassword(password)
	if err != nil {
		return err
	}
	if err := repo.CreateUser(ctx, &models.User{Username: username, PasswordHash: hash, IsAdmin: true}); err != nil {
		return err
	}
	log.Info().Str("username", username).Msg("bootstrap: created first admin")
	return nil
}
