// seed applies the database migrations and creates (or resets) the bootstrap super admin.
//
// Usage: go run ./cmd/seed [email]
// The password is read from SEED_ADMIN_PASSWORD; the email defaults to SEED_ADMIN_EMAIL.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/elimu-hub/internal/application/auth"
	"github.com/jhoicas/elimu-hub/internal/application/usecase"
	"github.com/jhoicas/elimu-hub/internal/infrastructure/postgres"
	"github.com/jhoicas/elimu-hub/pkg/config"
	"github.com/jhoicas/elimu-hub/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Service: cfg.App.Name, Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	email := cfg.Seed.AdminEmail
	if len(os.Args) > 1 {
		email = os.Args[1]
	}
	if cfg.Seed.AdminPassword == "" {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	auditUC := usecase.NewAuditUseCase(postgres.NewAuditRepository(pool))
	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auditUC, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	user, created, err := authUC.EnsureSuperAdmin(ctx, email, cfg.Seed.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Str("email", email).Msg("seed super admin")
	}
	log.Info().Str("id", user.ID).Str("email", user.Email).Bool("created", created).Msg("super admin ready")
}
