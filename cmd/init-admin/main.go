package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/rs/zerolog/log"

	"ginsengcms/internal/config"
	"ginsengcms/internal/core/apperr"
	"ginsengcms/internal/domain/user"
	"ginsengcms/internal/services/auth"
	"ginsengcms/internal/store/postgres"
)

// Bootstraps the first admin account so the admin API is reachable on a
// fresh deployment. Refuses to overwrite an existing account.
func main() {
	email := flag.String("email", "", "admin email address")
	name := flag.String("name", "Administrator", "display name")
	password := flag.String("password", "", "initial password (min 8 chars)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal().Msg("init-admin: -email and -password are required")
	}

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.Migrate(cfg.DB.DSN); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}
	pool := postgres.MustOpen(ctx, cfg.DB.DSN)
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	addr := user.NormalizeEmail(*email)
	if _, err := userRepo.FindByEmail(ctx, addr); err == nil {
		log.Fatal().Str("email", addr).Msg("account already exists")
	} else if !errors.Is(err, apperr.ErrNotFound) {
		log.Fatal().Err(err).Msg("lookup failed")
	}

	u, err := user.New(addr, *name, user.RoleAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid account details")
	}

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.RefreshTTL)
	authSvc := auth.NewService(userRepo, tokens, cfg.Auth.BcryptCost)
	hash, err := authSvc.HashPassword(*password)
	if err != nil {
		log.Fatal().Err(err).Msg("password rejected")
	}
	u.HashedPassword = hash

	if err := userRepo.Save(ctx, u); err != nil {
		log.Fatal().Err(err).Msg("save failed")
	}
	log.Info().Str("email", u.Email).Msg("admin account created")
}
