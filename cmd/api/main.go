package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"ginsengcms/internal/config"
	httpx "ginsengcms/internal/http"
	"ginsengcms/internal/mail"
	"ginsengcms/internal/services/auth"
	"ginsengcms/internal/services/careers"
	"ginsengcms/internal/services/catalog"
	"ginsengcms/internal/services/companyinfo"
	"ginsengcms/internal/services/inbox"
	"ginsengcms/internal/services/newsletters"
	"ginsengcms/internal/services/newsroom"
	"ginsengcms/internal/services/projects"
	"ginsengcms/internal/services/users"
	"ginsengcms/internal/storage"
	"ginsengcms/internal/store/postgres"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := postgres.Migrate(cfg.DB.DSN); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	pool := postgres.MustOpen(ctx, cfg.DB.DSN)
	defer pool.Close()

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer rdb.Close()
	}

	userRepo := postgres.NewUserRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	originRepo := postgres.NewOriginRepository(pool)
	newsRepo := postgres.NewNewsRepository(pool)
	positionRepo := postgres.NewPositionRepository(pool)
	applicationRepo := postgres.NewApplicationRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)
	newsletterRepo := postgres.NewNewsletterRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.RefreshTTL)
	authSvc := auth.NewService(userRepo, tokens, cfg.Auth.BcryptCost)
	newsletterSvc := newsletters.NewService(newsletterRepo)

	mailer := mail.NewSMTPMailer(cfg.Mail)
	dispatcher := newsletters.NewDispatcher(newsletterRepo, mailer)
	go dispatcher.Run(ctx)

	router := httpx.NewRouter(httpx.RouterDependencies{
		Config:      cfg,
		Redis:       rdb,
		Auth:        authSvc,
		Users:       users.NewService(userRepo, authSvc),
		Projects:    projects.NewService(projectRepo),
		Catalog:     catalog.NewService(productRepo, categoryRepo, originRepo),
		Newsroom:    newsroom.NewService(newsRepo),
		Careers:     careers.NewService(positionRepo, applicationRepo),
		Inbox:       inbox.NewService(contactRepo),
		Newsletters: newsletterSvc,
		Company:     companyinfo.NewService(companyRepo),
		Storage:     storage.NewLocalDisk(cfg.Upload.Dir, "/uploads"),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("ginsengcms API listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	_ = srv.Shutdown(shutdownCtx)
	log.Info().Msg("server stopped")
}
