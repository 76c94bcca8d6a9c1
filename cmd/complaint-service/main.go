package main

import (
	"context"
	"fmt"
	"os"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"complaint-service/internal/auth"
	"complaint-service/internal/config"
	"complaint-service/internal/db"
	httphandler "complaint-service/internal/http"
	"complaint-service/internal/http/middleware"
	"complaint-service/internal/logger"
	"complaint-service/internal/repository"
	"complaint-service/internal/service"
	"complaint-service/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	documents, err := storage.NewDocumentStore(cfg.Uploads.Dir, cfg.Uploads.MaxFileBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare uploads directory")
	}

	userRepo := repository.NewUserRepository(database)
	complaintRepo := repository.NewComplaintRepository(database)

	issuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.TokenTTL)
	parser := auth.NewParser(cfg.Auth.AccessSecret)
	denylist := auth.NewDenylist(redisClient)

	authService := service.NewAuthService(userRepo, issuer, denylist)
	complaintService := service.NewComplaintService(complaintRepo)

	handler := httphandler.NewHandler(authService, complaintService, documents, cfg.Uploads.MaxFiles, log)

	roleCache := gocache.New(5*time.Minute, 10*time.Minute)
	router := httphandler.NewRouter(
		handler,
		middleware.Auth(parser, denylist),
		middleware.RequireAdmin(userRepo, roleCache),
		httphandler.ChatDeps{Denylist: denylist},
		func(ctx context.Context) error { return db.HealthCheck(ctx, database) },
		cfg.Environment,
	)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting complaint service")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
