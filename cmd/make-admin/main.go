// Command make-admin creates or promotes an administrator account, so a
// fresh deployment can reach the admin endpoints without manual SQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"complaint-service/internal/auth"
	"complaint-service/internal/config"
	"complaint-service/internal/db"
	"complaint-service/internal/logger"
	"complaint-service/internal/repository"
	"complaint-service/internal/service"
)

func main() {
	var (
		email    = flag.String("email", "", "account email (required)")
		name     = flag.String("name", "Administrator", "account name, used only when the account is created")
		phone    = flag.String("phone", "0000000000", "account phone, used only when the account is created")
		password = flag.String("password", "", "account password, required only when the account is created")
	)
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "usage: make-admin -email <email> [-password <password>] [-name <name>] [-phone <phone>]")
		os.Exit(2)
	}

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

	userRepo := repository.NewUserRepository(database)
	issuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(userRepo, issuer, nil)

	created, err := authService.EnsureAdmin(context.Background(), service.RegisterInput{
		Name:     *name,
		Email:    *email,
		Phone:    *phone,
		Password: *password,
	})
	if err != nil {
		log.Fatal().Err(err).Str("email", *email).Msg("failed to ensure admin account")
	}

	if created {
		log.Info().Str("email", *email).Msg("admin account created")
	} else {
		log.Info().Str("email", *email).Msg("account is an admin")
	}
}
