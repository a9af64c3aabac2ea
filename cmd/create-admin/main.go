package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hanseo-dev/siteoffice/internal/config"
	"github.com/hanseo-dev/siteoffice/internal/db"
	"github.com/hanseo-dev/siteoffice/internal/logger"
	"github.com/hanseo-dev/siteoffice/internal/model"
	"github.com/hanseo-dev/siteoffice/internal/repository"
)

func main() {
	username := flag.String("username", "admin", "login name for the new account")
	password := flag.String("password", "", "password for the new account")
	role := flag.String("role", "admin", "account role")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "usage: create-admin -username <name> -password <password> [-role <role>]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	users := repository.NewUserRepository(database)
	ctx := context.Background()

	if _, err := users.FindByUsername(ctx, *username); err == nil {
		log.Fatal().Str("username", *username).Msg("account already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal().Err(err).Msg("failed to check existing account")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	id, err := users.Create(ctx, model.User{
		Username:     *username,
		PasswordHash: string(hash),
		Role:         *role,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create account")
	}

	log.Info().Int64("id", id).Str("username", *username).Msg("admin account created")
}
