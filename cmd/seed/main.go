package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-user-registration/config"
	"github.com/oksasatya/go-user-registration/internal/application"
	"github.com/oksasatya/go-user-registration/internal/domain/repository"
	pginfra "github.com/oksasatya/go-user-registration/internal/infrastructure/postgres"
	"github.com/oksasatya/go-user-registration/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	username := flag.String("username", "demoUser", "username to seed")
	email := flag.String("email", "demo@example.com", "email to seed")
	password := flag.String("password", "password123", "password to seed")
	flag.Parse()

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	repo := pginfra.NewUserRepository(pool)
	existing, err := repo.FindByUsername(ctx, *username)
	switch {
	case err == nil:
		fmt.Printf("user already seeded: id=%s username=%s\n", existing.ID, existing.Username)
		return
	case !errors.Is(err, repository.ErrNotFound):
		logger.Fatalf("failed to look up user: %v", err)
	}

	svc := application.NewService(repo, nil, nil, cfg, logger)
	u, err := svc.CreateUser(ctx, application.RegistrationInput{
		Username:   *username,
		Password:   *password,
		RePassword: *password,
		Email:      *email,
		FirstName:  "Demo",
		LastName:   "User",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("seeded user: id=%s username=%s email=%s\n", u.ID, u.Username, u.Email)
}
