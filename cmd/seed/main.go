package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"github.com/T-Nieb/OPD-BookingService/internal/config"
	"github.com/T-Nieb/OPD-BookingService/internal/domain"
	userRepo "github.com/T-Nieb/OPD-BookingService/internal/infra/storage/user"
	authService "github.com/T-Nieb/OPD-BookingService/internal/service/auth"
)

// Seeds the initial master account on an empty users table. Further accounts
// are created by the master through whatever admin tooling the deployment
// uses; this tool only breaks the bootstrap deadlock.
func main() {
	configPath := flag.String("config", "config.toml", "path to the service config")
	username := flag.String("username", "master", "username for the initial master account")
	password := flag.String("password", "", "password for the initial master account (required)")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "seed: -password is required")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: load config: %v\n", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	users := userRepo.NewRepository(db)

	count, err := users.Count(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: count users: %v\n", err)
		os.Exit(1)
	}
	if count > 0 {
		fmt.Printf("seed: users table already has %d account(s), nothing to do\n", count)
		return
	}

	hash, err := authService.HashPassword(*password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: hash password: %v\n", err)
		os.Exit(1)
	}

	created, err := users.Create(ctx, &domain.User{
		Username:     *username,
		PasswordHash: hash,
		Role:         domain.RoleMaster,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: create master account: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("seed: created master account %q (id=%d)\n", created.Username, created.ID)
}
