package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/moviebazar/account-service/config"
	"github.com/moviebazar/account-service/internal/domain/entity"
	"github.com/moviebazar/account-service/internal/domain/progression"
	"github.com/moviebazar/account-service/internal/domain/repository"
	"github.com/moviebazar/account-service/internal/infrastructure/memstore"
	pginfra "github.com/moviebazar/account-service/internal/infrastructure/postgres"
	"github.com/moviebazar/account-service/internal/infrastructure/snapshot"
	"github.com/moviebazar/account-service/pkg/helpers"
)

// Seeds a demo account into whichever store STORAGE_DRIVER points at.

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	email := "demo@moviebazar.example"
	username := "demoUser"
	password := "password123"

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	first := progression.Levels[0]
	now := time.Now().UTC()
	u := &entity.User{
		ID:              uuid.NewString(),
		Username:        username,
		Email:           email,
		Password:        hash,
		Level:           first.Level,
		Badges:          []string{progression.SignupBadge},
		UnlockedAvatars: append([]string(nil), first.Avatars...),
		CurrentAvatar:   first.Avatars[0],
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	switch cfg.StorageDriver {
	case "memory":
		store := snapshot.NewStore(cfg.SnapshotPath, logger)
		users := memstore.NewUserRepository()
		activities := memstore.NewActivityRepository()
		snap := store.Load()
		users.Restore(snap.Users)
		activities.Restore(snap.Activities)

		if err := users.Create(u); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				log.Fatalf("demo account already exists in %s", cfg.SnapshotPath)
			}
			log.Fatalf("failed to seed user: %v", err)
		}
		all, _ := activities.All()
		if err := store.Save(&snapshot.Snapshot{Users: users.SnapshotUsers(), Activities: all}); err != nil {
			log.Fatalf("failed to write snapshot: %v", err)
		}

	case "postgres":
		ctx := context.Background()
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		if err := pginfra.NewUserRepository(pool).Create(u); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				log.Fatal("demo account already exists")
			}
			log.Fatalf("failed to seed user: %v", err)
		}

	default:
		log.Fatalf("unknown storage driver %q", cfg.StorageDriver)
	}

	fmt.Printf("seeded user: id=%s email=%s username=%s password=%s\n", u.ID, email, username, password)
}
