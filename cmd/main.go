package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/moviebazar/account-service/config"
	"github.com/moviebazar/account-service/internal/container"
	"github.com/moviebazar/account-service/internal/infrastructure/memstore"
	pginfra "github.com/moviebazar/account-service/internal/infrastructure/postgres"
	"github.com/moviebazar/account-service/internal/infrastructure/snapshot"
	"github.com/moviebazar/account-service/internal/interface/middleware"
	"github.com/moviebazar/account-service/internal/router"
	"github.com/moviebazar/account-service/pkg/helpers"
	"github.com/moviebazar/account-service/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage: snapshot-backed memory store by default, Postgres behind
	// STORAGE_DRIVER=postgres.
	var saverWG sync.WaitGroup
	switch cfg.StorageDriver {
	case "memory":
		setupMemoryStorage(ctx, cfg, logger, &saverWG)
	case "postgres":
		pool := setupPostgresStorage(ctx, cfg, logger)
		defer pool.Close()
	default:
		log.Fatalf("unknown storage driver %q (want memory or postgres)", cfg.StorageDriver)
	}

	// Redis is optional: sessions, rate limits and the leaderboard cache
	// all degrade gracefully without it.
	if cfg.RedisEnabled {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		container.SetRedis(rdb)
	} else {
		logger.Info("redis disabled; sessions and rate limits run without it")
	}

	// JWT
	jwtManager := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(jwtManager)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(cors.New(corsConfig(cfg)))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}

	// Stop the saver and wait for its final snapshot write.
	cancel()
	saverWG.Wait()
	logger.Info("server exited properly")
}

func setupMemoryStorage(ctx context.Context, cfg *config.Config, logger *logrus.Logger, wg *sync.WaitGroup) {
	users := memstore.NewUserRepository()
	activities := memstore.NewActivityRepository()

	store := snapshot.NewStore(cfg.SnapshotPath, logger)
	snap := store.Load()
	users.Restore(snap.Users)
	activities.Restore(snap.Activities)

	saver := snapshot.NewSaver(store, func() *snapshot.Snapshot {
		all, _ := activities.All()
		return &snapshot.Snapshot{
			Users:      users.SnapshotUsers(),
			Activities: all,
			SavedAt:    time.Now().UTC(),
		}
	}, cfg.SnapshotInterval, cfg.SnapshotDebounce, logger)

	wg.Add(1)
	go func() {
		defer wg.Done()
		saver.Run(ctx)
	}()

	container.SetUserRepo(users)
	container.SetActivityRepo(activities)
	container.SetSaver(saver)
}

func setupPostgresStorage(ctx context.Context, cfg *config.Config, logger *logrus.Logger) *pgxpool.Pool {
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}

	if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("migration failed: %v", err)
	}

	container.SetPGPool(pool)
	container.SetUserRepo(pginfra.NewUserRepository(pool))
	container.SetActivityRepo(pginfra.NewActivityRepository(pool))
	return pool
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowUnknownOrigins {
		// Opt-in echo of any origin; credentials force AllowOriginFunc
		// instead of a wildcard.
		c.AllowOriginFunc = func(string) bool { return true }
	} else {
		c.AllowOrigins = cfg.CORSOrigins()
	}
	return c
}

func runMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	// Open sql DB via pgx stdlib
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
