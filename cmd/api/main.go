package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campuslink/events-api/internal/api"
	"github.com/campuslink/events-api/internal/infrastructure/config"
	mongodb "github.com/campuslink/events-api/internal/infrastructure/db/mongo"
	redisdb "github.com/campuslink/events-api/internal/infrastructure/db/redis"
	"github.com/campuslink/events-api/internal/infrastructure/queue"
	"github.com/campuslink/events-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	if err := bootstrapIndexes(ctx, db); err != nil {
		logg.Fatal().Err(err).Msg("failed to create indexes")
	}

	auditRepo := mongodb.NewAuditRepository(db)
	audit := queue.NewAuditDispatcher(cfg.AuditWorkers, auditRepo, logg)
	audit.Start(ctx)

	e := api.NewRouter(api.Dependencies{
		DB:        db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Audit:     audit,
		Log:       logg,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("server stopped")
		}
	}()
	logg.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("campus events api listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info().Msg("shutting down")
	cancel() // stops the audit workers

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("server shutdown failed")
	}
}

// bootstrapIndexes creates the indexes every repository relies on, most
// importantly the unique email index and the unique (event, participant)
// registration index.
func bootstrapIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewEventRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewRegistrationRepository(db).EnsureIndexes(ctx)
}
