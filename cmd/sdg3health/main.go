package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/tmabaso/sdg3health/internal/api"
	"github.com/tmabaso/sdg3health/internal/pkg/cache"
	"github.com/tmabaso/sdg3health/internal/pkg/constants"
	"github.com/tmabaso/sdg3health/internal/pkg/logger"
	"github.com/tmabaso/sdg3health/internal/pkg/store"
	"github.com/tmabaso/sdg3health/internal/pkg/store/xpgx"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	initConfig()
	logger.Init(os.Getenv("DEBUG") != "")
	defer logger.Sync()

	ctx := context.Background()

	pool, err := connect(ctx)
	if err != nil {
		logger.Fatal(ctx, fmt.Errorf("connect to postgres: %w", err))
	}
	defer pool.Close()

	st := store.NewStore(xpgx.NewPool(pool))

	svc, err := api.NewAPIService(st, cache.New())
	if err != nil {
		logger.Fatal(ctx, fmt.Errorf("init api: %w", err))
	}

	go svc.Serve(viper.GetString(constants.ViperKeyAddr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := svc.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(shutdownCtx, "shutdown: %s", err.Error())
	}
}

func initConfig() {
	viper.AutomaticEnv()

	viper.SetDefault(constants.ViperKeyAddr, ":8501")
	viper.SetDefault(constants.ViperKeyPostgresHost, "localhost")
	viper.SetDefault(constants.ViperKeyPostgresPort, "5432")
}

// connect dials the pool and pings it with a few retries, so a database
// that comes up alongside the service doesn't fail the start.
func connect(ctx context.Context) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		viper.GetString(constants.ViperKeyPostgresUser),
		viper.GetString(constants.ViperKeyPostgresPassword),
		viper.GetString(constants.ViperKeyPostgresHost),
		viper.GetString(constants.ViperKeyPostgresPort),
		viper.GetString(constants.ViperKeyPostgresDB),
	)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	err = backoff.Retry(
		func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			if err := pool.Ping(pingCtx); err != nil {
				logger.Warnf(ctx, "postgres not ready: %s", err.Error())
				return err
			}
			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(5*time.Second), 5),
			ctx,
		),
	)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
