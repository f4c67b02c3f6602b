package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/IyshwaryaRamesh/Ecommerce-project/internal/adapter/handler"
	"github.com/IyshwaryaRamesh/Ecommerce-project/internal/adapter/storage"
	"github.com/IyshwaryaRamesh/Ecommerce-project/internal/core/service"
	"github.com/IyshwaryaRamesh/Ecommerce-project/pkg/config"
	"github.com/IyshwaryaRamesh/Ecommerce-project/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "ecommerce",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Error("open mysql", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		log.Error("ping mysql", "err", err)
		os.Exit(1)
	}
	log.Info("connected to mysql")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("ping redis", "err", err)
		os.Exit(1)
	}
	log.Info("connected to redis")

	shop := service.NewShopService(
		storage.NewMySQLAdapter(db),
		storage.NewRedisAdapter(rdb),
		log,
	)

	mux := http.NewServeMux()
	handler.NewHTTPHandler(shop, log).RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: mux,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "err", err)
		os.Exit(1)
	}
	log.Info("stopped")
}
