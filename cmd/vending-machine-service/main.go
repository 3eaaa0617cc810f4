// Package main boots the vending machine HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fairyhunter13/vending-machine-service/internal/config"
	httpapi "github.com/fairyhunter13/vending-machine-service/internal/http"
	"github.com/fairyhunter13/vending-machine-service/internal/obs"
	"github.com/fairyhunter13/vending-machine-service/internal/storage"
	"github.com/fairyhunter13/vending-machine-service/internal/vending"
)

func main() {
	cfg := config.Load()
	obs.InitLogger()
	obs.Logger.Info("service_starting")

	var repo vending.Repository
	if cfg.DBPath != "" {
		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			obs.Logger.Error("storage_open_error", "path", cfg.DBPath, "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()
		repo = db
		obs.Logger.Info("storage_open", "path", cfg.DBPath)
	}

	svc, err := vending.New(repo)
	if err != nil {
		obs.Logger.Error("service_init_error", "error", err)
		os.Exit(1)
	}
	if err := svc.Init(context.Background(), cfg.SeedCoinCount); err != nil {
		obs.Logger.Error("service_seed_error", "error", err)
		os.Exit(1)
	}

	app := httpapi.NewApp(cfg, svc)
	mux := httpapi.NewRouter(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	app.StartShutdown()

	ctxSrv, cancelSrv := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelSrv()
	if err := srv.Shutdown(ctxSrv); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}

	ctxFlush, cancelFlush := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelFlush()
	if err := svc.Flush(ctxFlush); err != nil {
		obs.Logger.Warn("shutdown_flush_error", "error", err)
	}
	obs.Logger.Info("service_stopped")
}
