package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pefman/packet-pals/internal/api"
	"github.com/pefman/packet-pals/internal/config"
	"github.com/pefman/packet-pals/internal/frontend"
	"github.com/pefman/packet-pals/internal/logging"
	"github.com/pefman/packet-pals/internal/prefs"
	"go.uber.org/zap"
)

// Build metadata injected via -ldflags at build time
var (
	buildVersion = "dev"
	buildTime    = ""
)

func main() {
	cfgPath := flag.String("config", "packetpals.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("game: exit", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	if err := os.MkdirAll(filepath.Dir(cfg.Game.PrefsFile), 0o755); err != nil {
		return fmt.Errorf("prefs dir: %w", err)
	}
	store, err := prefs.OpenFile(cfg.Game.PrefsFile)
	if err != nil {
		return err
	}
	client := api.NewClientWithConfig(api.Config{
		BaseURL: cfg.Game.APIBase,
		Timeout: cfg.Game.RequestTimeout,
	}).WithLogger(log)

	host := &frontend.Host{
		API:        client,
		Prefs:      store,
		Tutorial:   cfg.Tutorial,
		ResetDelay: cfg.Game.ResetDelay,
		Log:        log,
		Version:    buildVersion,
	}
	httpSrv := &http.Server{
		Addr:              cfg.GameAddr(),
		Handler:           host.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info("game: listening",
		zap.String("addr", httpSrv.Addr),
		zap.String("apiBase", client.BaseURL()),
		zap.String("version", buildVersion),
		zap.String("built", buildTime),
	)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
