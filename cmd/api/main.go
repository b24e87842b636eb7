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

	"github.com/pefman/packet-pals/internal/config"
	"github.com/pefman/packet-pals/internal/engine"
	"github.com/pefman/packet-pals/internal/game"
	"github.com/pefman/packet-pals/internal/logging"
	"github.com/pefman/packet-pals/internal/scan"
	"github.com/pefman/packet-pals/internal/server"
	"github.com/pefman/packet-pals/internal/stats"
	"github.com/pefman/packet-pals/internal/store"
	"go.uber.org/zap"
)

// Build metadata injected via -ldflags at build time
var (
	buildVersion = "dev"
	buildTime    = ""
)

func main() {
	cfgPath := flag.String("config", "packetpals.yaml", "path to the YAML config file")
	ephemeral := flag.Bool("ephemeral", false, "keep the world in memory only")
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

	if err := run(cfg, *ephemeral || cfg.Server.Ephemeral, log); err != nil {
		log.Fatal("api: exit", zap.Error(err))
	}
}

func run(cfg config.Config, ephemeral bool, log *zap.Logger) error {
	if err := os.MkdirAll(cfg.Server.DataDir, 0o755); err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	var st game.Store
	if ephemeral {
		st = store.NewMemory()
	} else {
		dir, err := store.NewDir(cfg.Server.DataDir)
		if err != nil {
			return err
		}
		st = dir
	}

	dice := engine.NewRoller(cfg.Server.Seed)
	world, err := game.NewWorld(st, dice, log)
	if err != nil {
		return fmt.Errorf("load world: %w", err)
	}

	var src scan.Source
	if cfg.Server.ScanFile != "" {
		src = scan.File{Path: cfg.Server.ScanFile}
		log.Info("api: scanning from file", zap.String("path", cfg.Server.ScanFile))
	} else {
		src = scan.NewSimulated(dice, cfg.Server.Networks, cfg.Server.PerScan)
		log.Info("api: scanning a simulated neighbourhood", zap.Int("networks", cfg.Server.Networks))
	}

	srv := &server.Server{
		World:  world,
		Source: src,
		Wigle:  scan.NewWigleLog(filepath.Join(cfg.Server.DataDir, "wigledata.csv")),
		Stats:  stats.NewTracker(),
		Log:    log,
	}
	httpSrv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           srv.Handler(),
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

	log.Info("api: listening",
		zap.String("addr", httpSrv.Addr),
		zap.String("version", buildVersion),
		zap.String("built", buildTime),
		zap.String("dataDir", cfg.Server.DataDir),
		zap.Bool("ephemeral", ephemeral),
	)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
