// Package config loads packetpals.yaml and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pefman/packet-pals/internal/view"
	"gopkg.in/yaml.v3"
)

type Server struct {
	Port     string `yaml:"port"`
	DataDir  string `yaml:"dataDir"`
	ScanFile string `yaml:"scanFile"`
	// Simulated neighbourhood used when ScanFile is empty.
	Networks  int   `yaml:"networks"`
	PerScan   int   `yaml:"perScan"`
	Seed      int64 `yaml:"seed"`
	Ephemeral bool  `yaml:"ephemeral"`
}

type Game struct {
	Port           string        `yaml:"port"`
	APIBase        string        `yaml:"apiBase"`
	ResetDelay     time.Duration `yaml:"resetDelay"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
	PrefsFile      string        `yaml:"prefsFile"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type Config struct {
	Server   Server              `yaml:"server"`
	Game     Game                `yaml:"game"`
	Log      Log                 `yaml:"log"`
	Tutorial []view.TutorialStep `yaml:"tutorial"`
}

func Default() Config {
	return Config{
		Server: Server{
			Port:     "8080",
			DataDir:  "data",
			Networks: 40,
			PerScan:  8,
		},
		Game: Game{
			Port:           "8081",
			APIBase:        "http://localhost:8080",
			ResetDelay:     view.ResetDelay,
			RequestTimeout: 8 * time.Second,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path over the defaults; a missing file is not an error.
// Environment variables win over the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	applyEnv(&cfg)
	if len(cfg.Tutorial) == 0 {
		cfg.Tutorial = view.DefaultTutorial
	}
	if cfg.Game.PrefsFile == "" {
		cfg.Game.PrefsFile = filepath.Join(cfg.Server.DataDir, "prefs.yaml")
	}
	return cfg, cfg.validate()
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getenv("PORT", cfg.Server.Port)
	cfg.Game.Port = getenv("GAME_PORT", cfg.Game.Port)
	cfg.Game.APIBase = getenv("PALS_API_BASE", cfg.Game.APIBase)
	cfg.Server.DataDir = getenv("PALS_DATA_DIR", cfg.Server.DataDir)
	cfg.Server.ScanFile = getenv("PALS_SCAN_FILE", cfg.Server.ScanFile)
	cfg.Log.Level = getenv("PALS_LOG_LEVEL", cfg.Log.Level)
}

func (c Config) validate() error {
	for name, p := range map[string]string{"server.port": c.Server.Port, "game.port": c.Game.Port} {
		if n, err := strconv.Atoi(p); err != nil || n <= 0 || n > 65535 {
			return fmt.Errorf("%s: invalid port %q", name, p)
		}
	}
	if c.Game.ResetDelay < 0 {
		return fmt.Errorf("game.resetDelay must not be negative")
	}
	if c.Game.RequestTimeout <= 0 {
		return fmt.Errorf("game.requestTimeout must be positive")
	}
	return nil
}

// ServerAddr is the listen address of the game server.
func (c Config) ServerAddr() string { return ":" + c.Server.Port }

// GameAddr is the listen address of the front-end host.
func (c Config) GameAddr() string { return ":" + c.Game.Port }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
