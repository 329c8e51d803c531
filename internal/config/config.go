package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	WCLClientID       string
	WCLClientSecret   string
	BlizzClientID     string
	BlizzClientSecret string
	DBPath            string
	ServerPort        string
	DefaultRegion     string
	ScanInterval      time.Duration
	ScanRatePerMin    int
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		WCLClientID:       getEnv("WCL_CLIENT_ID", ""),
		WCLClientSecret:   getEnv("WCL_CLIENT_SECRET", ""),
		BlizzClientID:     getEnv("BLIZZARD_CLIENT_ID", ""),
		BlizzClientSecret: getEnv("BLIZZARD_CLIENT_SECRET", ""),
		DBPath:            getEnv("DB_PATH", "stillnoob.db"),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		DefaultRegion:     getEnv("DEFAULT_REGION", "eu"),
		ScanInterval:      getEnvDuration("SCAN_INTERVAL", 30*time.Minute),
		ScanRatePerMin:    getEnvInt("SCAN_RATE_PER_MIN", 30),
	}

	if cfg.WCLClientID == "" || cfg.WCLClientSecret == "" {
		return nil, fmt.Errorf("WCL_CLIENT_ID and WCL_CLIENT_SECRET are required")
	}
	if cfg.BlizzClientID == "" || cfg.BlizzClientSecret == "" {
		return nil, fmt.Errorf("BLIZZARD_CLIENT_ID and BLIZZARD_CLIENT_SECRET are required")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("default_region", cfg.DefaultRegion).
		Dur("scan_interval", cfg.ScanInterval).
		Int("scan_rate_per_min", cfg.ScanRatePerMin).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
