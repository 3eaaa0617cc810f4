// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds configuration knobs for the HTTP server and machine seeding.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	DBPath          string
	SeedCoinCount   int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

// Load collects configuration from environment with defaults. SEED_COIN_COUNT
// is the machine's starting coin count per denomination, used only when no
// persisted snapshot exists; values outside [0, 99] fall back to the default.
func Load() Config {
	seed := atoienv("SEED_COIN_COUNT", 10)
	if seed < 0 || seed > 99 {
		seed = 10
	}
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 15),
		DBPath:          getenv("DB_PATH", ""),
		SeedCoinCount:   seed,
	}
}
