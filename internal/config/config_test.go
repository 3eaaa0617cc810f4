package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("SEED_COIN_COUNT", "")
	c := Load()
	if c.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr default")
	}
	if c.ShutdownTimeout != 15*time.Second {
		t.Fatalf("ShutdownTimeout default")
	}
	if c.DBPath != "" {
		t.Fatalf("DBPath default")
	}
	if c.SeedCoinCount != 10 {
		t.Fatalf("SeedCoinCount default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "2")
	t.Setenv("DB_PATH", "/tmp/vending.db")
	t.Setenv("SEED_COIN_COUNT", "25")
	c := Load()
	if c.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr env")
	}
	if c.ShutdownTimeout != 2*time.Second {
		t.Fatalf("ShutdownTimeout env")
	}
	if c.DBPath != "/tmp/vending.db" {
		t.Fatalf("DBPath env")
	}
	if c.SeedCoinCount != 25 {
		t.Fatalf("SeedCoinCount env")
	}
}

func TestLoadSeedCoinBounds(t *testing.T) {
	t.Setenv("SEED_COIN_COUNT", "120")
	if c := Load(); c.SeedCoinCount != 10 {
		t.Fatalf("expected out-of-range seed to fall back, got %d", c.SeedCoinCount)
	}
	t.Setenv("SEED_COIN_COUNT", "-1")
	if c := Load(); c.SeedCoinCount != 10 {
		t.Fatalf("expected negative seed to fall back, got %d", c.SeedCoinCount)
	}
	t.Setenv("SEED_COIN_COUNT", "0")
	if c := Load(); c.SeedCoinCount != 0 {
		t.Fatalf("expected zero seed to be accepted, got %d", c.SeedCoinCount)
	}
}
