package cacheinfra

import (
	"errors"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Capacity:           100,
		NumShards:          4,
		TTL:                time.Minute,
		EvictionPercentage: 10,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero capacity", func(c *Config) { c.Capacity = 0 }, "Capacity"},
		{"zero shards", func(c *Config) { c.NumShards = 0 }, "NumShards"},
		{"zero ttl", func(c *Config) { c.TTL = 0 }, "TTL"},
		{"eviction too low", func(c *Config) { c.EvictionPercentage = 0 }, "EvictionPercentage"},
		{"eviction too high", func(c *Config) { c.EvictionPercentage = 101 }, "EvictionPercentage"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %T", err)
			}
			if cfgErr.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, cfgErr.Field)
			}
		})
	}

	if err := validConfig().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config rejected: %v", err)
	}
}

func TestNewSturdycStore_RejectsInvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Capacity = -1

	if _, err := NewSturdycStore(cfg); err == nil {
		t.Fatal("expected constructor to reject invalid config")
	}
}

func TestSturdycStore_SetGetDelete(t *testing.T) {
	store, err := NewSturdycStore(validConfig())
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := store.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}

	store.Set("members::Pending", []string{"a", "b"})
	v, ok := store.Get("members::Pending")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if got := v.([]string); len(got) != 2 {
		t.Errorf("expected 2 elements, got %d", len(got))
	}

	store.Delete("members::Pending")
	if _, ok := store.Get("members::Pending"); ok {
		t.Error("expected miss after Delete")
	}
}

func TestSturdycStore_DeleteByPrefix(t *testing.T) {
	store, err := NewSturdycStore(validConfig())
	if err != nil {
		t.Fatal(err)
	}

	store.Set("members::Pending", 1)
	store.Set("members::active", 2)
	store.Set("tickets::pending", 3)

	store.DeleteByPrefix("members")

	if _, ok := store.Get("members::Pending"); ok {
		t.Error("prefixed key survived DeleteByPrefix")
	}
	if _, ok := store.Get("members::active"); ok {
		t.Error("prefixed key survived DeleteByPrefix")
	}
	if _, ok := store.Get("tickets::pending"); !ok {
		t.Error("unrelated key was deleted")
	}
}

func TestSturdycStore_ScanKeys(t *testing.T) {
	store, err := NewSturdycStore(validConfig())
	if err != nil {
		t.Fatal(err)
	}

	store.Set("a", 1)
	store.Set("b", 2)

	keys := store.ScanKeys()
	seen := map[string]bool{}
	for _, k := range keys {
		seen[k] = true
	}
	if !seen["a"] || !seen["b"] {
		t.Errorf("expected keys a and b in scan, got %v", keys)
	}
}
