package redis

import (
	"testing"
	"time"

	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/config"
)

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error when neither url nor address set")
	}
}

func TestOptionsFromConfigParsesURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		URL:         "redis://:secret@localhost:6380/2",
		PoolSize:    7,
		DialTimeout: 3 * time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6380" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
	if opts.PoolSize != 7 {
		t.Fatalf("pool size fallback not applied, got %d", opts.PoolSize)
	}
}

func TestOptionsFromConfigAddressFallback(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		Address:  "localhost:6379",
		Password: "secret",
		DB:       1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.Password != "secret" {
		t.Fatalf("unexpected password %q", opts.Password)
	}
	if opts.DB != 1 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
}

func TestOrdersChangedChannel(t *testing.T) {
	if got := OrdersChangedChannel("2025-01"); got != "ingenio:orders_changed:2025-01" {
		t.Fatalf("unexpected channel %q", got)
	}
}
