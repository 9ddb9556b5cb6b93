package redis

import (
	"testing"

	"github.com/qommercehub/backoffice-backend/pkg/config"
)

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error when neither url nor address is set")
	}
}

func TestOptionsFromConfigAddress(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		Address:  "localhost:6379",
		Password: "pw",
		DB:       3,
		PoolSize: 7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.DB != 3 || opts.PoolSize != 7 {
		t.Fatalf("options not applied: %+v", opts)
	}
}

func TestOptionsFromConfigURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:secret@redis.internal:6380/2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "redis.internal:6380" || opts.DB != 2 {
		t.Fatalf("url not parsed: %+v", opts)
	}
}

func TestBlacklistKey(t *testing.T) {
	if got := BlacklistKey("abc"); got != "qh:token_blacklist:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}
