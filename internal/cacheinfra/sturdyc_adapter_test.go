package cacheinfra

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Capacity != 10000 {
		t.Errorf("expected Capacity to be 10000, got %d", cfg.Capacity)
	}
	if cfg.NumShards != 256 {
		t.Errorf("expected NumShards to be 256, got %d", cfg.NumShards)
	}
	if cfg.TTL != 5*time.Minute {
		t.Errorf("expected TTL to be 5 minutes, got %v", cfg.TTL)
	}
	if cfg.EvictionPercentage != 10 {
		t.Errorf("expected EvictionPercentage to be 10, got %d", cfg.EvictionPercentage)
	}
	if !cfg.MissingRecordStorage {
		t.Error("expected MissingRecordStorage to be true")
	}
	if cfg.EarlyRefresh == nil {
		t.Fatal("expected EarlyRefresh to be configured")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to validate, got %v", err)
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
		{
			"max refresh below min",
			func(c *Config) {
				c.EarlyRefresh.MinAsyncRefreshTime = 20 * time.Second
				c.EarlyRefresh.MaxAsyncRefreshTime = 10 * time.Second
			},
			"EarlyRefresh.MaxAsyncRefreshTime",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %T", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, cfgErr.Field)
			}
		})
	}
}

func TestSturdycService_GetOrFetchCachesResult(t *testing.T) {
	service, err := NewSturdycService(DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	calls := 0
	fetch := func(ctx context.Context) (any, error) {
		calls++
		return "fresh", nil
	}

	for i := 0; i < 3; i++ {
		got, err := service.GetOrFetch(context.Background(), "products::page-1", fetch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "fresh" {
			t.Errorf("expected fresh, got %v", got)
		}
	}
	if calls != 1 {
		t.Errorf("expected a single backend fetch, got %d", calls)
	}
}

func TestSturdycService_InvalidateKeysForcesRefetch(t *testing.T) {
	service, err := NewSturdycService(DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	calls := 0
	fetch := func(ctx context.Context) (any, error) {
		calls++
		return calls, nil
	}

	ctx := context.Background()
	if _, err := service.GetOrFetch(ctx, "orders::all", fetch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.GetOrFetch(ctx, "orders::o1", fetch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected two initial fetches, got %d", calls)
	}

	if err := service.InvalidateKeys(ctx, []string{"orders::all", "orders::o1"}); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}

	if _, err := service.GetOrFetch(ctx, "orders::all", fetch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected refetch after invalidation, got %d calls", calls)
	}
}

func TestSturdycService_FetchErrorNotCachedAsValue(t *testing.T) {
	service, err := NewSturdycService(DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	wantErr := errors.New("backend unavailable")
	_, err = service.GetOrFetch(context.Background(), "depots::all", func(ctx context.Context) (any, error) {
		return nil, wantErr
	})
	if err == nil {
		t.Fatal("expected fetch error to propagate")
	}
}
