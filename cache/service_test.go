package cache

import (
	"context"
	"errors"
	"testing"
)

// mockCacheService returns a fixed result for GetOrFetch.
type mockCacheService struct {
	result any
	err    error
}

func (m *mockCacheService) GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	return m.result, m.err
}

func (m *mockCacheService) Delete(ctx context.Context, key string) error { return nil }

func (m *mockCacheService) InvalidateKeys(ctx context.Context, keys []string) error { return nil }

func (m *mockCacheService) ScanKeys() []string { return nil }

func TestGetOrFetch_ValidResult(t *testing.T) {
	mock := &mockCacheService{result: "cached-value"}

	result, err := GetOrFetch[string](context.Background(), mock, "key", func(ctx context.Context) (string, error) {
		return "cached-value", nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "cached-value" {
		t.Errorf("expected cached-value, got %q", result)
	}
}

func TestGetOrFetch_ServiceError(t *testing.T) {
	wantErr := errors.New("backend down")
	mock := &mockCacheService{err: wantErr}

	result, err := GetOrFetch[int](context.Background(), mock, "key", func(ctx context.Context) (int, error) {
		return 0, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if result != 0 {
		t.Errorf("expected zero value, got %d", result)
	}
}

func TestGetOrFetch_NilResultYieldsZeroValue(t *testing.T) {
	mock := &mockCacheService{result: nil}

	result, err := GetOrFetch[*string](context.Background(), mock, "key", func(ctx context.Context) (*string, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result, got %v", result)
	}
}

func TestGetOrFetch_TypeMismatch(t *testing.T) {
	mock := &mockCacheService{result: "wrong-type"}

	result, err := GetOrFetch[int](context.Background(), mock, "key", func(ctx context.Context) (int, error) {
		return 42, nil
	})
	if !errors.Is(err, ErrInvalidResultType) {
		t.Fatalf("expected ErrInvalidResultType, got %v", err)
	}
	if result != 0 {
		t.Errorf("expected zero value, got %d", result)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}

	cfg.Capacity = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected zero capacity to fail validation")
	}
}
