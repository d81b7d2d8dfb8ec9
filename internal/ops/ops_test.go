package ops

import (
	"context"
	"testing"

	"github.com/hpungsan/lexis/internal/config"
	"github.com/hpungsan/lexis/internal/errors"
	"github.com/hpungsan/lexis/internal/store"
)

// newStore returns an empty in-memory store.
func newStore(t *testing.T) store.Store {
	t.Helper()
	st := store.NewMemory()
	t.Cleanup(func() { st.Close() })
	return st
}

// seed stores each value through Create.
func seed(t *testing.T, st store.Store, values ...string) {
	t.Helper()
	cfg := config.DefaultConfig()
	for _, v := range values {
		if _, err := Create(context.Background(), st, cfg, CreateInput{Args: map[string]any{"value": v}}); err != nil {
			t.Fatalf("Create(%q) failed: %v", v, err)
		}
	}
}

func TestValueFromArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		want     string
		wantCode errors.ErrorCode
	}{
		{"string", map[string]any{"value": "hello"}, "hello", ""},
		{"empty string", map[string]any{"value": ""}, "", ""},
		{"extra fields ignored", map[string]any{"value": "x", "other": 1}, "x", ""},
		{"nil body", nil, "", errors.ErrInvalidRequest},
		{"missing", map[string]any{}, "", errors.ErrMissingField},
		{"null", map[string]any{"value": nil}, "", errors.ErrMissingField},
		{"number", map[string]any{"value": 42.0}, "", errors.ErrWrongType},
		{"bool", map[string]any{"value": true}, "", errors.ErrWrongType},
		{"array", map[string]any{"value": []any{"a"}}, "", errors.ErrWrongType},
		{"object", map[string]any{"value": map[string]any{}}, "", errors.ErrWrongType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValueFromArgs(tt.args)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("ValueFromArgs() error = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValueFromArgs() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ValueFromArgs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValueFromArgs_Statuses(t *testing.T) {
	_, err := ValueFromArgs(map[string]any{})
	if got := errors.As(err).Status; got != 400 {
		t.Errorf("missing field status = %d, want 400", got)
	}

	_, err = ValueFromArgs(map[string]any{"value": 1.0})
	if got := errors.As(err).Status; got != 422 {
		t.Errorf("wrong type status = %d, want 422", got)
	}
}
