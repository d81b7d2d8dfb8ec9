// Package store holds the content-addressed record store. Records are keyed
// by the SHA-256 digest of their value, so at most one record exists per
// distinct content. All backends keep records in process memory only.
package store

import (
	"context"
	"fmt"

	"github.com/hpungsan/lexis/internal/analysis"
	"github.com/hpungsan/lexis/internal/config"
)

// Store is the record store contract shared by every backend.
type Store interface {
	// Insert stores rec. It fails with a CONFLICT error if a record with the
	// same ID exists, and leaves the store unchanged on any failure.
	Insert(ctx context.Context, rec *analysis.Record) error

	// Get returns the record with the given ID or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*analysis.Record, error)

	// Delete removes the record with the given ID and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// All returns every record in insertion order.
	All(ctx context.Context) ([]*analysis.Record, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	Close() error
}

// Open returns the backend selected by cfg.StoreBackend.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case "", config.BackendMemory:
		return NewMemory(), nil
	case config.BackendSQLite:
		return OpenSQLite()
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
