package ops

import (
	"context"

	"github.com/hpungsan/lexis/internal/analysis"
	"github.com/hpungsan/lexis/internal/store"
)

// GetInput contains parameters for the Get operation.
type GetInput struct {
	Value string // literal string, not its digest
}

// Get looks up the record for a literal value.
func Get(ctx context.Context, st store.Store, input GetInput) (*analysis.Record, error) {
	return st.Get(ctx, analysis.Digest(input.Value))
}
