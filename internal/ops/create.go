package ops

import (
	"context"
	"time"

	"github.com/hpungsan/lexis/internal/analysis"
	"github.com/hpungsan/lexis/internal/config"
	"github.com/hpungsan/lexis/internal/store"
)

// CreateInput contains parameters for the Create operation.
type CreateInput struct {
	Args map[string]any // decoded request body; must carry "value"
}

// Create analyzes the submitted value and stores the resulting record.
// Resubmitting stored content fails with CONFLICT.
func Create(ctx context.Context, st store.Store, cfg *config.Config, input CreateInput) (*analysis.Record, error) {
	value, err := ValueFromArgs(input.Args)
	if err != nil {
		return nil, err
	}

	if err := checkSize(value, cfg.MaxValueChars); err != nil {
		return nil, err
	}

	rec := analysis.NewRecord(value, time.Now())
	if err := st.Insert(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}
