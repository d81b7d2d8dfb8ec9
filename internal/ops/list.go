package ops

import (
	"context"

	"github.com/hpungsan/lexis/internal/analysis"
	"github.com/hpungsan/lexis/internal/filter"
	"github.com/hpungsan/lexis/internal/store"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Filters filter.Spec // empty spec matches everything
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Data           []*analysis.Record `json:"data"`
	Count          int                `json:"count"`
	FiltersApplied map[string]any     `json:"filters_applied"`
}

// List returns the stored records matching the structured filters, in
// insertion order.
func List(ctx context.Context, st store.Store, input ListInput) (*ListOutput, error) {
	if err := input.Filters.Validate(); err != nil {
		return nil, err
	}

	records, err := st.All(ctx)
	if err != nil {
		return nil, err
	}

	matched := nonNil(filter.Apply(input.Filters, records))

	return &ListOutput{
		Data:           matched,
		Count:          len(matched),
		FiltersApplied: input.Filters.Map(),
	}, nil
}
