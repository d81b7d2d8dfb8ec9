package ops

import (
	"context"
	"strings"

	"github.com/hpungsan/lexis/internal/analysis"
	"github.com/hpungsan/lexis/internal/errors"
	"github.com/hpungsan/lexis/internal/filter"
	"github.com/hpungsan/lexis/internal/nlq"
	"github.com/hpungsan/lexis/internal/store"
)

// FilterNaturalInput contains parameters for the FilterNatural operation.
type FilterNaturalInput struct {
	Query string
}

// InterpretedQuery echoes the query text with the filters derived from it.
type InterpretedQuery struct {
	Original      string         `json:"original"`
	ParsedFilters map[string]any `json:"parsed_filters"`
}

// FilterNaturalOutput contains the result of the FilterNatural operation.
type FilterNaturalOutput struct {
	Data             []*analysis.Record `json:"data"`
	Count            int                `json:"count"`
	InterpretedQuery InterpretedQuery   `json:"interpreted_query"`
}

// FilterNatural translates a free-text query and applies the derived filters
// exactly as List applies structured ones.
func FilterNatural(ctx context.Context, st store.Store, input FilterNaturalInput) (*FilterNaturalOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}

	spec, err := nlq.Translate(input.Query)
	if err != nil {
		return nil, err
	}

	records, err := st.All(ctx)
	if err != nil {
		return nil, err
	}

	matched := nonNil(filter.Apply(spec, records))

	return &FilterNaturalOutput{
		Data:  matched,
		Count: len(matched),
		InterpretedQuery: InterpretedQuery{
			Original:      input.Query,
			ParsedFilters: spec.Map(),
		},
	}, nil
}
