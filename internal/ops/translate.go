package ops

import (
	"strings"

	"github.com/hpungsan/lexis/internal/errors"
	"github.com/hpungsan/lexis/internal/nlq"
)

// TranslateInput contains parameters for the Translate operation.
type TranslateInput struct {
	Query string
}

// TranslateOutput contains the filters derived from a query and the rules
// that produced them.
type TranslateOutput struct {
	Original      string         `json:"original"`
	ParsedFilters map[string]any `json:"parsed_filters"`
	Rules         []string       `json:"rules"`
}

// Translate derives filters from a query without reading any store.
func Translate(input TranslateInput) (*TranslateOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}

	spec, err := nlq.Translate(input.Query)
	if err != nil {
		return nil, err
	}

	return &TranslateOutput{
		Original:      input.Query,
		ParsedFilters: spec.Map(),
		Rules:         nlq.Explain(input.Query),
	}, nil
}
