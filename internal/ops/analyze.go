package ops

import (
	"time"

	"github.com/hpungsan/lexis/internal/analysis"
	"github.com/hpungsan/lexis/internal/config"
)

// AnalyzeInput contains parameters for the Analyze operation.
type AnalyzeInput struct {
	Value string
}

// Analyze returns the record Create would store for a value, without
// touching any store.
func Analyze(cfg *config.Config, input AnalyzeInput) (*analysis.Record, error) {
	if err := checkSize(input.Value, cfg.MaxValueChars); err != nil {
		return nil, err
	}
	return analysis.NewRecord(input.Value, time.Now()), nil
}
