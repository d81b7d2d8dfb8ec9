package ops

import (
	"context"

	"github.com/hpungsan/lexis/internal/analysis"
	"github.com/hpungsan/lexis/internal/errors"
	"github.com/hpungsan/lexis/internal/store"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	Value string // literal string, not its digest
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// Delete removes the record for a literal value.
func Delete(ctx context.Context, st store.Store, input DeleteInput) (*DeleteOutput, error) {
	id := analysis.Digest(input.Value)

	deleted, err := st.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, errors.NewNotFound(id)
	}

	return &DeleteOutput{
		Deleted: true,
		ID:      id,
	}, nil
}
