// Package ops implements the service operations shared by the HTTP API, the
// MCP server and the CLI. Each operation takes a store and a typed input and
// returns a typed output or a *errors.LexisError.
package ops

import (
	"github.com/hpungsan/lexis/internal/analysis"
	"github.com/hpungsan/lexis/internal/errors"
)

// FieldValue is the request field carrying the string to analyze.
const FieldValue = "value"

// ValueFromArgs extracts the string to analyze from a decoded request body.
// An absent or null value is MISSING_FIELD; any other non-string is WRONG_TYPE.
func ValueFromArgs(args map[string]any) (string, error) {
	if args == nil {
		return "", errors.NewInvalidRequest("request body must be a JSON object")
	}

	raw, ok := args[FieldValue]
	if !ok || raw == nil {
		return "", errors.NewMissingField(FieldValue)
	}

	value, ok := raw.(string)
	if !ok {
		return "", errors.NewWrongType(FieldValue, "string")
	}
	return value, nil
}

// checkSize enforces the configured value limit. maxChars <= 0 means unlimited.
func checkSize(value string, maxChars int) error {
	if maxChars <= 0 {
		return nil
	}
	if n := analysis.CountChars(value); n > maxChars {
		return errors.NewValueTooLarge(maxChars, n)
	}
	return nil
}

// nonNil ensures we return an empty array rather than nil.
func nonNil(records []*analysis.Record) []*analysis.Record {
	if records == nil {
		return []*analysis.Record{}
	}
	return records
}
