package filter

import (
	"fmt"
	"strings"

	"github.com/hpungsan/lexis/internal/analysis"
)

// Matches reports whether rec satisfies every present predicate.
func (s Spec) Matches(rec *analysis.Record) bool {
	p := rec.Properties

	if s.IsPalindrome != nil && p.IsPalindrome != *s.IsPalindrome {
		return false
	}
	if s.MinLength != nil && p.Length < *s.MinLength {
		return false
	}
	if s.MaxLength != nil && p.Length > *s.MaxLength {
		return false
	}
	if s.WordCount != nil && p.WordCount != *s.WordCount {
		return false
	}
	if s.ContainsCharacter != nil && !strings.Contains(rec.Value, *s.ContainsCharacter) {
		return false
	}
	return true
}

// Apply returns the records matching spec, preserving their relative order.
func Apply(spec Spec, records []*analysis.Record) []*analysis.Record {
	out := make([]*analysis.Record, 0, len(records))
	for _, rec := range records {
		if spec.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Contradiction describes why no record could satisfy spec, or returns ""
// when the predicates are jointly satisfiable as far as bounds go.
func (s Spec) Contradiction() string {
	if s.MinLength != nil && s.MaxLength != nil && *s.MinLength > *s.MaxLength {
		return fmt.Sprintf("min_length %d is greater than max_length %d", *s.MinLength, *s.MaxLength)
	}
	if s.MaxLength != nil && *s.MaxLength < 0 {
		return fmt.Sprintf("max_length %d is negative", *s.MaxLength)
	}
	return ""
}

// Map renders the present predicates as a plain map, the shape echoed back
// to clients as "filters_applied" / "parsed_filters".
func (s Spec) Map() map[string]any {
	m := make(map[string]any)
	if s.IsPalindrome != nil {
		m[ParamIsPalindrome] = *s.IsPalindrome
	}
	if s.MinLength != nil {
		m[ParamMinLength] = *s.MinLength
	}
	if s.MaxLength != nil {
		m[ParamMaxLength] = *s.MaxLength
	}
	if s.WordCount != nil {
		m[ParamWordCount] = *s.WordCount
	}
	if s.ContainsCharacter != nil {
		m[ParamContainsCharacter] = *s.ContainsCharacter
	}
	return m
}
