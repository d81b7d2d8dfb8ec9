// Package nlq translates free-text queries into filter specs using a fixed,
// ordered table of lexical rules. It is a pattern matcher, not a parser.
package nlq

import (
	"slices"

	"github.com/hpungsan/lexis/internal/errors"
	"github.com/hpungsan/lexis/internal/filter"
)

// Translate derives a filter.Spec from query.
//
// Rules are independent and cumulative. Length bounds intersect; for
// contains_character a named letter beats "first vowel", which beats a
// generic "contains X". A query no rule recognizes is UNPARSEABLE_QUERY; a
// spec no record could satisfy is CONFLICTING_FILTERS.
func Translate(query string) (filter.Spec, error) {
	spec, _, err := translate(query)
	return spec, err
}

// Explain returns the names of the rules that match query, in table order.
func Explain(query string) []string {
	_, matched, _ := translate(query)
	return matched
}

func translate(query string) (filter.Spec, []string, error) {
	normalized := Normalize(query)

	var (
		acc     accumulator
		matched []string
	)
	for _, r := range rules {
		m := r.pattern.FindAllStringSubmatch(normalized, -1)
		if len(m) == 0 {
			continue
		}
		if err := r.apply(m, &acc); err != nil {
			return filter.Spec{}, matched, errors.NewUnparseableQuery(query)
		}
		matched = append(matched, r.name)
	}
	if len(matched) == 0 {
		return filter.Spec{}, nil, errors.NewUnparseableQuery(query)
	}

	spec := acc.spec()
	if reason := spec.Contradiction(); reason != "" {
		return filter.Spec{}, matched, errors.NewConflictingFilters(query, reason)
	}
	if err := spec.Validate(); err != nil {
		return filter.Spec{}, matched, err
	}
	return spec, matched, nil
}

// spec merges the accumulated effects into one immutable Spec.
func (a *accumulator) spec() filter.Spec {
	var s filter.Spec
	if a.palindrome {
		s.IsPalindrome = filter.Bool(true)
	}
	if a.singleWord {
		s.WordCount = filter.Int(1)
	}
	if len(a.mins) > 0 {
		s.MinLength = filter.Int(slices.Max(a.mins))
	}
	if len(a.maxs) > 0 {
		s.MaxLength = filter.Int(slices.Min(a.maxs))
	}
	if a.char != "" {
		c := a.char
		s.ContainsCharacter = &c
	}
	return s
}
