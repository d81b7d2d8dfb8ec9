package nlq

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Character source priorities. A higher value wins when several rules
// name a character in the same query.
const (
	charFromContains = iota + 1
	charFromVowel
	charFromLetter
)

// vowelStandIn is the character used for "first vowel" queries.
const vowelStandIn = "a"

// rule is one independent (pattern, field-setter) pair.
type rule struct {
	name    string
	pattern *regexp.Regexp
	apply   func(matches [][]string, acc *accumulator) error
}

// rules are evaluated in order against the normalized query. Each rule sees
// every non-overlapping match of its own pattern.
var rules = []rule{
	{
		name:    "palindrome",
		pattern: regexp.MustCompile(`\bpalindrom(?:e|es|ic)\b`),
		apply: func(_ [][]string, acc *accumulator) error {
			acc.palindrome = true
			return nil
		},
	},
	{
		name:    "single_word",
		pattern: regexp.MustCompile(`\b(?:single|one) word\b`),
		apply: func(_ [][]string, acc *accumulator) error {
			acc.singleWord = true
			return nil
		},
	},
	{
		name:    "longer_than",
		pattern: regexp.MustCompile(`\b(?:longer|more) than (\d+) (?:characters?|chars?)\b`),
		apply: func(matches [][]string, acc *accumulator) error {
			for _, m := range matches {
				n, err := parseCount(m[1])
				if err != nil {
					return err
				}
				acc.mins = append(acc.mins, n+1)
			}
			return nil
		},
	},
	{
		name:    "shorter_than",
		pattern: regexp.MustCompile(`\b(?:shorter|fewer|less) than (\d+) (?:characters?|chars?)\b`),
		apply: func(matches [][]string, acc *accumulator) error {
			for _, m := range matches {
				n, err := parseCount(m[1])
				if err != nil {
					return err
				}
				acc.maxs = append(acc.maxs, n-1)
			}
			return nil
		},
	},
	{
		name:    "letter",
		pattern: regexp.MustCompile(`\bletter ['"]?(\pL)['"]?(?:[^\pL\pN]|$)`),
		apply: func(matches [][]string, acc *accumulator) error {
			acc.offerChar(matches[0][1], charFromLetter)
			return nil
		},
	},
	{
		name:    "first_vowel",
		pattern: regexp.MustCompile(`\bfirst vowel\b`),
		apply: func(_ [][]string, acc *accumulator) error {
			acc.offerChar(vowelStandIn, charFromVowel)
			return nil
		},
	},
	{
		name:    "contains",
		pattern: regexp.MustCompile(`\bcontain(?:s|ing) ['"]?(\S)['"]?(?:[^\pL\pN]|$)`),
		apply: func(matches [][]string, acc *accumulator) error {
			acc.offerChar(matches[0][1], charFromContains)
			return nil
		},
	},
}

// parseCount parses a character count taken from a query.
func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n >= math.MaxInt {
		return 0, fmt.Errorf("character count %q is out of range", s)
	}
	return n, nil
}

// accumulator collects rule effects before they are merged into a Spec.
type accumulator struct {
	palindrome bool
	singleWord bool
	mins       []int
	maxs       []int
	char       string
	charPrio   int
}

// offerChar records c unless a higher-priority source already named one.
func (a *accumulator) offerChar(c string, prio int) {
	if prio > a.charPrio {
		a.char = c
		a.charPrio = prio
	}
}
