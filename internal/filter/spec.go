// Package filter defines the structured filter applied to stored records and
// the engine that evaluates it. Both the query-parameter path and the
// natural-language path produce a Spec and share Apply.
package filter

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/hpungsan/lexis/internal/errors"
)

// Query parameter names.
const (
	ParamIsPalindrome      = "is_palindrome"
	ParamMinLength         = "min_length"
	ParamMaxLength         = "max_length"
	ParamWordCount         = "word_count"
	ParamContainsCharacter = "contains_character"
)

// Spec is a set of optional predicates. A nil field imposes no constraint;
// all present predicates are ANDed.
type Spec struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty" validate:"omitempty,min=0"`
	MaxLength         *int    `json:"max_length,omitempty" validate:"omitempty,min=0"`
	WordCount         *int    `json:"word_count,omitempty" validate:"omitempty,min=0"`
	ContainsCharacter *string `json:"contains_character,omitempty" validate:"omitempty,len=1"`
}

var validate = validator.New()

// fieldParams maps struct field names to their query parameter names.
var fieldParams = map[string]string{
	"MinLength":         ParamMinLength,
	"MaxLength":         ParamMaxLength,
	"WordCount":         ParamWordCount,
	"ContainsCharacter": ParamContainsCharacter,
}

// IsEmpty reports whether the spec has no predicates.
func (s Spec) IsEmpty() bool {
	return s.IsPalindrome == nil && s.MinLength == nil && s.MaxLength == nil &&
		s.WordCount == nil && s.ContainsCharacter == nil
}

// Validate checks every present field against its rule and reports the
// first violation as INVALID_QUERY_PARAMETER.
func (s Spec) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return errors.NewInternal(err)
	}
	return formatFieldError(validationErrors[0])
}

// formatFieldError formats a single field validation error.
func formatFieldError(e validator.FieldError) error {
	param := fieldParams[e.StructField()]
	switch e.Tag() {
	case "min":
		return errors.NewInvalidQueryParameter(param, "must be a non-negative integer")
	case "len":
		return errors.NewInvalidQueryParameter(param, "must be exactly one character")
	default:
		return errors.NewInvalidQueryParameter(param, "is invalid")
	}
}

// ParseQuery builds a Spec from query parameters. Unknown parameters are
// ignored; the first invalid parameter is reported.
func ParseQuery(values url.Values) (Spec, error) {
	var spec Spec

	if values.Has(ParamIsPalindrome) {
		switch values.Get(ParamIsPalindrome) {
		case "true":
			spec.IsPalindrome = Bool(true)
		case "false":
			spec.IsPalindrome = Bool(false)
		default:
			return Spec{}, errors.NewInvalidQueryParameter(ParamIsPalindrome, `must be "true" or "false"`)
		}
	}

	for _, p := range []struct {
		name string
		dst  **int
	}{
		{ParamMinLength, &spec.MinLength},
		{ParamMaxLength, &spec.MaxLength},
		{ParamWordCount, &spec.WordCount},
	} {
		if !values.Has(p.name) {
			continue
		}
		n, err := parseNonNegative(values.Get(p.name))
		if err != nil {
			return Spec{}, errors.NewInvalidQueryParameter(p.name, "must be a non-negative integer")
		}
		*p.dst = &n
	}

	if values.Has(ParamContainsCharacter) {
		c := values.Get(ParamContainsCharacter)
		if utf8.RuneCountInString(c) != 1 {
			return Spec{}, errors.NewInvalidQueryParameter(ParamContainsCharacter, "must be exactly one character")
		}
		spec.ContainsCharacter = &c
	}

	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// parseNonNegative accepts only plain decimal digits.
func parseNonNegative(s string) (int, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s)
}

// Int returns a pointer to n, for building specs in code.
func Int(n int) *int { return &n }

// Bool returns a pointer to b, for building specs in code.
func Bool(b bool) *bool { return &b }

// Char returns a pointer to the one-character string for r.
func Char(r rune) *string {
	s := string(r)
	return &s
}
