package analysis

import "time"

// Record is a stored string together with its computed properties.
// A record is immutable once created; its ID is the SHA-256 digest of Value.
type Record struct {
	// ID is the lowercase hex SHA-256 digest of the raw value bytes
	ID string `json:"id"`

	// Value is the string exactly as submitted
	Value string `json:"value"`

	// Properties are computed once at creation time
	Properties Properties `json:"properties"`

	// CreatedAt is the UTC time of first insertion
	CreatedAt time.Time `json:"created_at"`
}

// Properties is the fixed set of attributes derived from a value.
type Properties struct {
	// Length is the character count (runes, not bytes)
	Length int `json:"length"`

	// IsPalindrome reports whether the case-folded value reads the same reversed
	IsPalindrome bool `json:"is_palindrome"`

	// UniqueCharacters counts distinct characters, case-sensitive
	UniqueCharacters int `json:"unique_characters"`

	// WordCount counts whitespace-delimited tokens
	WordCount int `json:"word_count"`

	// SHA256Hash duplicates the record ID so it travels with the bundle
	SHA256Hash string `json:"sha256_hash"`

	// CharacterFrequencyMap maps each character to its occurrence count, case-sensitive
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}

// NewRecord computes the properties of value and stamps it with now (in UTC).
func NewRecord(value string, now time.Time) *Record {
	props := Compute(value)
	return &Record{
		ID:         props.SHA256Hash,
		Value:      value,
		Properties: props,
		CreatedAt:  now.UTC(),
	}
}

// Clone returns a deep copy of r so callers cannot mutate stored state.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	c.Properties.CharacterFrequencyMap = make(map[string]int, len(r.Properties.CharacterFrequencyMap))
	for k, v := range r.Properties.CharacterFrequencyMap {
		c.Properties.CharacterFrequencyMap[k] = v
	}
	return &c
}
