package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EmptyWordCount is the word count reported for empty or whitespace-only values.
const EmptyWordCount = 0

// Compute derives the property bundle for value. It never fails and is
// deterministic: equal inputs yield equal bundles.
func Compute(value string) Properties {
	return Properties{
		Length:                CountChars(value),
		IsPalindrome:          IsPalindrome(value),
		UniqueCharacters:      CountUnique(value),
		WordCount:             CountWords(value),
		SHA256Hash:            Digest(value),
		CharacterFrequencyMap: Frequencies(value),
	}
}

// Digest returns the lowercase hex SHA-256 of the raw bytes of value.
func Digest(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// CountChars returns the character count as runes (not bytes).
// This correctly handles multi-byte UTF-8 characters.
func CountChars(value string) int {
	return utf8.RuneCountInString(value)
}

// IsPalindrome folds case rune by rune and compares the sequence to its
// reverse. Whitespace and punctuation are significant.
func IsPalindrome(value string) bool {
	runes := []rune(value)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		if unicode.ToLower(runes[i]) != unicode.ToLower(runes[j]) {
			return false
		}
	}
	return true
}

// CountUnique returns the number of distinct runes in value. Case-sensitive.
func CountUnique(value string) int {
	seen := make(map[rune]struct{})
	for _, r := range value {
		seen[r] = struct{}{}
	}
	return len(seen)
}

// CountWords returns the number of whitespace-delimited tokens. Runs of
// whitespace count as one separator; empty or whitespace-only values
// report EmptyWordCount.
func CountWords(value string) int {
	words := strings.Fields(value)
	if len(words) == 0 {
		return EmptyWordCount
	}
	return len(words)
}

// Frequencies counts occurrences of each character, keyed by the raw
// (case-sensitive) character.
func Frequencies(value string) map[string]int {
	freq := make(map[string]int)
	for _, r := range value {
		freq[string(r)]++
	}
	return freq
}
