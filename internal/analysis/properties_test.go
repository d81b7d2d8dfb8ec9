package analysis

import (
	"testing"
	"time"
)

func TestDigest(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"hello", "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
	}

	for _, tt := range tests {
		if got := Digest(tt.input); got != tt.want {
			t.Errorf("Digest(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDigest_Stable(t *testing.T) {
	inputs := []string{"", "a", "Hello, World!", "  spaced  out  ", "日本語"}
	for _, in := range inputs {
		first := Digest(in)
		for range 3 {
			if got := Digest(in); got != first {
				t.Errorf("Digest(%q) not stable: %q vs %q", in, got, first)
			}
		}
		if len(first) != 64 {
			t.Errorf("Digest(%q) length = %d, want 64", in, len(first))
		}
	}
}

func TestIsPalindrome(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"a", true},
		{"aa", true},
		{"aba", true},
		{"ab", false},
		{"Level", true},
		{"level!", false},
		{"RaceCar", true},
		{"taco cat", false},
		{"a b a", true},
		{"Ünü", true},
	}

	for _, tt := range tests {
		if got := IsPalindrome(tt.input); got != tt.want {
			t.Errorf("IsPalindrome(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsPalindrome_ReverseConsistent(t *testing.T) {
	inputs := []string{"Level", "level!", "abc", "Noon", "x y"}
	for _, in := range inputs {
		runes := []rune(in)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		rev := string(runes)
		if IsPalindrome(in) != IsPalindrome(rev) {
			t.Errorf("IsPalindrome(%q) != IsPalindrome(%q)", in, rev)
		}
	}
}

func TestCountChars(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"hello", 5},
		{"héllo", 5},
		{"日本語", 3},
		{"a b", 3},
	}

	for _, tt := range tests {
		if got := CountChars(tt.input); got != tt.want {
			t.Errorf("CountChars(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestCountUnique(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"aaa", 1},
		{"aA", 2},
		{"hello world", 8},
	}

	for _, tt := range tests {
		if got := CountUnique(tt.input); got != tt.want {
			t.Errorf("CountUnique(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", EmptyWordCount},
		{"   ", EmptyWordCount},
		{"\t\n", EmptyWordCount},
		{"one", 1},
		{"  one  ", 1},
		{"two words", 2},
		{"runs   of \t whitespace\nhere", 4},
	}

	for _, tt := range tests {
		if got := CountWords(tt.input); got != tt.want {
			t.Errorf("CountWords(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestEmptyWordCountIsZero(t *testing.T) {
	if EmptyWordCount != 0 {
		t.Fatalf("EmptyWordCount = %d, want 0", EmptyWordCount)
	}
}

func TestFrequencies_CaseSensitive(t *testing.T) {
	freq := Frequencies("aAba")

	if freq["a"] != 2 {
		t.Errorf(`freq["a"] = %d, want 2`, freq["a"])
	}
	if freq["A"] != 1 {
		t.Errorf(`freq["A"] = %d, want 1`, freq["A"])
	}
	if freq["b"] != 1 {
		t.Errorf(`freq["b"] = %d, want 1`, freq["b"])
	}
	if len(freq) != 3 {
		t.Errorf("len(freq) = %d, want 3", len(freq))
	}
}

func TestCompute_EmptyString(t *testing.T) {
	p := Compute("")

	if p.Length != 0 {
		t.Errorf("Length = %d, want 0", p.Length)
	}
	if !p.IsPalindrome {
		t.Error("IsPalindrome = false, want true")
	}
	if p.UniqueCharacters != 0 {
		t.Errorf("UniqueCharacters = %d, want 0", p.UniqueCharacters)
	}
	if p.WordCount != 0 {
		t.Errorf("WordCount = %d, want 0", p.WordCount)
	}
	if len(p.CharacterFrequencyMap) != 0 {
		t.Errorf("CharacterFrequencyMap = %v, want empty", p.CharacterFrequencyMap)
	}
	if p.CharacterFrequencyMap == nil {
		t.Error("CharacterFrequencyMap should be non-nil")
	}
}

func TestCompute_Sentence(t *testing.T) {
	p := Compute("Hello world")

	if p.Length != 11 {
		t.Errorf("Length = %d, want 11", p.Length)
	}
	if p.IsPalindrome {
		t.Error("IsPalindrome = true, want false")
	}
	if p.UniqueCharacters != 8 {
		t.Errorf("UniqueCharacters = %d, want 8", p.UniqueCharacters)
	}
	if p.WordCount != 2 {
		t.Errorf("WordCount = %d, want 2", p.WordCount)
	}
	if p.CharacterFrequencyMap["l"] != 3 {
		t.Errorf(`freq["l"] = %d, want 3`, p.CharacterFrequencyMap["l"])
	}
	if p.SHA256Hash != Digest("Hello world") {
		t.Errorf("SHA256Hash = %q, want Digest of value", p.SHA256Hash)
	}
}

func TestNewRecord(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	rec := NewRecord("a man a plan", now)

	if rec.ID != rec.Properties.SHA256Hash {
		t.Errorf("ID = %q, want SHA256Hash %q", rec.ID, rec.Properties.SHA256Hash)
	}
	if rec.Value != "a man a plan" {
		t.Errorf("Value = %q", rec.Value)
	}
	if rec.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt location = %v, want UTC", rec.CreatedAt.Location())
	}
	if !rec.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", rec.CreatedAt, now)
	}
}
