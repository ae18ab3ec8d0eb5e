package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name string
		s1   string
		s2   string
		want int
	}{
		{"identical", "hopewell", "hopewell", 0},
		{"empty vs empty", "", "", 0},
		{"empty vs word", "", "negro", 5},
		{"word vs empty", "negro", "", 5},
		{"classic kitten", "kitten", "sitting", 3},
		{"single substitution", "jyhn", "john", 1},
		{"single insertion", "wm", "wim", 1},
		{"transposition counts as two", "jmaes", "james", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.s1, tt.s2))
		})
	}
}

func TestLevenshtein_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"slave schedule", "slave schdule"},
		{"", "anything"},
		{"abc", "xyz"},
	}
	for _, p := range pairs {
		assert.Equal(t, Levenshtein(p[0], p[1]), Levenshtein(p[1], p[0]))
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Slave Schedule", "slave schedule"},
		{"collapses whitespace", "six   negroes\t\nsold", "six negroes sold"},
		{"strips punctuation", "John's estate, viz: cattle.", "johns estate viz cattle"},
		{"trims", "  aged forty  ", "aged forty"},
		{"whitespace only", "   \t\n ", ""},
		{"keeps digits and underscores", "lot_4 valued 800", "lot_4 valued 800"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.input))
		})
	}
}

func TestSimilarityRatio(t *testing.T) {
	t.Run("perfect match is exactly 1", func(t *testing.T) {
		assert.Equal(t, 1.0, SimilarityRatio("the estate of Wm Hopewell", "the estate of Wm Hopewell"))
	})

	t.Run("both empty is exactly 1 by convention", func(t *testing.T) {
		assert.Equal(t, 1.0, SimilarityRatio("", ""))
	})

	t.Run("punctuation-only pair is a perfect match after normalization", func(t *testing.T) {
		assert.Equal(t, 1.0, SimilarityRatio("...", "!!!"))
	})

	t.Run("disjoint strings score near zero", func(t *testing.T) {
		ratio := SimilarityRatio("aaaa", "zzzz")
		assert.Equal(t, 0.0, ratio)
	})

	t.Run("normalization applies before scoring", func(t *testing.T) {
		// raw strings differ in case and punctuation only
		assert.Equal(t, 1.0, SimilarityRatio("Six Negroes, sold!", "six negroes sold"))
	})

	t.Run("clamped to [0,1]", func(t *testing.T) {
		ratio := SimilarityRatio("ab", "zyxwvu")
		assert.GreaterOrEqual(t, ratio, 0.0)
		assert.LessOrEqual(t, ratio, 1.0)
	})
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{}, Tokenize(""))
	assert.Equal(t, []string{"six", "negroes", "six"}, Tokenize("six negroes six"))
}
