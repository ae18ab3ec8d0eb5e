package service

import (
	"regexp"
	"strings"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// NormalizeText prepares a string for similarity scoring: lowercase,
// punctuation stripped, whitespace runs collapsed to a single space.
func NormalizeText(text string) string {
	s := strings.ToLower(text)
	s = nonWordRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Tokenize splits normalized text into words. Duplicates are retained.
func Tokenize(normalized string) []string {
	if normalized == "" {
		return []string{}
	}
	return strings.Fields(normalized)
}

// SimilarityRatio calculates similarity of two raw strings after
// normalization, as 1 - distance/maxLen clamped to [0,1]. Two strings
// that both normalize to empty are a perfect match by convention.
func SimilarityRatio(s1, s2 string) float64 {
	n1 := NormalizeText(s1)
	n2 := NormalizeText(s2)

	maxLen := float64(max(len([]rune(n1)), len([]rune(n2))))
	if maxLen == 0 {
		return 1.0
	}

	distance := Levenshtein(n1, n2)
	ratio := 1.0 - (float64(distance) / maxLen)
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

// Levenshtein computes the classic unit-cost edit distance using a
// single rolling row.
func Levenshtein(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)
	len1, len2 := len(r1), len(r2)

	row := make([]int, len2+1)
	for i := 0; i <= len2; i++ {
		row[i] = i
	}

	for i := 1; i <= len1; i++ {
		prev := i
		for j := 1; j <= len2; j++ {
			val := row[j]
			if r1[i-1] == r2[j-1] {
				val = row[j-1]
			} else {
				val = min(min(row[j-1]+1, prev+1), row[j]+1)
			}
			row[j-1] = prev
			prev = val
		}
		row[len2] = prev
	}
	return row[len2]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
