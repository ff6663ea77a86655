package services

import (
	"strings"
)

// LevenshteinDistance calculates the edit distance between two
// case-normalized strings. Insertion, deletion, and substitution each
// cost 1.
func LevenshteinDistance(s1, s2 string) int {
	s1 = strings.ToLower(s1)
	s2 = strings.ToLower(s2)

	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	// Create matrix
	matrix := make([][]int, len(s2)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s1)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(s1); j++ {
		matrix[0][j] = j
	}

	// Fill in the matrix
	for i := 1; i <= len(s2); i++ {
		for j := 1; j <= len(s1); j++ {
			cost := 1
			if s1[j-1] == s2[i-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j-1]+cost, // substitution
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j]+1,      // deletion
			)
		}
	}

	return matrix[len(s2)][len(s1)]
}

// Similarity scores two strings in [0, 1]: 1 minus the edit distance
// normalized by the longer length. Two empty strings score 1.0.
func Similarity(s1, s2 string) float64 {
	maxLen := len(s1)
	if len(s2) > maxLen {
		maxLen = len(s2)
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(LevenshteinDistance(s1, s2))/float64(maxLen)
}
