package services

import "math"

const (
	semanticWeight = 0.6
	lexicalWeight  = 0.4

	// DuplicateThreshold is the fused score at or above which two submissions
	// count as duplicates. Shared by the student check and the teacher scan.
	DuplicateThreshold = 60

	// IdeaGateThreshold guards the lightweight idea form. Applied per field
	// (title, description), lexical only.
	IdeaGateThreshold = 75
)

// SimilarityScore breaks one comparison into its sub-scores.
type SimilarityScore struct {
	Semantic float64 `json:"semantic"`
	Lexical  int     `json:"lexical"`
	Fused    int     `json:"fused"`
}

// FuseScores blends the semantic and lexical sub-scores into the final 0-100
// similarity. Symmetric, since both sub-scores are.
func FuseScores(semantic float64, lexical int) SimilarityScore {
	fused := int(math.Round(semantic*semanticWeight + float64(lexical)*lexicalWeight))
	if fused < 0 {
		fused = 0
	}
	if fused > 100 {
		fused = 100
	}
	return SimilarityScore{Semantic: semantic, Lexical: lexical, Fused: fused}
}
