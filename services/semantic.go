package services

import "math"

// SemanticScore returns the cosine similarity of two embedding vectors scaled
// to 0-100. Empty or zero vectors score 0, which keeps blank submissions from
// ever looking similar to anything.
func SemanticScore(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		fa := float64(a[i])
		fb := float64(b[i])
		dot += fa * fb
		na += fa * fa
		nb += fb * fb
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)) * 100
}
