package services

import (
	"math"
	"testing"
)

func TestSemanticScoreIdenticalVectors(t *testing.T) {
	v := []float32{0.3, -0.5, 0.8}
	score := SemanticScore(v, v)
	if math.Abs(score-100) > 1e-6 {
		t.Errorf("Expected identical vectors to score 100, got %f", score)
	}
}

func TestSemanticScoreOrthogonalVectors(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}
	score := SemanticScore(a, b)
	if math.Abs(score) > 1e-6 {
		t.Errorf("Expected orthogonal vectors to score 0, got %f", score)
	}
}

func TestSemanticScoreSymmetry(t *testing.T) {
	a := []float32{0.2, 0.9, -0.1}
	b := []float32{0.7, 0.1, 0.4}
	if SemanticScore(a, b) != SemanticScore(b, a) {
		t.Errorf("Expected symmetric scores, got %f and %f", SemanticScore(a, b), SemanticScore(b, a))
	}
}

func TestSemanticScoreDegenerateVectors(t *testing.T) {
	if score := SemanticScore(nil, []float32{1, 2}); score != 0 {
		t.Errorf("Expected empty vector to score 0, got %f", score)
	}
	if score := SemanticScore([]float32{0, 0}, []float32{1, 2}); score != 0 {
		t.Errorf("Expected zero vector to score 0, got %f", score)
	}
}
