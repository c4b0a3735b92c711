package services

import "testing"

func TestComparisonText(t *testing.T) {
	got := ComparisonText("Face Recognition", "AI Based", "Python")
	want := "face recognition ai based python"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestWeightedRatioIdentical(t *testing.T) {
	if score := WeightedRatio("ai drone system", "ai drone system"); score != 100 {
		t.Errorf("Expected identical strings to score 100, got %d", score)
	}
}

func TestWeightedRatioSymmetry(t *testing.T) {
	a := "face recognition system ai based python"
	b := "face recognition ai based python"
	if WeightedRatio(a, b) != WeightedRatio(b, a) {
		t.Errorf("Expected symmetric ratio, got %d and %d", WeightedRatio(a, b), WeightedRatio(b, a))
	}
}

func TestTokenSortRatioReorderedTokens(t *testing.T) {
	if score := TokenSortRatio("system ai", "ai system"); score != 100 {
		t.Errorf("Expected reordered tokens to score 100, got %d", score)
	}
}

func TestTokenSortRatioNearDuplicateTitle(t *testing.T) {
	score := TokenSortRatio("ai system", "ai system v2")
	if score <= IdeaGateThreshold {
		t.Errorf("Expected near-duplicate title to cross the gate threshold, got %d", score)
	}
}
