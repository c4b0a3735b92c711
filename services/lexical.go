package services

import (
	"fmt"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// ComparisonText flattens a submission into the lower-cased string the
// similarity pipeline scores: "{title} {description} {technology}".
func ComparisonText(title, description, technology string) string {
	return strings.ToLower(fmt.Sprintf("%s %s %s", title, description, technology))
}

// WeightedRatio scores two strings with a fuzzy ratio tolerant of word
// reordering and partial overlaps, 0-100.
func WeightedRatio(a, b string) int {
	return fuzzy.WRatio(a, b)
}

// TokenSortRatio scores two strings after sorting their tokens, 0-100. Used by
// the lightweight idea gate only.
func TokenSortRatio(a, b string) int {
	return fuzzy.TokenSortRatio(a, b)
}
