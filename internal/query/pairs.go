package query

import (
	"fmt"
	"strings"

	"github.com/hyperjump/wordsim/internal/models"
)

// DefaultPairs returns the built-in query set: similarities of king against
// queen, crown, and laugh, then the distances of the same pairs.
func DefaultPairs() []models.Pair {
	return []models.Pair{
		{A: "king", B: "queen", Kind: models.KindSimilarity, Description: "king and queen!"},
		{A: "king", B: "crown", Kind: models.KindSimilarity},
		{A: "king", B: "laugh", Kind: models.KindSimilarity},
		{A: "king", B: "queen", Kind: models.KindDistance},
		{A: "king", B: "crown", Kind: models.KindDistance},
		{A: "king", B: "laugh", Kind: models.KindDistance},
	}
}

// KindsFor maps "similarity", "distance", or "both" to the kinds to generate.
func KindsFor(s string) ([]models.Kind, error) {
	if strings.EqualFold(strings.TrimSpace(s), "both") {
		return []models.Kind{models.KindSimilarity, models.KindDistance}, nil
	}
	kind, err := parseKindStrict(s)
	if err != nil {
		return nil, err
	}
	return []models.Kind{kind}, nil
}

// parseKindStrict is models.ParseKind without the empty-string default.
func parseKindStrict(s string) (models.Kind, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("query kind is required (similarity, distance, or both)")
	}
	return models.ParseKind(s)
}

// FromWords consumes words two at a time. Every kind is applied to all
// pairs before moving to the next kind, so similarities print first.
func FromWords(words []string, kinds []models.Kind) ([]models.Pair, error) {
	if len(words) == 0 || len(words)%2 != 0 {
		return nil, fmt.Errorf("expected an even number of words, got %d", len(words))
	}
	pairs := make([]models.Pair, 0, len(words)/2*len(kinds))
	for _, kind := range kinds {
		for i := 0; i < len(words); i += 2 {
			pairs = append(pairs, models.Pair{A: words[i], B: words[i+1], Kind: kind})
		}
	}
	return pairs, nil
}
