// Package classifier assigns a sentiment category to free-text feedback.
// Two variants exist behind one interface: a Gemini-backed classifier and a
// random fallback used when no API key is configured.
package classifier

import (
	"context"
	"strings"

	"pulsecheck-backend/internal/models"
)

// Classifier turns one feedback text into a sentiment category. Classify
// never returns an error: a failed call maps to models.CategoryError so a
// single bad item cannot abort a batch.
type Classifier interface {
	Classify(ctx context.Context, text string) models.Category

	// ModelBacked reports whether classifications come from a real model
	// or from the offline fallback.
	ModelBacked() bool
}

// Normalize maps raw model output onto the closed category set. Matching is
// case-insensitive on substrings so that chatty responses like "Category:
// Appreciation." still land; anything unrecognized defaults to Concerns.
func Normalize(raw string) models.Category {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "appreciation"):
		return models.CategoryAppreciation
	case strings.Contains(lower, "suggestion"):
		return models.CategorySuggestions
	case strings.Contains(lower, "concern"):
		return models.CategoryConcerns
	default:
		return models.CategoryConcerns
	}
}
