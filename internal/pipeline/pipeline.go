// Package pipeline runs batch feedback submissions: classify every item,
// persist every item, return per-item results in input order.
package pipeline

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"

	"pulsecheck-backend/internal/classifier"
	"pulsecheck-backend/internal/models"
)

// maxConcurrentClassifications bounds parallel calls to the classifier so a
// large batch cannot flood the Gemini API.
const maxConcurrentClassifications = 8

// ErrEmptyBatch rejects submissions with no feedback texts.
var ErrEmptyBatch = errors.New("empty feedback batch")

var classifiedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "feedback_classified_total",
	Help: "Feedback items classified, by resulting category.",
}, []string{"category"})

// Store is the slice of the feedback store the pipeline writes to.
type Store interface {
	Append(item *models.Feedback) (*models.Feedback, error)
}

// Result pairs one submitted text with its assigned category.
type Result struct {
	Text     string          `json:"text"`
	Category models.Category `json:"category"`
}

type Pipeline struct {
	store      Store
	classifier classifier.Classifier
	logger     echo.Logger
}

func New(store Store, c classifier.Classifier, logger echo.Logger) *Pipeline {
	return &Pipeline{store: store, classifier: c, logger: logger}
}

// Submit classifies and persists a batch of feedback texts. Results come
// back index-aligned with texts. Classification failures surface as the
// Error category on the affected item; persistence failures are logged and
// do not remove the item from the response.
func (p *Pipeline) Submit(ctx context.Context, texts []string, feedbackType, branch string, userID *uint) ([]Result, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyBatch
	}

	if feedbackType == "" {
		feedbackType = models.DefaultFeedbackType
	}
	if branch == "" {
		branch = models.DefaultBranch
	}

	results := make([]Result, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentClassifications)
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			category := p.classifier.Classify(ctx, text)
			classifiedTotal.WithLabelValues(string(category)).Inc()
			results[i] = Result{Text: text, Category: category}

			item := &models.Feedback{
				UserID:       userID,
				Content:      text,
				Category:     category,
				FeedbackType: feedbackType,
				Branch:       branch,
			}
			if _, err := p.store.Append(item); err != nil {
				// The caller still gets the classification; the entry is
				// just missing from history and analytics.
				p.logger.Errorf("persisting feedback item: %v", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
