package sentiment

import (
	"context"
	"errors"

	"github.com/aakritidhardubey/sentiment-x-analysis/internal/models"
)

// ErrClassification marks per-item failures: a model call that errored,
// an unparseable response, or a label outside the recognized set. The
// pipeline absorbs these; they never abort a run.
var ErrClassification = errors.New("classification failed")

// Classifier assigns a sentiment label to one piece of text.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.SentimentLabel, error)
}
