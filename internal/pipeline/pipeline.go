package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aakritidhardubey/sentiment-x-analysis/internal/models"
	"github.com/aakritidhardubey/sentiment-x-analysis/internal/sentiment"
)

const defaultWorkers = 4

// Source produces up to limit posts for a query. Implementations own all
// network I/O and any retry policy.
type Source interface {
	Fetch(ctx context.Context, query string, limit int) ([]models.Post, error)
}

// Pipeline drives Source -> Classifier -> Tally and finalizes a report.
// It performs no I/O of its own.
type Pipeline struct {
	Source     Source
	Classifier sentiment.Classifier

	// Workers bounds concurrent classification; 0 means defaultWorkers.
	Workers int

	// OnClassified, when set, observes each successfully classified post.
	// Used by result sinks; it cannot affect the tally.
	OnClassified func(models.ClassifiedPost)
}

// Run fetches up to maxItems posts for the query and classifies them.
// A source failure is fatal and returns no report. Per-item classifier
// failures are absorbed into the report's failure count.
func (p *Pipeline) Run(ctx context.Context, query string, maxItems int) (*models.Report, error) {
	if query == "" {
		return nil, fmt.Errorf("query must not be empty")
	}
	if maxItems < 0 {
		return nil, fmt.Errorf("maxItems must not be negative")
	}

	tally := models.NewTally()

	if maxItems == 0 {
		return tally.Finalize(query), nil
	}

	posts, err := p.Source.Fetch(ctx, query, maxItems)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	slog.Info("[Pipeline] Fetched posts",
		slog.String("query", query),
		slog.Int("count", len(posts)))

	p.classifyAll(ctx, posts, tally)

	report := tally.Finalize(query)
	slog.Info("[Pipeline] Run complete",
		slog.String("query", query),
		slog.Int("classified", report.Total),
		slog.Int("failed", report.Failures))
	return report, nil
}

// classifyAll fans posts out to a bounded worker pool. Tally increments
// commute, so worker ordering never changes the final counts; the mutex
// only prevents lost updates.
func (p *Pipeline) classifyAll(ctx context.Context, posts []models.Post, tally *models.Tally) {
	workers := p.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > len(posts) {
		workers = len(posts)
	}
	if workers == 0 {
		return
	}

	var (
		tallyLock sync.Mutex
		wg        sync.WaitGroup
	)
	jobs := make(chan models.Post)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for post := range jobs {
				label, err := p.Classifier.Classify(ctx, post.Text)

				tallyLock.Lock()
				if err != nil {
					tally.RecordFailure()
				} else {
					tally.Increment(label)
				}
				tallyLock.Unlock()

				if err != nil {
					slog.Warn("[Pipeline] Classification failed, skipping post",
						slog.String("content_id", post.ContentID),
						slog.String("error", err.Error()))
					continue
				}

				if p.OnClassified != nil {
					p.OnClassified(models.ClassifiedPost{Post: post, SentimentLabel: label})
				}
			}
		}()
	}

	for _, post := range posts {
		jobs <- post
	}
	close(jobs)
	wg.Wait()
}
