package models

import (
	"fmt"
	"strings"
	"time"
)

type SentimentLabel string

const (
	LabelPositive SentimentLabel = "positive"
	LabelNegative SentimentLabel = "negative"
	LabelNeutral  SentimentLabel = "neutral"
)

// AllLabels is the fixed reporting order.
var AllLabels = []SentimentLabel{LabelPositive, LabelNegative, LabelNeutral}

// ParseSentimentLabel maps a raw model response onto one of the three
// recognized labels. Anything else is rejected rather than guessed at.
func ParseSentimentLabel(raw string) (SentimentLabel, error) {
	switch SentimentLabel(strings.ToLower(strings.TrimSpace(raw))) {
	case LabelPositive:
		return LabelPositive, nil
	case LabelNegative:
		return LabelNegative, nil
	case LabelNeutral:
		return LabelNeutral, nil
	}
	return "", fmt.Errorf("unrecognized sentiment label %q", raw)
}

// Tally holds the running per-label counts for a single run. Counts only
// go up; failed classifications land in Failures and never in a label.
type Tally struct {
	counts   map[SentimentLabel]int
	failures int
}

func NewTally() *Tally {
	return &Tally{counts: make(map[SentimentLabel]int, len(AllLabels))}
}

func (t *Tally) Increment(label SentimentLabel) {
	t.counts[label]++
}

func (t *Tally) RecordFailure() {
	t.failures++
}

func (t *Tally) Count(label SentimentLabel) int {
	return t.counts[label]
}

func (t *Tally) Total() int {
	total := 0
	for _, c := range t.counts {
		total += c
	}
	return total
}

// Finalize freezes the tally into a read-only report.
func (t *Tally) Finalize(query string) *Report {
	counts := make(map[SentimentLabel]int, len(AllLabels))
	for _, label := range AllLabels {
		counts[label] = t.counts[label]
	}
	return &Report{
		Query:       query,
		Counts:      counts,
		Total:       t.Total(),
		Failures:    t.failures,
		GeneratedAt: time.Now().UTC(),
	}
}

type Report struct {
	Query       string                 `json:"query"`
	Counts      map[SentimentLabel]int `json:"counts"`
	Total       int                    `json:"total"`
	Failures    int                    `json:"failures"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// Percentage returns 100*count/total for the label, and 0.0 for every
// label when nothing was classified.
func (r *Report) Percentage(label SentimentLabel) float64 {
	if r.Total == 0 {
		return 0.0
	}
	return 100 * float64(r.Counts[label]) / float64(r.Total)
}

// Dominant returns the label with the highest count; ties resolve to the
// earliest label in the fixed reporting order. The bool is false when the
// report is empty.
func (r *Report) Dominant() (SentimentLabel, bool) {
	if r.Total == 0 {
		return "", false
	}
	best := AllLabels[0]
	for _, label := range AllLabels[1:] {
		if r.Counts[label] > r.Counts[best] {
			best = label
		}
	}
	return best, true
}
