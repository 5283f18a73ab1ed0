package models

import (
	"math"
	"testing"
)

func TestParseSentimentLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    SentimentLabel
		wantErr bool
	}{
		{name: "lowercase positive", input: "positive", want: LabelPositive},
		{name: "uppercase negative", input: "NEGATIVE", want: LabelNegative},
		{name: "padded neutral", input: "  Neutral ", want: LabelNeutral},
		{name: "out of vocabulary", input: "mixed", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSentimentLabel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got label %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTallyFinalize(t *testing.T) {
	tally := NewTally()
	for i := 0; i < 65; i++ {
		tally.Increment(LabelPositive)
	}
	for i := 0; i < 15; i++ {
		tally.Increment(LabelNegative)
	}
	for i := 0; i < 20; i++ {
		tally.Increment(LabelNeutral)
	}
	tally.RecordFailure()

	report := tally.Finalize("golang")

	if report.Total != 100 {
		t.Errorf("expected total 100, got %d", report.Total)
	}
	if report.Failures != 1 {
		t.Errorf("expected 1 failure, got %d", report.Failures)
	}
	if got := report.Percentage(LabelPositive); got != 65.0 {
		t.Errorf("expected 65.0%%, got %f", got)
	}
	if got := report.Percentage(LabelNeutral); got != 20.0 {
		t.Errorf("expected 20.0%%, got %f", got)
	}

	dominant, ok := report.Dominant()
	if !ok || dominant != LabelPositive {
		t.Errorf("expected dominant positive, got %q (ok=%v)", dominant, ok)
	}
}

func TestEmptyReport(t *testing.T) {
	report := NewTally().Finalize("golang")

	if report.Total != 0 {
		t.Fatalf("expected total 0, got %d", report.Total)
	}
	for _, label := range AllLabels {
		if got := report.Percentage(label); got != 0.0 {
			t.Errorf("expected 0.0%% for %s, got %f", label, got)
		}
	}
	if _, ok := report.Dominant(); ok {
		t.Error("expected no dominant label for an empty report")
	}
}

func TestPercentagesSumToHundred(t *testing.T) {
	tally := NewTally()
	tally.Increment(LabelPositive)
	tally.Increment(LabelNegative)
	tally.Increment(LabelNegative)
	report := tally.Finalize("q")

	sum := 0.0
	for _, label := range AllLabels {
		sum += report.Percentage(label)
	}
	if math.Abs(sum-100.0) > 1e-9 {
		t.Errorf("expected percentages to sum to 100, got %f", sum)
	}
}

func TestDominantTieBreak(t *testing.T) {
	// Equal counts resolve by fixed label order: positive, negative, neutral.
	tally := NewTally()
	tally.Increment(LabelNegative)
	tally.Increment(LabelPositive)
	report := tally.Finalize("q")

	dominant, ok := report.Dominant()
	if !ok || dominant != LabelPositive {
		t.Errorf("expected tie to resolve to positive, got %q", dominant)
	}

	tally2 := NewTally()
	tally2.Increment(LabelNeutral)
	tally2.Increment(LabelNegative)
	report2 := tally2.Finalize("q")

	dominant2, _ := report2.Dominant()
	if dominant2 != LabelNegative {
		t.Errorf("expected negative/neutral tie to resolve to negative, got %q", dominant2)
	}
}
