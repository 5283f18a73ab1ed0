package reporting

import (
	"strings"
	"testing"

	"github.com/aakritidhardubey/sentiment-x-analysis/internal/models"
)

func buildReport(positive, negative, neutral, failures int) *models.Report {
	tally := models.NewTally()
	for i := 0; i < positive; i++ {
		tally.Increment(models.LabelPositive)
	}
	for i := 0; i < negative; i++ {
		tally.Increment(models.LabelNegative)
	}
	for i := 0; i < neutral; i++ {
		tally.Increment(models.LabelNeutral)
	}
	for i := 0; i < failures; i++ {
		tally.RecordFailure()
	}
	return tally.Finalize("golang")
}

func TestFormatTable(t *testing.T) {
	report := buildReport(65, 15, 20, 0)
	out := Format(report)

	for _, want := range []string{
		`Sentiment breakdown for "golang" (100 classified, 0 failed)`,
		"Positive",
		"65.0%",
		"Negative",
		"15.0%",
		"Neutral",
		"20.0%",
		"Dominant sentiment: Positive (65 of 100 posts, 65.0%).",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Fixed label order in the table.
	if strings.Index(out, "Positive") > strings.Index(out, "Negative") ||
		strings.Index(out, "Negative") > strings.Index(out, "Neutral") {
		t.Errorf("labels out of order:\n%s", out)
	}
}

func TestFormatIsDeterministic(t *testing.T) {
	report := buildReport(3, 2, 1, 1)

	first := Format(report)
	second := Format(report)
	if first != second {
		t.Error("formatting the same report twice produced different output")
	}
}

func TestFormatEmptyReport(t *testing.T) {
	report := buildReport(0, 0, 0, 0)
	out := Format(report)

	if !strings.Contains(out, "(0 classified, 0 failed)") {
		t.Errorf("missing zero totals:\n%s", out)
	}
	if strings.Count(out, "0.0%") < 3 {
		t.Errorf("expected every label at 0.0%%:\n%s", out)
	}
	if !strings.Contains(out, "No posts were classified") {
		t.Errorf("missing empty-result insight:\n%s", out)
	}
}

func TestFormatFailureNote(t *testing.T) {
	report := buildReport(4, 2, 1, 3)
	out := Format(report)

	if !strings.Contains(out, "3 post(s) could not be classified") {
		t.Errorf("missing failure insight:\n%s", out)
	}
	// Percentages are over the 7 classified posts.
	if !strings.Contains(out, "57.1%") {
		t.Errorf("expected positive share 57.1%% of classified posts:\n%s", out)
	}
}

func TestInsightsTieBreak(t *testing.T) {
	report := buildReport(5, 5, 0, 0)
	insights := Insights(report)

	if len(insights) == 0 || !strings.Contains(insights[0], "Dominant sentiment: Positive") {
		t.Errorf("expected tie to resolve to Positive, got %v", insights)
	}
}

func TestPercentagesSum(t *testing.T) {
	tests := []struct {
		name                        string
		positive, negative, neutral int
	}{
		{name: "even split", positive: 1, negative: 1, neutral: 1},
		{name: "thirds", positive: 2, negative: 2, neutral: 2},
		{name: "skewed", positive: 97, negative: 2, neutral: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := buildReport(tt.positive, tt.negative, tt.neutral, 0)
			sum := 0.0
			for _, label := range models.AllLabels {
				sum += report.Percentage(label)
			}
			if sum < 99.999 || sum > 100.001 {
				t.Errorf("percentages sum to %f", sum)
			}
		})
	}
}
