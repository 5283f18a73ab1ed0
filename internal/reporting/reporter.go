// Package reporting renders a finished report as text. Everything here
// is pure: same report in, same string out.
package reporting

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/aakritidhardubey/sentiment-x-analysis/internal/models"
)

var labelTitles = map[models.SentimentLabel]string{
	models.LabelPositive: "Positive",
	models.LabelNegative: "Negative",
	models.LabelNeutral:  "Neutral",
}

// Format renders the percentage table and insight lines for a report.
func Format(report *models.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Sentiment breakdown for %q (%d classified, %d failed)\n\n",
		report.Query, report.Total, report.Failures)

	w := tabwriter.NewWriter(&b, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "LABEL\tCOUNT\tPERCENT\t")
	for _, label := range models.AllLabels {
		fmt.Fprintf(w, "%s\t%d\t%.1f%%\t\n",
			labelTitles[label], report.Counts[label], report.Percentage(label))
	}
	w.Flush()

	b.WriteString("\n")
	for _, insight := range Insights(report) {
		fmt.Fprintf(&b, "- %s\n", insight)
	}

	return b.String()
}

// Insights derives the free-text lines: dominant label (ties broken by
// the fixed label order), failure note, and the empty-result case.
func Insights(report *models.Report) []string {
	var insights []string

	dominant, ok := report.Dominant()
	if !ok {
		insights = append(insights,
			fmt.Sprintf("No posts were classified for %q; all percentages are 0.0%%.", report.Query))
	} else {
		insights = append(insights,
			fmt.Sprintf("Dominant sentiment: %s (%d of %d posts, %.1f%%).",
				labelTitles[dominant], report.Counts[dominant], report.Total,
				report.Percentage(dominant)))
	}

	if report.Failures > 0 {
		insights = append(insights,
			fmt.Sprintf("%d post(s) could not be classified and were excluded from the percentages.",
				report.Failures))
	}

	return insights
}
