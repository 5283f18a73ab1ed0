package sentiment

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/aakritidhardubey/sentiment-x-analysis/internal/models"
)

const (
	positiveThreshold = 0.20
	negativeThreshold = -0.20
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
)

// VaderClassifier scores text locally with VADER; no network calls, no
// credentials, useful as a fallback when no model API is configured.
type VaderClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderClassifier() *VaderClassifier {
	return &VaderClassifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	input = urlPattern.ReplaceAllString(input, "")

	return input
}

func ConvertMarkdownToText(input string) string {
	input = RemoveLinks(input)
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	stripped := tagPattern.ReplaceAllString(string(output), " ")

	return strings.Join(strings.Fields(stripped), " ")
}

func (v *VaderClassifier) Classify(_ context.Context, text string) (models.SentimentLabel, error) {
	plainText := ConvertMarkdownToText(text)

	scores := v.analyzer.PolarityScores(plainText)

	switch {
	case scores.Compound >= positiveThreshold:
		return models.LabelPositive, nil
	case scores.Compound <= negativeThreshold:
		return models.LabelNegative, nil
	}
	return models.LabelNeutral, nil
}
