package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/aakritidhardubey/sentiment-x-analysis/internal/models"
)

const (
	defaultModelDir  = "./internal/transformers/models"
	defaultModelName = "KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english"
)

// LocalClassifier runs an ONNX sentiment model in-process through an ORT
// session. SST-2 style models emit POSITIVE/NEGATIVE only; anything the
// model emits outside the recognized set is a classification error.
type LocalClassifier struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

// NewLocalClassifier downloads the model on first use and builds the
// classification pipeline. The caller owns Close.
func NewLocalClassifier() (*LocalClassifier, error) {
	modelDir := os.Getenv("SENTIMENT_MODEL_DIR")
	if modelDir == "" {
		modelDir = defaultModelDir
	}
	modelName := os.Getenv("SENTIMENT_MODEL_NAME")
	if modelName == "" {
		modelName = defaultModelName
	}

	modelPath, err := hugot.DownloadModel(modelName, modelDir, hugot.NewDownloadOptions())
	if err != nil {
		return nil, fmt.Errorf("[LocalClassifier] failed to download model: %w", err)
	}
	slog.Info("[LocalClassifier] Model ready", slog.String("path", modelPath))

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("[LocalClassifier] failed to initialize ORT session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentimentClassificationPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("[LocalClassifier] failed to initialize pipeline: %w", err)
	}

	return &LocalClassifier{session: session, pipeline: pipeline}, nil
}

func (l *LocalClassifier) Close() {
	if l.session != nil {
		l.session.Destroy()
	}
}

func (l *LocalClassifier) Classify(_ context.Context, text string) (models.SentimentLabel, error) {
	output, err := l.pipeline.RunPipeline([]string{text})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrClassification, err)
	}

	if len(output.ClassificationOutputs) == 0 || len(output.ClassificationOutputs[0]) == 0 {
		return "", fmt.Errorf("%w: model produced no classification output", ErrClassification)
	}

	best := output.ClassificationOutputs[0][0]
	for _, candidate := range output.ClassificationOutputs[0][1:] {
		if candidate.Score > best.Score {
			best = candidate
		}
	}

	return mapModelLabel(best.Label)
}

// mapModelLabel translates transformer label conventions (POSITIVE,
// LABEL_1, ...) onto the pipeline's label set.
func mapModelLabel(raw string) (models.SentimentLabel, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "POSITIVE", "LABEL_1":
		return models.LabelPositive, nil
	case "NEGATIVE", "LABEL_0":
		return models.LabelNegative, nil
	case "NEUTRAL":
		return models.LabelNeutral, nil
	}
	return "", fmt.Errorf("%w: unrecognized model label %q", ErrClassification, raw)
}
