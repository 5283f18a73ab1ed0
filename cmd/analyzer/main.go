package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aakritidhardubey/sentiment-x-analysis/config"
	"github.com/aakritidhardubey/sentiment-x-analysis/internal/clients"
	"github.com/aakritidhardubey/sentiment-x-analysis/internal/logging"
	"github.com/aakritidhardubey/sentiment-x-analysis/internal/models"
	"github.com/aakritidhardubey/sentiment-x-analysis/internal/pipeline"
	"github.com/aakritidhardubey/sentiment-x-analysis/internal/reporting"
	"github.com/aakritidhardubey/sentiment-x-analysis/internal/sentiment"
	"github.com/aakritidhardubey/sentiment-x-analysis/internal/source"
	"github.com/aakritidhardubey/sentiment-x-analysis/internal/utils"
)

func main() {
	os.Exit(run())
}

func run() int {
	query := flag.String("query", "", "keyword, hashtag, or handle to analyze (required)")
	maxItems := flag.Int("max-items", 100, "maximum number of posts to fetch")
	classifierName := flag.String("classifier", "openai", "classifier backend: openai, vader, or local")
	workers := flag.Int("workers", 0, "concurrent classification workers (0 = default)")
	outputDir := flag.String("output", "", "directory for the JSON run artifact (optional)")
	flag.Parse()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	if *query == "" {
		fmt.Fprintln(os.Stderr, "usage: analyzer -query <keyword> [-max-items N] [-classifier openai|vader|local]")
		return 1
	}
	if *maxItems < 0 {
		fmt.Fprintln(os.Stderr, "-max-items must not be negative")
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	classifier, cleanup, err := buildClassifier(*classifierName)
	if err != nil {
		slog.Error("[Main] Failed to build classifier",
			slog.String("classifier", *classifierName),
			slog.String("error", err.Error()))
		return 1
	}
	defer cleanup()

	var dedupe *clients.ValkeyClient
	if os.Getenv("VALKEY_INIT_ADDRESS") != "" {
		dedupe, err = clients.InitValkey()
		if err != nil {
			slog.Warn("[Main] Valkey unavailable, continuing without dedupe",
				slog.String("error", err.Error()))
		} else {
			defer dedupe.Close()
		}
	}

	p := &pipeline.Pipeline{
		Source:     source.NewXSource(clients.GetXClient(), dedupe),
		Classifier: classifier,
		Workers:    *workers,
	}

	var resultBuffer *utils.BatchBuffer[models.ClassifiedPost]
	if os.Getenv("KAFKA_BROKER") != "" {
		if err := clients.InitKafka(); err != nil {
			slog.Warn("[Main] Kafka unavailable, continuing without results sink",
				slog.String("error", err.Error()))
		} else {
			defer clients.CloseKafka()
			resultBuffer = utils.NewBatchBuffer[models.ClassifiedPost]()
			p.OnClassified = resultBuffer.Add
		}
	}

	report, err := p.Run(ctx, *query, *maxItems)
	if err != nil {
		slog.Error("[Main] Analysis failed",
			slog.String("query", *query),
			slog.String("error", err.Error()))
		return 1
	}

	if resultBuffer != nil && resultBuffer.HasData() {
		if err := clients.PublishWithRetry(*query, resultBuffer.GetAndClear()); err != nil {
			slog.Warn("[Main] Failed to publish results to Kafka",
				slog.String("error", err.Error()))
		}
	}

	fmt.Print(reporting.Format(report))

	if *outputDir != "" {
		if path, err := writeRunArtifact(*outputDir, report); err != nil {
			slog.Warn("[Main] Failed to write run artifact",
				slog.String("error", err.Error()))
		} else {
			slog.Info("[Main] Run artifact written", slog.String("path", path))
		}
	}

	return 0
}

func buildClassifier(name string) (sentiment.Classifier, func(), error) {
	noop := func() {}
	switch name {
	case "openai":
		return sentiment.NewOpenAIClassifier(clients.GetAIClient()), noop, nil
	case "vader":
		return sentiment.NewVaderClassifier(), noop, nil
	case "local":
		classifier, err := sentiment.NewLocalClassifier()
		if err != nil {
			return nil, noop, err
		}
		return classifier, classifier.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown classifier %q", name)
}

// writeRunArtifact dumps the report as JSON, one file per run.
func writeRunArtifact(dir string, report *models.Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir,
		fmt.Sprintf("analysis_results_%s.json", time.Now().Format("20060102_150405")))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}

	return path, os.WriteFile(path, data, 0o644)
}
