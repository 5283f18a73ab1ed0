package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"

	"github.com/aakritidhardubey/sentiment-x-analysis/internal/clients"
	"github.com/aakritidhardubey/sentiment-x-analysis/internal/models"
)

const classificationPrompt = `You are a sentiment classifier for social media posts.
Classify the sentiment of the post the user provides.

### **STRICT OUTPUT FORMAT**
You MUST return only **valid JSON**, formatted exactly as follows:
{"label": "positive"}

### **REQUIREMENTS**
- The label MUST be exactly one of: positive, negative, neutral.
- **No Markdown formatting** (no triple backticks, no explanations).
- **No extra text before or after the JSON output**.
`

const openAIMaxRetries = 3

// OpenAIClassifier labels posts through the chat completions API using
// the model configured on the shared client.
type OpenAIClassifier struct {
	client *clients.AIClient
}

func NewOpenAIClassifier(client *clients.AIClient) *OpenAIClassifier {
	return &OpenAIClassifier{client: client}
}

func (o *OpenAIClassifier) Classify(ctx context.Context, text string) (models.SentimentLabel, error) {
	var lastErr error

	for attempt := 1; attempt <= openAIMaxRetries; attempt++ {
		chatCompletion, err := o.client.Client.Chat.Completions.New(ctx,
			openai.ChatCompletionNewParams{
				Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
					openai.SystemMessage(classificationPrompt),
					openai.UserMessage(text),
				}),
				Model:       openai.F(openai.ChatModel(o.client.Model)),
				Temperature: openai.Float(0),
			})
		if err != nil {
			lastErr = err
			slog.Warn("[OpenAIClassifier] API call failed, retrying",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			if !sleepCtx(ctx, 2*time.Second) {
				return "", fmt.Errorf("%w: %v", ErrClassification, ctx.Err())
			}
			continue
		}

		if len(chatCompletion.Choices) == 0 || strings.TrimSpace(chatCompletion.Choices[0].Message.Content) == "" {
			lastErr = fmt.Errorf("empty completion")
			slog.Warn("[OpenAIClassifier] Model returned empty response, retrying",
				slog.Int("attempt", attempt))
			if !sleepCtx(ctx, 2*time.Second) {
				return "", fmt.Errorf("%w: %v", ErrClassification, ctx.Err())
			}
			continue
		}

		raw := CleanModelResponse(chatCompletion.Choices[0].Message.Content)

		var resp models.OpenAIClassificationResponse
		if err := json.Unmarshal([]byte(raw), &resp); err != nil {
			lastErr = fmt.Errorf("invalid classification JSON: %v", err)
			slog.Warn("[OpenAIClassifier] Failed to parse response JSON, retrying",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			if !sleepCtx(ctx, 2*time.Second) {
				return "", fmt.Errorf("%w: %v", ErrClassification, ctx.Err())
			}
			continue
		}

		label, err := models.ParseSentimentLabel(resp.Label)
		if err != nil {
			// A well-formed but out-of-vocabulary answer will not improve
			// with retries; reject the item.
			return "", fmt.Errorf("%w: %v", ErrClassification, err)
		}
		return label, nil
	}

	return "", fmt.Errorf("%w: %v", ErrClassification, lastErr)
}

// CleanModelResponse strips code fences and normalizes curly quotes the
// model sometimes wraps around its JSON.
func CleanModelResponse(response string) string {
	response = strings.TrimSpace(response)

	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")

	response = strings.ReplaceAll(response, "“", `"`) // Left curly quote
	response = strings.ReplaceAll(response, "”", `"`) // Right curly quote

	return strings.TrimSpace(response)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
