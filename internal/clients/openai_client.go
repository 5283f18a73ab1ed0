package clients

import (
	"log/slog"
	"os"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var (
	aiClientInstance *AIClient
	aiClientOnce     sync.Once
)

type AIClient struct {
	Client *openai.Client
	Model  string
}

// GetAIClient returns the shared OpenAI client. The model name is read
// once from the environment and carried on the client so nothing reads
// it mid-run.
func GetAIClient() *AIClient {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		slog.Error("[AIClient] Missing OPENAI_API_KEY in environment variables")
		panic("[AIClient] Missing OPENAI_API_KEY in environment variables")
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	aiClientOnce.Do(func() {
		aiClientInstance = &AIClient{
			Client: openai.NewClient(option.WithAPIKey(apiKey)),
			Model:  model,
		}
		slog.Info("[AIClient] OpenAI client initialized",
			slog.String("model", model))
	})
	return aiClientInstance
}
