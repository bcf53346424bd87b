// Package llm provides the generative fallback for questions the catalog
// resolver cannot answer, using langchaingo over a configurable provider.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/acolumban/loftybot/internal/config"
)

const systemPrompt = `You are a technical assistant for LED power converters.
Answer only questions about LED converters, drivers, lamps and their electrical properties.
If the question is outside that domain, reply that you are just a technical assistant for LED converters.
When catalog context is provided, base your answer ONLY on that context and say so when it is not enough.
Be concise.`

// Turn is one prior exchange of the conversation.
type Turn struct {
	User      string
	Assistant string
}

// Model wraps a langchaingo LLM for fallback answer generation.
type Model struct {
	llm       llms.Model
	modelName string
}

// NewModel creates an LLM model based on configuration.
func NewModel(cfg config.Config) (*Model, error) {
	var model llms.Model
	var err error

	switch cfg.LLMProvider {
	case config.ProviderOllama:
		model, err = ollama.New(
			ollama.WithModel(cfg.LLMModel),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}

	return &Model{
		llm:       model,
		modelName: cfg.LLMModel,
	}, nil
}

// Model returns the LLM model name.
func (m *Model) Model() string {
	return m.modelName
}

// Generate answers a question with the prior conversation turns and
// optional retrieved catalog context. Fatal provider errors (billing,
// auth) are wrapped with ErrFatalAPI so callers can stop retrying.
func (m *Model) Generate(ctx context.Context, question string, history []Turn, catalogContext string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
	}
	for _, turn := range history {
		messages = append(messages,
			llms.TextParts(llms.ChatMessageTypeHuman, turn.User),
			llms.TextParts(llms.ChatMessageTypeAI, turn.Assistant),
		)
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, userPrompt(question, catalogContext)))

	response, err := m.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generate: %w", wrapFatalError(err))
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}

func userPrompt(question, catalogContext string) string {
	if catalogContext == "" {
		return question
	}
	return fmt.Sprintf("Context:\n%s\n\nQuestion: %s\n\nAnswer:", catalogContext, question)
}
