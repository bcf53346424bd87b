// Package bot wires extraction, classification, resolution and formatting
// into the conversational entry point, with a generative fallback for
// questions the catalog cannot answer.
package bot

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/acolumban/loftybot/internal/answer"
	"github.com/acolumban/loftybot/internal/llm"
	"github.com/acolumban/loftybot/internal/metrics"
	"github.com/acolumban/loftybot/internal/query"
	"github.com/acolumban/loftybot/internal/resolve"
	"github.com/acolumban/loftybot/internal/vector"
)

// Turn is one prior question/answer exchange.
type Turn struct {
	User      string
	Assistant string
}

// Generator produces a free-form answer when structured resolution comes
// up empty. Implemented by internal/llm.
type Generator interface {
	Generate(ctx context.Context, question string, history []Turn, catalogContext string) (string, error)
}

// Retriever finds catalog documents related to a question, used to ground
// the generator. Optional.
type Retriever interface {
	Search(ctx context.Context, question string, limit int) ([]vector.Hit, error)
}

// Options configures an Engine. Resolver is required; Generator,
// Retriever and Metrics are optional.
type Options struct {
	Resolver        *resolve.Resolver
	Generator       Generator
	Retriever       Retriever
	Metrics         *metrics.Collector
	Logger          *slog.Logger
	FallbackTimeout time.Duration
	HistoryWindow   int
}

// Engine answers catalog questions. Safe for concurrent use; each call
// works on an atomic catalog snapshot.
type Engine struct {
	resolver        *resolve.Resolver
	generator       Generator
	retriever       Retriever
	metrics         *metrics.Collector
	logger          *slog.Logger
	fallbackTimeout time.Duration
	historyWindow   int
}

// NewEngine creates an engine from options, filling in defaults.
func NewEngine(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.FallbackTimeout <= 0 {
		opts.FallbackTimeout = 60 * time.Second
	}
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = 6
	}
	return &Engine{
		resolver:        opts.Resolver,
		generator:       opts.Generator,
		retriever:       opts.Retriever,
		metrics:         opts.Metrics,
		logger:          opts.Logger,
		fallbackTimeout: opts.FallbackTimeout,
		historyWindow:   opts.HistoryWindow,
	}
}

// Answer runs the question through extract, classify, resolve and format.
// When resolution yields nothing the generative fallback takes over.
// Fallback failures flatten to an apologetic message, so the returned
// error is only ever the caller's context error.
func (e *Engine) Answer(ctx context.Context, question string, history []Turn) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()
	entities := query.Extract(question)
	intent := query.Classify(question, entities)
	res := e.resolver.Resolve(question, entities, intent)
	text := answer.Render(res)

	if e.metrics != nil {
		e.metrics.RecordTiming(metrics.OpResolve, time.Since(start))
		e.metrics.RecordIntent(string(intent))
	}
	e.logger.Info("question answered",
		"intent", string(intent),
		"resolved", text != "",
		"duration_ms", time.Since(start).Milliseconds())

	if text != "" {
		return text, nil
	}
	return e.fallback(ctx, question, history), nil
}

// fallback asks the generator, grounded with retrieved catalog context
// when a retriever is wired. Every failure path returns display text.
func (e *Engine) fallback(ctx context.Context, question string, history []Turn) string {
	if e.generator == nil {
		return answer.OffTopic
	}

	ctx, cancel := context.WithTimeout(ctx, e.fallbackTimeout)
	defer cancel()

	catalogContext := e.retrieveContext(ctx, question)

	start := time.Now()
	text, err := e.generator.Generate(ctx, question, e.trimHistory(history), catalogContext)
	if e.metrics != nil {
		e.metrics.RecordTiming(metrics.OpFallback, time.Since(start))
	}
	if err != nil {
		e.logger.Warn("fallback generation failed", "error", err)
		return answer.FallbackFailed
	}
	return text
}

// retrieveContext fetches the nearest catalog documents for grounding.
// Retrieval errors degrade to an ungrounded answer instead of failing.
func (e *Engine) retrieveContext(ctx context.Context, question string) string {
	if e.retriever == nil {
		return ""
	}
	hits, err := e.retriever.Search(ctx, question, 3)
	if err != nil {
		e.logger.Warn("context retrieval failed", "error", err)
		return ""
	}
	parts := make([]string, 0, len(hits))
	for _, hit := range hits {
		parts = append(parts, hit.Content)
	}
	return strings.Join(parts, "\n")
}

// trimHistory keeps the most recent turns within the window.
func (e *Engine) trimHistory(history []Turn) []Turn {
	if len(history) <= e.historyWindow {
		return history
	}
	return history[len(history)-e.historyWindow:]
}

// llmGenerator adapts llm.Model to the Generator interface.
type llmGenerator struct {
	model *llm.Model
}

// NewLLMGenerator wraps a language model as a Generator.
func NewLLMGenerator(model *llm.Model) Generator {
	return &llmGenerator{model: model}
}

func (g *llmGenerator) Generate(ctx context.Context, question string, history []Turn, catalogContext string) (string, error) {
	turns := make([]llm.Turn, len(history))
	for i, t := range history {
		turns[i] = llm.Turn{User: t.User, Assistant: t.Assistant}
	}
	return g.model.Generate(ctx, question, turns, catalogContext)
}
