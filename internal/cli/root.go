// Package cli provides the loftybot command-line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/acolumban/loftybot/internal/answer"
	"github.com/acolumban/loftybot/internal/bot"
	"github.com/acolumban/loftybot/internal/catalog"
	"github.com/acolumban/loftybot/internal/config"
	"github.com/acolumban/loftybot/internal/embedding"
	"github.com/acolumban/loftybot/internal/llm"
	"github.com/acolumban/loftybot/internal/metrics"
	"github.com/acolumban/loftybot/internal/resolve"
	"github.com/acolumban/loftybot/internal/vector"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Shared state built in PersistentPreRunE
	cfg       config.Config
	logger    *slog.Logger
	logClose  func() error
	store     *catalog.Store
	collector *metrics.Collector
	resolver  *resolve.Resolver
	engine    *bot.Engine

	// Lazy-initialized vector components
	embedder     embedding.Embedder
	vectorClient *vector.Client
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "loftybot",
	Short: "LED converter catalog assistant",
	Long: `Loftybot answers natural-language questions about an LED power
converter catalog: article lookups, lamp compatibility, dimming and
voltage filters, comparisons and listings.

Questions the catalog cannot answer structurally are handed to a
configurable LLM, optionally grounded with vector-retrieved catalog
context.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Version and help never need the catalog
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}

		logger, logClose = config.SetupLogger(cfg.LogFile, cfg.LogLevel)

		cat, err := catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("load catalog %s: %w", cfg.CatalogPath, err)
		}
		store = catalog.NewStore(cat)
		collector = metrics.NewCollector()
		logger.Info("catalog loaded", "path", cfg.CatalogPath, "records", cat.Len())

		resolver = resolve.New(store, logger)
		engine = bot.NewEngine(bot.Options{
			Resolver:        resolver,
			Generator:       newGenerator(),
			Metrics:         collector,
			Logger:          logger,
			FallbackTimeout: cfg.FallbackTimeout,
			HistoryWindow:   cfg.HistoryWindow,
		})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if vectorClient != nil {
			if err := vectorClient.Close(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close vector store: %v\n", err)
			}
		}
		if logClose != nil {
			_ = logClose()
		}
	},
}

// newGenerator builds the fallback LLM. A broken LLM config degrades to
// catalog-only answers instead of failing startup.
func newGenerator() bot.Generator {
	model, err := llm.NewModel(cfg)
	if err != nil {
		logger.Warn("fallback LLM unavailable, catalog answers only", "error", err)
		return nil
	}
	return bot.NewLLMGenerator(model)
}

// getVector lazily connects the embedder and vector store. Only commands
// that retrieve or index call this.
func getVector(ctx context.Context) (embedding.Embedder, *vector.Client, error) {
	if vectorClient != nil {
		return embedder, vectorClient, nil
	}

	var err error
	embedder, err = embedding.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init embedder: %w", err)
	}

	vectorClient, err = vector.NewClient(ctx, vector.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
		AuthLevel: cfg.SurrealDBAuthLevel,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to vector store: %w", err)
	}

	if err := vectorClient.InitSchema(ctx); err != nil {
		return nil, nil, fmt.Errorf("initialize schema: %w", err)
	}
	return embedder, vectorClient, nil
}

// renderOrNotFound renders a resolution for direct CLI commands, with a
// plain no-match line instead of the fallback path.
func renderOrNotFound(res *resolve.Resolution) string {
	if text := answer.Render(res); text != "" {
		return text
	}
	return "No converters matched."
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(lampsCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(exportCmd)
}
