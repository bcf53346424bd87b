// Package main provides the chat server for loftybot.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acolumban/loftybot/internal/bot"
	"github.com/acolumban/loftybot/internal/catalog"
	"github.com/acolumban/loftybot/internal/config"
	"github.com/acolumban/loftybot/internal/embedding"
	"github.com/acolumban/loftybot/internal/llm"
	"github.com/acolumban/loftybot/internal/metrics"
	"github.com/acolumban/loftybot/internal/resolve"
	"github.com/acolumban/loftybot/internal/server"
	"github.com/acolumban/loftybot/internal/vector"
)

func main() {
	retrieve := flag.Bool("retrieve", false, "ground fallback answers with vector-retrieved catalog context")
	flag.Parse()

	cfg := config.Load()
	logger, closeLog := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer func() { _ = closeLog() }()

	logger.Info("starting loftybot-server", "port", cfg.ServerPort)

	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		logger.Error("failed to load catalog", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}
	store := catalog.NewStore(cat)
	collector := metrics.NewCollector()
	logger.Info("catalog loaded", "path", cfg.CatalogPath, "records", cat.Len())

	var generator bot.Generator
	if model, err := llm.NewModel(cfg); err != nil {
		logger.Warn("fallback LLM unavailable, catalog answers only", "error", err)
	} else {
		generator = bot.NewLLMGenerator(model)
	}

	var retriever bot.Retriever
	var vectorClient *vector.Client
	if *retrieve {
		connectCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		embedder, err := embedding.New(cfg)
		if err != nil {
			cancel()
			logger.Error("failed to init embedder", "error", err)
			os.Exit(1)
		}
		vectorClient, err = vector.NewClient(connectCtx, vector.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
			AuthLevel: cfg.SurrealDBAuthLevel,
		}, logger)
		cancel()
		if err != nil {
			logger.Error("failed to connect to vector store", "error", err)
			os.Exit(1)
		}
		defer func() { _ = vectorClient.Close(context.Background()) }()
		retriever = bot.NewVectorRetriever(embedder, vectorClient, collector)
	}

	engine := bot.NewEngine(bot.Options{
		Resolver:        resolve.New(store, logger),
		Generator:       generator,
		Retriever:       retriever,
		Metrics:         collector,
		Logger:          logger,
		FallbackTimeout: cfg.FallbackTimeout,
		HistoryWindow:   cfg.HistoryWindow,
	})

	srv := server.New(engine, store, collector, logger)
	srv.CatalogPath = cfg.CatalogPath
	httpServer := srv.HTTPServer(cfg.ServerPort)

	go func() {
		logger.Info("listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
