package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"book-rag-chatbot/application"
	"book-rag-chatbot/config"
	"book-rag-chatbot/domain"
	"book-rag-chatbot/infrastructure/embedding"
	"book-rag-chatbot/infrastructure/httpapi"
	"book-rag-chatbot/infrastructure/llm"
	"book-rag-chatbot/infrastructure/vectorstore"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:], logger)
	case "ingest":
		err = runIngest(os.Args[2:], logger)
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: book-rag-chatbot <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  serve    start the chatbot HTTP API")
	fmt.Fprintln(os.Stderr, "  ingest   ingest book documents into the vector store")
}

// runServe starts the HTTP API with long-lived provider handles shared across
// concurrent requests.
func runServe(args []string, logger *slog.Logger) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", "", "listen address (overrides ADDR)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *addr == "" {
		*addr = cfg.Addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	embedder, vectorStore, err := buildRetrievalStack(ctx, cfg, logger)
	if err != nil {
		return err
	}

	languageModel, err := buildLanguageModel(ctx, cfg)
	if err != nil {
		return err
	}

	ragService := application.NewRAGService(embedder, vectorStore, languageModel, cfg.TopKResults, logger.With("component", "rag"))

	server := httpapi.NewServer(ragService, cfg.AllowedOrigins, logger.With("component", "http"))
	return server.Run(ctx, *addr)
}

// runIngest runs the batch ingestion pipeline over a docs directory.
func runIngest(args []string, logger *slog.Logger) error {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	docsDir := fs.String("docs-dir", "docs", "path to the docs directory")
	dryRun := fs.Bool("dry-run", false, "parse and chunk only, don't embed or store")
	clear := fs.Bool("clear", false, "drop and recreate the collection before ingesting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if _, err := os.Stat(*docsDir); err != nil {
		return fmt.Errorf("docs directory not found: %s", *docsDir)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	embedder, vectorStore, err := buildRetrievalStack(ctx, cfg, logger)
	if err != nil {
		return err
	}

	ingestion := application.NewIngestionService(embedder, vectorStore, cfg.ChunkSize, cfg.ChunkOverlap, logger.With("component", "ingest"))

	count, err := ingestion.IngestDirectory(ctx, *docsDir, application.IngestOptions{
		DryRun: *dryRun,
		Clear:  *clear,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Ingestion complete! Processed %d chunks.\n", count)

	if !*dryRun {
		info, err := vectorStore.Info(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Collection %s: %d points (%s)\n", info.Name, info.PointsCount, info.Status)
	}

	return nil
}

// buildRetrievalStack constructs the embedding client and vector store from
// configuration.
func buildRetrievalStack(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.EmbeddingClient, domain.VectorStore, error) {
	var embedder domain.EmbeddingClient
	var err error

	switch cfg.EmbeddingProvider {
	case config.ProviderOpenAI:
		embedder, err = embedding.NewOpenAIEmbeddingClient(cfg.OpenAIAPIKey, cfg.OpenAIEmbeddingModel)
	default:
		embedder, err = embedding.NewGeminiEmbeddingClient(ctx, cfg.GeminiAPIKey, cfg.GeminiEmbeddingModel)
	}
	if err != nil {
		return nil, nil, err
	}

	vectorStore, err := vectorstore.NewQdrantClient(cfg.QdrantAddr, cfg.QdrantCollection, cfg.EmbeddingDimensions, logger.With("component", "qdrant"))
	if err != nil {
		return nil, nil, err
	}

	return embedder, vectorStore, nil
}

// buildLanguageModel constructs the generation backend from configuration.
func buildLanguageModel(ctx context.Context, cfg *config.Config) (domain.LanguageModel, error) {
	switch cfg.LLMProvider {
	case config.ProviderAnthropic:
		return llm.NewAnthropicClient(cfg.AnthropicAPIKey)
	default:
		return llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	}
}
