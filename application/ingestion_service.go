package application

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"book-rag-chatbot/domain"

	"github.com/google/uuid"
)

// embedBatchSize is the number of chunk texts sent per embedding pass.
const embedBatchSize = 100

// IngestOptions controls a single ingestion run.
type IngestOptions struct {
	// DryRun performs discovery, parsing, and chunk construction but skips
	// embedding and storage.
	DryRun bool
	// Clear drops and recreates the collection before ingesting.
	Clear bool
}

// IngestionService transforms a directory of markdown documents into
// embedded, indexed chunks.
type IngestionService struct {
	embedder    domain.EmbeddingClient
	vectorStore domain.VectorStore
	chunkSize   int
	overlap     int
	retry       RetryPolicy
	logger      *slog.Logger
}

// NewIngestionService creates a new IngestionService.
func NewIngestionService(embedder domain.EmbeddingClient, vectorStore domain.VectorStore, chunkSize, overlap int, logger *slog.Logger) *IngestionService {
	if chunkSize <= 0 {
		chunkSize = domain.DefaultChunkSize
	}
	if overlap < 0 {
		overlap = domain.DefaultOverlap
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestionService{
		embedder:    embedder,
		vectorStore: vectorStore,
		chunkSize:   chunkSize,
		overlap:     overlap,
		retry:       DefaultRetryPolicy(),
		logger:      logger,
	}
}

// IngestDirectory discovers all markdown files under docsDir, parses and
// chunks them, generates embeddings for the accumulated chunk batch, and
// upserts the result into the vector store. It returns the number of chunks
// processed.
//
// A parse failure on one file is logged and the file is skipped; embedding or
// storage failures abort the run. Ingestion is not atomic across files.
func (s *IngestionService) IngestDirectory(ctx context.Context, docsDir string, opts IngestOptions) (int, error) {
	if opts.Clear && !opts.DryRun {
		s.logger.Info("clearing existing collection")
		if err := s.vectorStore.Reset(ctx); err != nil {
			return 0, fmt.Errorf("clearing collection: %w", err)
		}
	}

	files, err := s.discover(docsDir)
	if err != nil {
		return 0, err
	}
	s.logger.Info("discovered markdown files", "count", len(files), "dir", docsDir)

	var allChunks []domain.DocumentChunk
	for _, file := range files {
		chunks, err := s.processFile(file)
		if err != nil {
			s.logger.Warn("skipping file", "file", file, "error", err)
			continue
		}
		allChunks = append(allChunks, chunks...)
	}
	s.logger.Info("created chunks", "count", len(allChunks))

	if opts.DryRun {
		s.logger.Info("dry run, skipping embedding and storage")
		return len(allChunks), nil
	}

	if err := s.embedChunks(ctx, allChunks); err != nil {
		return 0, err
	}

	stored, err := s.vectorStore.Upsert(ctx, allChunks)
	if err != nil {
		return 0, fmt.Errorf("storing chunks: %w", err)
	}
	s.logger.Info("ingestion complete", "stored", stored)

	return stored, nil
}

// discover recursively finds all markdown files under docsDir in filesystem
// traversal order.
func (s *IngestionService) discover(docsDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(docsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".md") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", docsDir, err)
	}
	return files, nil
}

// processFile parses a single markdown file and splits it into chunks with
// sequential chunk indexes. Embeddings are assigned later, over the whole
// accumulated batch.
func (s *IngestionService) processFile(path string) ([]domain.DocumentChunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc := ParseMarkdown(path, string(data))
	s.logger.Debug("parsed document", "title", doc.Title, "path", doc.Path, "length", len(doc.Content))

	texts := domain.ChunkText(doc.Content, s.chunkSize, s.overlap)
	chunks := make([]domain.DocumentChunk, 0, len(texts))
	for i, text := range texts {
		chunks = append(chunks, domain.DocumentChunk{
			ID:      uuid.New().String(),
			Content: text,
			Metadata: domain.DocumentMetadata{
				Title:      doc.Title,
				Path:       doc.Path,
				ChunkIndex: i,
			},
		})
	}
	return chunks, nil
}

// embedChunks generates document embeddings for every chunk, in batches, and
// assigns them in order. Each batch is retried on transient provider failures.
func (s *IngestionService) embedChunks(ctx context.Context, chunks []domain.DocumentChunk) error {
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		s.logger.Info("generating embeddings", "batch_start", start, "batch_end", end, "total", len(chunks))

		texts := make([]string, 0, end-start)
		for _, chunk := range chunks[start:end] {
			texts = append(texts, chunk.Content)
		}

		var embeddings []domain.Embedding
		err := s.retry.Do(ctx, "batch embedding", func(ctx context.Context) error {
			var embedErr error
			embeddings, embedErr = s.embedder.EmbedDocuments(ctx, texts)
			return embedErr
		})
		if err != nil {
			return err
		}
		if len(embeddings) != len(texts) {
			return fmt.Errorf("embedding count mismatch: %d texts, %d embeddings", len(texts), len(embeddings))
		}

		for i := range embeddings {
			chunks[start+i].Embedding = embeddings[i]
		}
	}
	return nil
}
