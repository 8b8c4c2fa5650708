package domain

import "context"

// Embedding represents a numerical vector representation of text.
type Embedding []float32

// EmbeddingClient defines the interface for generating embeddings from text.
//
// Document and query embeddings use distinct, mode-appropriate encodings so
// that query vectors remain comparable to stored document vectors under the
// index's similarity metric.
type EmbeddingClient interface {
	// EmbedDocuments generates document-mode embeddings for the given texts,
	// one per input, in input order.
	EmbedDocuments(ctx context.Context, texts []string) ([]Embedding, error)
	// EmbedQuery generates a query-mode embedding for a single search query.
	EmbedQuery(ctx context.Context, query string) (Embedding, error)
}
