package domain

import "context"

// CollectionInfo holds basic statistics about the vector collection.
type CollectionInfo struct {
	Name        string `json:"name"`
	PointsCount uint64 `json:"points_count"`
	Status      string `json:"status"`
}

// VectorStore defines the interface for interacting with a vector database.
type VectorStore interface {
	// Upsert adds or updates document chunks in the vector store. Chunks
	// without an embedding are skipped rather than failing the batch.
	// Returns the number of chunks actually stored.
	Upsert(ctx context.Context, chunks []DocumentChunk) (int, error)
	// Query searches for the k chunks most similar to the given embedding,
	// ranked by similarity descending.
	Query(ctx context.Context, embedding Embedding, k int) ([]DocumentChunk, error)
	// Info returns basic statistics about the collection.
	Info(ctx context.Context) (CollectionInfo, error)
	// Reset drops the collection and recreates it empty.
	Reset(ctx context.Context) error
}
