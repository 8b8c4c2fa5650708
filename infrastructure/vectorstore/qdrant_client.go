package vectorstore

import (
	"context"
	"fmt"
	"log/slog"

	"book-rag-chatbot/domain"

	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/proto"
)

// QdrantClient implements the domain.VectorStore interface using Qdrant.
// One logical collection holds all document chunks; vector dimensionality is
// fixed when the collection is created and never changed in place.
type QdrantClient struct {
	points         qdrant.PointsClient
	collections    qdrant.CollectionsClient
	collectionName string
	vectorSize     uint64
	logger         *slog.Logger
}

// NewQdrantClient connects to Qdrant at addr and ensures the named collection
// exists with the given vector dimensionality and cosine distance.
func NewQdrantClient(addr, collectionName string, vectorSize int, logger *slog.Logger) (*QdrantClient, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("could not connect to Qdrant: %w", err)
	}

	client := &QdrantClient{
		points:         qdrant.NewPointsClient(conn),
		collections:    qdrant.NewCollectionsClient(conn),
		collectionName: collectionName,
		vectorSize:     uint64(vectorSize),
		logger:         logger,
	}

	if err := client.ensureCollection(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure collection exists: %w", err)
	}

	return client, nil
}

// ensureCollection checks if the collection exists and creates it if it doesn't.
func (c *QdrantClient) ensureCollection(ctx context.Context) error {
	_, err := c.collections.Get(ctx, &qdrant.GetCollectionInfoRequest{
		CollectionName: c.collectionName,
	})
	if err == nil {
		return nil
	}

	c.logger.Info("creating collection", "collection", c.collectionName, "dimension", c.vectorSize)

	_, err = c.collections.Create(ctx, &qdrant.CreateCollection{
		CollectionName: c.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     c.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// Upsert stores document chunks with their embeddings. Chunks lacking an
// embedding are skipped with a warning rather than failing the whole batch.
func (c *QdrantClient) Upsert(ctx context.Context, chunks []domain.DocumentChunk) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	points := make([]*qdrant.PointStruct, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk.Embedding == nil {
			c.logger.Warn("skipping chunk without embedding", "id", chunk.ID)
			continue
		}

		points = append(points, &qdrant.PointStruct{
			Id:      &qdrant.PointId{PointIdOptions: &qdrant.PointId_Uuid{Uuid: chunk.ID}},
			Vectors: &qdrant.Vectors{VectorsOptions: &qdrant.Vectors_Vector{Vector: &qdrant.Vector{Data: chunk.Embedding}}},
			Payload: map[string]*qdrant.Value{
				"content":     {Kind: &qdrant.Value_StringValue{StringValue: chunk.Content}},
				"title":       {Kind: &qdrant.Value_StringValue{StringValue: chunk.Metadata.Title}},
				"path":        {Kind: &qdrant.Value_StringValue{StringValue: chunk.Metadata.Path}},
				"chunk_index": {Kind: &qdrant.Value_IntegerValue{IntegerValue: int64(chunk.Metadata.ChunkIndex)}},
			},
		})
	}

	if len(points) == 0 {
		return 0, nil
	}

	_, err := c.points.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: c.collectionName,
		Points:         points,
		Wait:           proto.Bool(true), // ensure writes are acknowledged
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upsert points to Qdrant: %w", err)
	}

	c.logger.Info("upserted chunks", "count", len(points))
	return len(points), nil
}

// Query searches for the k chunks most similar to the given embedding using
// the collection's cosine metric, ranked by similarity descending.
func (c *QdrantClient) Query(ctx context.Context, embedding domain.Embedding, k int) ([]domain.DocumentChunk, error) {
	searchResult, err := c.points.Search(ctx, &qdrant.SearchPoints{
		CollectionName: c.collectionName,
		Vector:         embedding,
		Limit:          uint64(k),
		WithPayload:    &qdrant.WithPayloadSelector{SelectorOptions: &qdrant.WithPayloadSelector_Enable{Enable: true}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search points in Qdrant: %w", err)
	}

	chunks := make([]domain.DocumentChunk, 0, len(searchResult.GetResult()))
	for _, hit := range searchResult.GetResult() {
		payload := hit.GetPayload()
		if payload == nil {
			continue
		}

		id := ""
		if hit.GetId() != nil {
			if uuidVal, ok := hit.GetId().GetPointIdOptions().(*qdrant.PointId_Uuid); ok {
				id = uuidVal.Uuid
			}
		}

		chunks = append(chunks, domain.DocumentChunk{
			ID:      id,
			Content: payload["content"].GetStringValue(),
			Metadata: domain.DocumentMetadata{
				Title:      payload["title"].GetStringValue(),
				Path:       payload["path"].GetStringValue(),
				ChunkIndex: int(payload["chunk_index"].GetIntegerValue()),
			},
		})
	}

	return chunks, nil
}

// Info returns the collection's point count and status.
func (c *QdrantClient) Info(ctx context.Context) (domain.CollectionInfo, error) {
	resp, err := c.collections.Get(ctx, &qdrant.GetCollectionInfoRequest{
		CollectionName: c.collectionName,
	})
	if err != nil {
		return domain.CollectionInfo{}, fmt.Errorf("failed to get collection info: %w", err)
	}

	result := resp.GetResult()
	return domain.CollectionInfo{
		Name:        c.collectionName,
		PointsCount: result.GetPointsCount(),
		Status:      result.GetStatus().String(),
	}, nil
}

// Reset drops the collection and recreates it empty. Destructive.
func (c *QdrantClient) Reset(ctx context.Context) error {
	_, err := c.collections.Delete(ctx, &qdrant.DeleteCollection{
		CollectionName: c.collectionName,
	})
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	c.logger.Info("deleted collection", "collection", c.collectionName)

	return c.ensureCollection(ctx)
}
