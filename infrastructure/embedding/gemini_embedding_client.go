package embedding

import (
	"context"
	"errors"
	"fmt"

	"book-rag-chatbot/domain"

	"google.golang.org/genai"
)

// Embedding task types. Documents and queries are embedded with distinct task
// types so their vectors remain comparable under cosine similarity.
const (
	taskTypeDocument = "RETRIEVAL_DOCUMENT"
	taskTypeQuery    = "RETRIEVAL_QUERY"
)

// DefaultGeminiEmbeddingModel is the embedding model used unless overridden.
const DefaultGeminiEmbeddingModel = "text-embedding-004"

// GeminiEmbeddingClient implements the domain.EmbeddingClient interface using
// the Gemini embedding API.
type GeminiEmbeddingClient struct {
	client *genai.Client
	model  string
}

// NewGeminiEmbeddingClient creates a new GeminiEmbeddingClient with the given
// API key and model. An empty model selects DefaultGeminiEmbeddingModel.
func NewGeminiEmbeddingClient(ctx context.Context, apiKey, model string) (*GeminiEmbeddingClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is not set")
	}
	if model == "" {
		model = DefaultGeminiEmbeddingModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiEmbeddingClient{client: client, model: model}, nil
}

// EmbedDocuments generates document-mode embeddings for the given texts.
func (c *GeminiEmbeddingClient) EmbedDocuments(ctx context.Context, texts []string) ([]domain.Embedding, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	resp, err := c.client.Models.EmbedContent(ctx, c.model, contents, &genai.EmbedContentConfig{
		TaskType: taskTypeDocument,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding %d documents: %w", len(texts), err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}

	embeddings := make([]domain.Embedding, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		embeddings[i] = domain.Embedding(emb.Values)
	}

	return embeddings, nil
}

// EmbedQuery generates a query-mode embedding for a single search query.
func (c *GeminiEmbeddingClient) EmbedQuery(ctx context.Context, query string) (domain.Embedding, error) {
	resp, err := c.client.Models.EmbedContent(ctx, c.model, genai.Text(query), &genai.EmbedContentConfig{
		TaskType: taskTypeQuery,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("empty embedding response")
	}

	return domain.Embedding(resp.Embeddings[0].Values), nil
}
