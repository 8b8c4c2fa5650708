package embedding

import (
	"context"
	"errors"

	"book-rag-chatbot/domain"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEmbeddingClient implements the domain.EmbeddingClient interface using
// the OpenAI API. OpenAI embedding models do not distinguish document and
// query modes, so both use the same encoding.
type OpenAIEmbeddingClient struct {
	client *openai.Client
	model  openai.EmbeddingModel // e.g., text-embedding-3-small
}

// NewOpenAIEmbeddingClient creates a new OpenAIEmbeddingClient.
func NewOpenAIEmbeddingClient(apiKey, model string) (*OpenAIEmbeddingClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is not set")
	}
	client := openai.NewClient(apiKey)
	return &OpenAIEmbeddingClient{client: client, model: openai.EmbeddingModel(model)}, nil
}

// EmbedDocuments generates embeddings for the given texts using the specified
// OpenAI model.
func (c *OpenAIEmbeddingClient) EmbedDocuments(ctx context.Context, texts []string) ([]domain.Embedding, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: c.model,
	})
	if err != nil {
		return nil, err
	}

	embeddings := make([]domain.Embedding, len(resp.Data))
	for i, data := range resp.Data {
		embeddings[i] = domain.Embedding(data.Embedding)
	}

	return embeddings, nil
}

// EmbedQuery generates an embedding for a single search query.
func (c *OpenAIEmbeddingClient) EmbedQuery(ctx context.Context, query string) (domain.Embedding, error) {
	embeddings, err := c.EmbedDocuments(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, errors.New("empty embedding response")
	}
	return embeddings[0], nil
}
