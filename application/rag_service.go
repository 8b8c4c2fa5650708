package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"book-rag-chatbot/domain"
)

// DefaultTopK is the number of chunks retrieved per query.
const DefaultTopK = 5

// historyWindow is the number of trailing conversation messages included in
// the prompt.
const historyWindow = 10

// promptInstructions is the fixed system framing prepended to every prompt.
// Block ordering below it (selected text, book context, history, question) is
// fixed and must not be reordered.
var promptInstructions = []string{
	"You are a helpful assistant that answers questions about an AI robotics book.",
	"Answer questions based ONLY on the provided context from the book.",
	"If the information is not in the context, say so politely.",
	"Keep your answers concise and informative.",
	"When referencing information, mention which source it came from.",
}

// RAGService orchestrates the retrieval-augmented generation pipeline:
// embed the query, retrieve supporting chunks, build a grounded prompt,
// generate a response, and extract deduplicated sources.
//
// RAGService holds no per-request state and is safe for concurrent use.
type RAGService struct {
	embedder    domain.EmbeddingClient
	vectorStore domain.VectorStore
	llm         domain.LanguageModel
	topK        int
	retry       RetryPolicy
	logger      *slog.Logger
}

// NewRAGService creates a new RAGService with long-lived provider handles.
func NewRAGService(embedder domain.EmbeddingClient, vectorStore domain.VectorStore, llm domain.LanguageModel, topK int, logger *slog.Logger) *RAGService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RAGService{
		embedder:    embedder,
		vectorStore: vectorStore,
		llm:         llm,
		topK:        topK,
		retry:       DefaultRetryPolicy(),
		logger:      logger,
	}
}

// SetRetryPolicy overrides the retry policy applied to provider calls.
func (s *RAGService) SetRetryPolicy(policy RetryPolicy) {
	s.retry = policy
}

// Respond answers a user query grounded in retrieved book content.
// selectedText, when non-empty, is included as primary context. Only the most
// recent messages of conversationHistory participate in prompt construction.
func (s *RAGService) Respond(ctx context.Context, query, selectedText string, conversationHistory []domain.ConversationMessage) (domain.ChatResponse, error) {
	if err := validateRequest(query, selectedText); err != nil {
		return domain.ChatResponse{}, err
	}

	s.logger.Info("processing query", "query", truncate(query, 100))

	var queryEmbedding domain.Embedding
	err := s.retry.Do(ctx, "query embedding", func(ctx context.Context) error {
		var embedErr error
		queryEmbedding, embedErr = s.embedder.EmbedQuery(ctx, query)
		return embedErr
	})
	if err != nil {
		return domain.ChatResponse{}, err
	}

	contextChunks, err := s.vectorStore.Query(ctx, queryEmbedding, s.topK)
	if err != nil {
		return domain.ChatResponse{}, fmt.Errorf("searching vector store: %w", err)
	}
	s.logger.Info("retrieved chunks", "count", len(contextChunks))

	prompt := buildRAGPrompt(query, contextChunks, selectedText, conversationHistory)

	var responseText string
	err = s.retry.Do(ctx, "generation", func(ctx context.Context) error {
		var genErr error
		responseText, genErr = s.llm.GenerateResponse(ctx, prompt)
		return genErr
	})
	if err != nil {
		return domain.ChatResponse{}, err
	}

	sources := extractSources(contextChunks)

	s.logger.Info("response generated", "sources", len(sources))
	return domain.ChatResponse{
		Response: responseText,
		Sources:  sources,
	}, nil
}

// Health reports coarse service health. Only the vector store is probed; the
// embedding and LLM providers are left unchecked to avoid consuming quota.
// Health never returns an error: failures are captured in the status.
func (s *RAGService) Health(ctx context.Context) domain.HealthStatus {
	status := domain.HealthStatus{
		RAGService:       "healthy",
		EmbeddingService: "not_checked",
		LLMService:       "not_checked",
	}

	info, err := s.vectorStore.Info(ctx)
	if err != nil {
		status.VectorStore = fmt.Sprintf("unhealthy: %s", err)
		return status
	}
	status.VectorStore = "healthy"
	status.DocumentsIndexed = info.PointsCount
	return status
}

func validateRequest(query, selectedText string) error {
	if strings.TrimSpace(query) == "" {
		return domain.ErrEmptyQuery
	}
	if len(query) > domain.MaxQueryLength {
		return domain.ErrQueryTooLong
	}
	if len(selectedText) > domain.MaxSelectedTextLength {
		return domain.ErrSelectionTooLong
	}
	return nil
}

// buildRAGPrompt deterministically assembles the grounded prompt: the fixed
// instruction block, the optional user-selected text, the retrieved chunk
// context labeled per source, the trailing conversation history, and finally
// the question itself.
func buildRAGPrompt(query string, contextChunks []domain.DocumentChunk, selectedText string, conversationHistory []domain.ConversationMessage) string {
	contextParts := make([]string, 0, len(contextChunks))
	for i, chunk := range contextChunks {
		contextParts = append(contextParts, fmt.Sprintf("[Source %d: %s]\n%s", i+1, chunk.Metadata.Title, chunk.Content))
	}
	contextText := strings.Join(contextParts, "\n\n")

	historyText := ""
	if len(conversationHistory) > 0 {
		recent := conversationHistory
		if len(recent) > historyWindow {
			recent = recent[len(recent)-historyWindow:]
		}
		historyParts := make([]string, 0, len(recent))
		for _, msg := range recent {
			role := "Assistant"
			if msg.Role == domain.RoleUser {
				role = "User"
			}
			historyParts = append(historyParts, fmt.Sprintf("%s: %s", role, msg.Content))
		}
		historyText = strings.Join(historyParts, "\n")
	}

	parts := make([]string, 0, len(promptInstructions)+6)
	parts = append(parts, promptInstructions...)

	if selectedText != "" {
		parts = append(parts, fmt.Sprintf("\n--- USER SELECTED TEXT ---\n%s\n---", selectedText))
		parts = append(parts, "The user has selected the above text. Consider this as primary context for their question.")
	}

	parts = append(parts, fmt.Sprintf("\n--- BOOK CONTEXT ---\n%s\n---", contextText))

	if historyText != "" {
		parts = append(parts, fmt.Sprintf("\n--- CONVERSATION HISTORY ---\n%s\n---", historyText))
	}

	parts = append(parts, fmt.Sprintf("\nUser Question: %s", query))
	parts = append(parts, "\nAssistant:")

	return strings.Join(parts, "\n")
}

// extractSources deduplicates retrieved chunks by path, preserving first-seen
// (highest similarity) order, and builds a citation per unique path.
func extractSources(chunks []domain.DocumentChunk) []domain.Source {
	seen := make(map[string]bool, len(chunks))
	sources := make([]domain.Source, 0, len(chunks))

	for _, chunk := range chunks {
		path := chunk.Metadata.Path
		if seen[path] {
			continue
		}
		seen[path] = true
		sources = append(sources, domain.NewSource(chunk))
	}

	return sources
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
