package domain

// Roles for conversation messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationMessage is a single message in the conversation history supplied
// by the caller. The orchestrator never mutates or persists it.
type ConversationMessage struct {
	Role    string `json:"role"` // Either "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the request for the chat endpoint.
type ChatRequest struct {
	Query               string                `json:"query"`
	SelectedText        string                `json:"selected_text,omitempty"`
	ConversationHistory []ConversationMessage `json:"conversation_history,omitempty"`
}

// ChatResponse is the answer produced for a single chat request, together with
// the deduplicated list of sources the answer was grounded in.
type ChatResponse struct {
	Response string   `json:"response"`
	Sources  []Source `json:"sources"`
}

// HealthStatus reports coarse health of the RAG service and its dependencies.
// The embedding and LLM providers are deliberately not exercised on the health
// path to avoid consuming API quota; they report "not_checked".
type HealthStatus struct {
	RAGService       string `json:"rag_service"`
	EmbeddingService string `json:"embedding_service"`
	VectorStore      string `json:"vector_store"`
	LLMService       string `json:"llm_service"`
	DocumentsIndexed uint64 `json:"documents_indexed,omitempty"`
}
