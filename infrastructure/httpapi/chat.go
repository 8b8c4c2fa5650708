package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"book-rag-chatbot/domain"
)

// chatHandler serves the chat and chat-health endpoints.
type chatHandler struct {
	service ChatService
	logger  *slog.Logger
}

// handleChat processes a chat request and returns a grounded response with
// its sources. Validation failures map to 400; provider failures map to 503
// with a human-readable hint.
func (h *chatHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.Respond(r.Context(), req.Query, req.SelectedText, req.ConversationHistory)
	if err != nil {
		if domain.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("chat request failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, classifyError(err))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleChatHealth reports detailed per-dependency health.
func (h *chatHandler) handleChatHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Health(r.Context()))
}

// handleHealth is a cheap liveness probe.
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleRoot returns API info.
func handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "Book RAG Chatbot API",
		"description": "Ask questions about the book's content",
		"endpoints": map[string]string{
			"chat":   "/chat",
			"health": "/health",
		},
	})
}

// classifyError maps provider failures to user-facing hints by message
// content, the only signal shared across provider SDKs.
func classifyError(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "api_key") || strings.Contains(msg, "unauthenticated"):
		return "API key configuration error. Please check the provider credentials."
	case strings.Contains(msg, "qdrant") || strings.Contains(msg, "connection"):
		return "Vector database connection error. Please check the Qdrant address."
	case strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit"):
		return "API rate limit exceeded. Please try again later."
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return "Request timed out. Please try again."
	default:
		return "Service error: " + err.Error()
	}
}
