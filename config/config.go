// Package config centralizes configuration for the chatbot, loaded from
// environment variables with defaults and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Provider names selectable via environment variables.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds all configuration for the chatbot API and ingestion pipeline.
type Config struct {
	// Provider selection
	EmbeddingProvider string // "gemini" or "openai"
	LLMProvider       string // "gemini" or "anthropic"

	// Provider credentials and models
	GeminiAPIKey         string
	GeminiModel          string
	GeminiEmbeddingModel string
	OpenAIAPIKey         string
	OpenAIEmbeddingModel string
	AnthropicAPIKey      string

	// Qdrant
	QdrantAddr       string
	QdrantCollection string

	// RAG settings
	EmbeddingDimensions int
	ChunkSize           int
	ChunkOverlap        int
	TopKResults         int

	// HTTP
	Addr           string
	AllowedOrigins []string
}

// Load reads configuration from the environment, after loading a .env file
// when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		EmbeddingProvider:    getEnv("EMBEDDING_PROVIDER", ProviderGemini),
		LLMProvider:          getEnv("LLM_PROVIDER", ProviderGemini),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiEmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIEmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
		AnthropicAPIKey:      os.Getenv("ANTHROPIC_API_KEY"),
		QdrantAddr:           getEnv("QDRANT_ADDR", "localhost:6334"),
		QdrantCollection:     getEnv("QDRANT_COLLECTION_NAME", "book_docs"),
		EmbeddingDimensions:  getEnvInt("EMBEDDING_DIMENSIONS", 768),
		ChunkSize:            getEnvInt("CHUNK_SIZE", 1000),
		ChunkOverlap:         getEnvInt("CHUNK_OVERLAP", 200),
		TopKResults:          getEnvInt("TOP_K_RESULTS", 5),
		Addr:                 getEnv("ADDR", "127.0.0.1:8000"),
		AllowedOrigins:       splitOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	return cfg, cfg.Validate()
}

// Validate checks cross-field consistency and provider credentials.
func (c *Config) Validate() error {
	switch c.EmbeddingProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY must be set for embedding provider %q", c.EmbeddingProvider)
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY must be set for embedding provider %q", c.EmbeddingProvider)
		}
	default:
		return fmt.Errorf("unknown embedding provider %q", c.EmbeddingProvider)
	}

	switch c.LLMProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY must be set for llm provider %q", c.LLMProvider)
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY must be set for llm provider %q", c.LLMProvider)
		}
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLMProvider)
	}

	if c.EmbeddingDimensions <= 0 {
		return fmt.Errorf("EMBEDDING_DIMENSIONS must be positive, got %d", c.EmbeddingDimensions)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE), got %d", c.ChunkOverlap)
	}
	if c.TopKResults <= 0 {
		return fmt.Errorf("TOP_K_RESULTS must be positive, got %d", c.TopKResults)
	}

	return nil
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
