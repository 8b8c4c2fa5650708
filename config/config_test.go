package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv pins every variable Load reads so ambient shell state cannot leak
// into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"EMBEDDING_PROVIDER", "LLM_PROVIDER",
		"GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_EMBEDDING_MODEL",
		"OPENAI_API_KEY", "OPENAI_EMBEDDING_MODEL",
		"ANTHROPIC_API_KEY",
		"QDRANT_ADDR", "QDRANT_COLLECTION_NAME",
		"EMBEDDING_DIMENSIONS", "CHUNK_SIZE", "CHUNK_OVERLAP", "TOP_K_RESULTS",
		"ADDR", "ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderGemini, cfg.EmbeddingProvider)
	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, "text-embedding-004", cfg.GeminiEmbeddingModel)
	assert.Equal(t, "localhost:6334", cfg.QdrantAddr)
	assert.Equal(t, "book_docs", cfg.QdrantCollection)
	assert.Equal(t, 768, cfg.EmbeddingDimensions)
	assert.Equal(t, 1000, cfg.ChunkSize)
	assert.Equal(t, 200, cfg.ChunkOverlap)
	assert.Equal(t, 5, cfg.TopKResults)
	assert.Equal(t, "127.0.0.1:8000", cfg.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMBEDDING_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "anthropic-key")
	t.Setenv("QDRANT_ADDR", "qdrant.internal:6334")
	t.Setenv("CHUNK_SIZE", "500")
	t.Setenv("CHUNK_OVERLAP", "50")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.EmbeddingProvider)
	assert.Equal(t, ProviderAnthropic, cfg.LLMProvider)
	assert.Equal(t, "qdrant.internal:6334", cfg.QdrantAddr)
	assert.Equal(t, 500, cfg.ChunkSize)
	assert.Equal(t, 50, cfg.ChunkOverlap)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins)
}

func TestLoad_NonNumericIntFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("TOP_K_RESULTS", "five")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.TopKResults)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			EmbeddingProvider:   ProviderGemini,
			LLMProvider:         ProviderGemini,
			GeminiAPIKey:        "key",
			EmbeddingDimensions: 768,
			ChunkSize:           1000,
			ChunkOverlap:        200,
			TopKResults:         5,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid gemini config",
			mutate: func(*Config) {},
		},
		{
			name: "missing gemini key",
			mutate: func(c *Config) {
				c.GeminiAPIKey = ""
			},
			wantErr: "GEMINI_API_KEY",
		},
		{
			name: "openai embedding needs openai key",
			mutate: func(c *Config) {
				c.EmbeddingProvider = ProviderOpenAI
			},
			wantErr: "OPENAI_API_KEY",
		},
		{
			name: "anthropic llm needs anthropic key",
			mutate: func(c *Config) {
				c.LLMProvider = ProviderAnthropic
			},
			wantErr: "ANTHROPIC_API_KEY",
		},
		{
			name: "unknown embedding provider",
			mutate: func(c *Config) {
				c.EmbeddingProvider = "cohere"
			},
			wantErr: "unknown embedding provider",
		},
		{
			name: "unknown llm provider",
			mutate: func(c *Config) {
				c.LLMProvider = "llama"
			},
			wantErr: "unknown llm provider",
		},
		{
			name: "zero dimensions",
			mutate: func(c *Config) {
				c.EmbeddingDimensions = 0
			},
			wantErr: "EMBEDDING_DIMENSIONS",
		},
		{
			name: "zero chunk size",
			mutate: func(c *Config) {
				c.ChunkSize = 0
			},
			wantErr: "CHUNK_SIZE",
		},
		{
			name: "overlap not below chunk size",
			mutate: func(c *Config) {
				c.ChunkOverlap = 1000
			},
			wantErr: "CHUNK_OVERLAP",
		},
		{
			name: "negative overlap",
			mutate: func(c *Config) {
				c.ChunkOverlap = -1
			},
			wantErr: "CHUNK_OVERLAP",
		},
		{
			name: "zero top k",
			mutate: func(c *Config) {
				c.TopKResults = 0
			},
			wantErr: "TOP_K_RESULTS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
