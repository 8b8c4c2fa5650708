package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSource_SnippetTruncation(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantSnippet string
	}{
		{
			name:        "long content truncated with ellipsis",
			content:     strings.Repeat("x", 200),
			wantSnippet: strings.Repeat("x", 150) + "...",
		},
		{
			name:        "short content unchanged",
			content:     strings.Repeat("y", 100),
			wantSnippet: strings.Repeat("y", 100),
		},
		{
			name:        "exactly snippet length unchanged",
			content:     strings.Repeat("z", 150),
			wantSnippet: strings.Repeat("z", 150),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunk := DocumentChunk{
				ID:      "chunk-1",
				Content: tt.content,
				Metadata: DocumentMetadata{
					Title: "Chapter One",
					Path:  "/docs/chapter-one",
				},
			}

			source := NewSource(chunk)

			assert.Equal(t, "Chapter One", source.Title)
			assert.Equal(t, "/docs/chapter-one", source.Path)
			assert.Equal(t, tt.wantSnippet, source.Snippet)
		})
	}
}
