package domain

// DocumentMetadata describes where a chunk came from within the book.
type DocumentMetadata struct {
	Title      string `json:"title"`       // Title of the source document
	Path       string `json:"path"`        // Canonical URL-style path (e.g. /docs/module-1/nervous-system)
	ChunkIndex int    `json:"chunk_index"` // Position of this chunk within the source document (0-based)
}

// DocumentChunk represents a bounded segment of book content with its metadata
// and, once the ingestion pipeline has assigned it, its embedding.
// After ingestion the vector index is the source of truth: chunks returned by
// a search are re-materialized from the stored payload.
type DocumentChunk struct {
	ID        string           `json:"id"`                  // Unique identifier (UUID)
	Content   string           `json:"content"`             // The chunk's text
	Metadata  DocumentMetadata `json:"metadata"`            // Source document metadata
	Embedding Embedding        `json:"embedding,omitempty"` // Vector embedding; nil until assigned
}

// SnippetLength is the maximum number of characters of chunk content surfaced
// in a Source snippet before truncation.
const SnippetLength = 150

// Source is a deduplicated citation surfaced alongside a response. It is
// derived fresh per response from the retrieved chunk set and never persisted.
type Source struct {
	Title   string `json:"title"`
	Path    string `json:"path"`
	Snippet string `json:"snippet"`
}

// NewSource builds a Source from a retrieved chunk, truncating the content to
// SnippetLength characters with an ellipsis suffix when it is longer.
func NewSource(chunk DocumentChunk) Source {
	snippet := chunk.Content
	if len(snippet) > SnippetLength {
		snippet = snippet[:SnippetLength] + "..."
	}
	return Source{
		Title:   chunk.Metadata.Title,
		Path:    chunk.Metadata.Path,
		Snippet: snippet,
	}
}
