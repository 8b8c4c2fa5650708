package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"short", "a short document"},
		{"exactly chunk size", strings.Repeat("a", 1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := ChunkText(tt.text, 1000, 200)
			require.Len(t, chunks, 1)
			assert.Equal(t, tt.text, chunks[0])
		})
	}
}

func TestChunkText_BoundedChunkLength(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet. ", 200) // ~5600 chars
	chunkSize := 1000

	chunks := ChunkText(text, chunkSize, 200)
	require.Greater(t, len(chunks), 1)

	for i, chunk := range chunks {
		assert.NotEmpty(t, chunk, "chunk %d", i)
		// Trimming never lengthens a chunk; boundary snapping only moves the
		// end earlier.
		assert.LessOrEqual(t, len(chunk), chunkSize, "chunk %d", i)
	}
}

func TestChunkText_Determinism(t *testing.T) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 100)

	first := ChunkText(text, 500, 100)
	second := ChunkText(text, 500, 100)

	assert.Equal(t, first, second)
}

func TestChunkText_PrefersParagraphBreak(t *testing.T) {
	para1 := strings.Repeat("a", 700)
	para2 := strings.Repeat("b", 700)
	text := para1 + "\n\n" + para2

	chunks := ChunkText(text, 1000, 0)
	require.NotEmpty(t, chunks)

	// The paragraph break at offset 700 is past the midpoint (500), so the
	// first chunk ends there instead of at 1000.
	assert.Equal(t, para1, chunks[0])
}

func TestChunkText_FallsBackToSentenceBreak(t *testing.T) {
	sentence := strings.Repeat("c", 698) + ". "
	text := sentence + strings.Repeat("d", 700)

	chunks := ChunkText(text, 1000, 0)
	require.NotEmpty(t, chunks)

	// Sentence break at 698 is past the midpoint; the period is kept.
	assert.Equal(t, strings.Repeat("c", 698)+".", chunks[0])
}

func TestChunkText_IgnoresBreakBeforeMidpoint(t *testing.T) {
	text := strings.Repeat("e", 100) + "\n\n" + strings.Repeat("f", 2000)

	chunks := ChunkText(text, 1000, 0)
	require.NotEmpty(t, chunks)

	// The only paragraph break is before the midpoint, so the first chunk is
	// a full-size slice.
	assert.Equal(t, 1000, len(chunks[0]))
}

func TestChunkText_CoverageWithoutGaps(t *testing.T) {
	// Text with no whitespace so TrimSpace cannot hide dropped characters.
	text := strings.Repeat("abcdefghij", 500) // 5000 chars
	chunkSize := 1000
	overlap := 200

	chunks := ChunkText(text, chunkSize, overlap)
	require.Greater(t, len(chunks), 1)

	// Every chunk must start within the previous chunk's span: no character
	// range may be skipped beyond the intended overlap.
	cursor := 0
	for i, chunk := range chunks {
		idx := strings.Index(text[cursor:], chunk)
		require.GreaterOrEqual(t, idx, 0, "chunk %d not found at or after cursor", i)
		start := cursor + idx
		require.LessOrEqual(t, start, cursor, "gap before chunk %d", i)
		cursor = start + len(chunk) - overlap
	}
	assert.GreaterOrEqual(t, cursor+overlap, len(text), "tail of text not covered")
}

func TestChunkText_ClampsExcessiveOverlap(t *testing.T) {
	text := strings.Repeat("g", 5000)

	// overlap >= chunkSize would stall the cursor without the clamp.
	chunks := ChunkText(text, 1000, 999)

	require.NotEmpty(t, chunks)
	assert.Less(t, len(chunks), 20, "cursor must make forward progress")
}

func TestChunkText_InvalidParamsFallBackToDefaults(t *testing.T) {
	text := strings.Repeat("h", 1500)

	assert.NotEmpty(t, ChunkText(text, 0, -1))
	assert.NotEmpty(t, ChunkText(text, -5, 10))
}
