package domain

import "strings"

// Default chunking parameters.
const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
)

// ChunkText splits text into overlapping segments of at most chunkSize
// characters, preferring to break at a paragraph boundary ("\n\n") and
// falling back to a sentence boundary (". "). A boundary is only accepted if
// it falls past the midpoint of the chunk, so boundary snapping never produces
// chunks shorter than chunkSize/2 except at the end of the text.
//
// The cursor advances by chunkSize-overlap each step. An overlap of
// chunkSize/2 or more would stall or starve the cursor, so overlap is clamped
// to chunkSize/2. Non-positive chunkSize and negative overlap fall back to the
// defaults.
//
// ChunkText is a pure function: identical input and parameters always yield
// the identical chunk sequence.
func ChunkText(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}
	if overlap > chunkSize/2 {
		overlap = chunkSize / 2
	}

	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0

	for start < len(text) {
		end := start + chunkSize

		// Snap the boundary back to a natural breakpoint, but only when this
		// is not the final chunk and the breakpoint lies past the midpoint.
		if end < len(text) {
			window := text[start:end]
			if para := strings.LastIndex(window, "\n\n"); para > chunkSize/2 {
				end = start + para
			} else if sent := strings.LastIndex(window, ". "); sent > chunkSize/2 {
				end = start + sent + 1 // keep the period
			}
		}

		sliceEnd := end
		if sliceEnd > len(text) {
			sliceEnd = len(text)
		}

		if chunk := strings.TrimSpace(text[start:sliceEnd]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		start = end - overlap
	}

	return chunks
}
