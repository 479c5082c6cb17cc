// Package ingest provides corpus ingestion: extraction, chunking, embedding,
// and indexing into storage, the vector index, and the keyword index.
package ingest

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/truthtriage/truthtriage/internal/models"
)

// Chunker splits text into overlapping character-bounded chunks, preferring
// paragraph and line boundaries over mid-word cuts.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

// NewChunker creates a chunker with the given size and overlap (in characters).
func NewChunker(chunkSize, chunkOverlap int) *Chunker {
	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// boundary separators tried in order; the empty string means a hard cut at chunkSize.
var separators = []string{"\n\n", "\n", " ", ""}

// Chunk splits text into DocumentChunks. Each chunk is at most chunkSize
// characters; consecutive chunks share up to chunkOverlap trailing characters.
func (c *Chunker) Chunk(docID, text string) []*models.DocumentChunk {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	step := c.chunkSize - c.chunkOverlap
	if step <= 0 {
		step = 1
	}

	runes := []rune(text)
	var chunks []*models.DocumentChunk
	chunkIndex := 0
	start := 0
	for start < len(runes) {
		end := start + c.chunkSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = c.boundaryBefore(runes, start, end)
		}

		chunkText := strings.TrimSpace(string(runes[start:end]))
		if chunkText != "" {
			chunks = append(chunks, &models.DocumentChunk{
				ID:         fmt.Sprintf("%s_%s", docID, uuid.New().String()[:8]),
				DocumentID: docID,
				Content:    chunkText,
				ChunkIndex: chunkIndex,
			})
			chunkIndex++
		}

		if end >= len(runes) {
			break
		}
		next := end - c.chunkOverlap
		if next <= start {
			next = start + step
		}
		start = next
	}
	return chunks
}

// boundaryBefore finds the best split point at or before limit, trying
// paragraph breaks, then line breaks, then spaces. A candidate boundary is
// only used when it keeps the chunk at least half full; otherwise the hard
// limit wins so the size bound always holds.
func (c *Chunker) boundaryBefore(runes []rune, start, limit int) int {
	minEnd := start + c.chunkSize/2
	window := string(runes[start:limit])
	for _, sep := range separators {
		if sep == "" {
			break
		}
		if i := strings.LastIndex(window, sep); i >= 0 {
			end := start + len([]rune(window[:i])) + len([]rune(sep))
			if end > minEnd {
				return end
			}
		}
	}
	return limit
}
