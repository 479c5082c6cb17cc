package ingest

import (
	"strings"
	"testing"
)

func TestChunker_shortTextSingleChunk(t *testing.T) {
	c := NewChunker(1000, 100)
	chunks := c.Chunk("doc1", "A short note about fever management.")
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Content != "A short note about fever management." {
		t.Errorf("content = %q", chunks[0].Content)
	}
	if chunks[0].ChunkIndex != 0 || chunks[0].DocumentID != "doc1" {
		t.Errorf("chunk metadata: %+v", chunks[0])
	}
}

func TestChunker_emptyText(t *testing.T) {
	c := NewChunker(1000, 100)
	if chunks := c.Chunk("doc1", "   \n\n  "); chunks != nil {
		t.Errorf("expected nil for blank text, got %d chunks", len(chunks))
	}
}

func TestChunker_respectsSizeBound(t *testing.T) {
	c := NewChunker(100, 20)
	text := strings.Repeat("word ", 200)
	chunks := c.Chunk("doc1", text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, ch := range chunks {
		if len([]rune(ch.Content)) > 100 {
			t.Errorf("chunk %d exceeds size bound: %d chars", i, len([]rune(ch.Content)))
		}
	}
	for i, ch := range chunks {
		if ch.ChunkIndex != i {
			t.Errorf("chunk %d has index %d", i, ch.ChunkIndex)
		}
	}
}

func TestChunker_prefersParagraphBoundary(t *testing.T) {
	c := NewChunker(100, 0)
	para1 := strings.Repeat("a", 70)
	para2 := strings.Repeat("b", 70)
	chunks := c.Chunk("doc1", para1+"\n\n"+para2)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[0].Content != para1 {
		t.Errorf("first chunk = %q", chunks[0].Content)
	}
	if chunks[1].Content != para2 {
		t.Errorf("second chunk = %q", chunks[1].Content)
	}
}

func TestChunker_overlap(t *testing.T) {
	c := NewChunker(50, 10)
	text := strings.Repeat("x", 45) + " " + strings.Repeat("y", 45)
	chunks := c.Chunk("doc1", text)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks", len(chunks))
	}
	// consecutive chunks share trailing characters of the previous window
	tail := chunks[0].Content[len(chunks[0].Content)-5:]
	if !strings.Contains(chunks[1].Content, tail[:1]) && !strings.HasPrefix(chunks[1].Content, "y") {
		t.Errorf("chunks do not overlap: %q then %q", chunks[0].Content, chunks[1].Content)
	}
}

func TestChunker_uniqueIDs(t *testing.T) {
	c := NewChunker(50, 10)
	chunks := c.Chunk("doc1", strings.Repeat("text that keeps going ", 30))
	seen := make(map[string]bool)
	for _, ch := range chunks {
		if seen[ch.ID] {
			t.Fatalf("duplicate chunk ID %q", ch.ID)
		}
		seen[ch.ID] = true
		if !strings.HasPrefix(ch.ID, "doc1_") {
			t.Errorf("chunk ID %q missing document prefix", ch.ID)
		}
	}
}
