package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/truthtriage/truthtriage/internal/models"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStorage: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestSQLiteStorage_documentCRUD(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	doc := &models.Document{
		ID:      "doc:abc",
		Title:   "diabetes.txt",
		Content: "Metformin is first-line therapy.",
		Metadata: map[string]interface{}{
			"source": "/corpus/diabetes.txt",
		},
	}
	if err := s.CreateDocument(ctx, doc); err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	got, err := s.GetDocument(ctx, "doc:abc")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if got.Title != doc.Title || got.Content != doc.Content {
		t.Errorf("got %+v", got)
	}
	if got.Metadata["source"] != "/corpus/diabetes.txt" {
		t.Errorf("metadata source = %v", got.Metadata["source"])
	}

	doc.Content = "Updated content."
	if err := s.UpdateDocument(ctx, doc); err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}
	got, _ = s.GetDocument(ctx, "doc:abc")
	if got.Content != "Updated content." {
		t.Errorf("content after update: %q", got.Content)
	}

	if err := s.DeleteDocument(ctx, "doc:abc"); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	if _, err := s.GetDocument(ctx, "doc:abc"); err == nil {
		t.Error("expected error for deleted document")
	}
}

func TestSQLiteStorage_updateMissingDocument(t *testing.T) {
	s := newTestStorage(t)
	err := s.UpdateDocument(context.Background(), &models.Document{ID: "doc:none"})
	if err == nil {
		t.Error("expected error updating missing document")
	}
}

func TestSQLiteStorage_chunks(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	doc := &models.Document{ID: "doc:abc", Content: "full text"}
	if err := s.CreateDocument(ctx, doc); err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	chunks := []*models.DocumentChunk{
		{ID: "c1", DocumentID: "doc:abc", Content: "first", ChunkIndex: 0},
		{ID: "c2", DocumentID: "doc:abc", Content: "second", ChunkIndex: 1},
		{ID: "c3", DocumentID: "doc:abc", Content: "third", ChunkIndex: 2},
	}
	if err := s.BatchCreateChunks(ctx, chunks); err != nil {
		t.Fatalf("BatchCreateChunks: %v", err)
	}

	byDoc, err := s.GetChunksByDocumentID(ctx, "doc:abc")
	if err != nil {
		t.Fatalf("GetChunksByDocumentID: %v", err)
	}
	if len(byDoc) != 3 {
		t.Fatalf("got %d chunks", len(byDoc))
	}
	for i, c := range byDoc {
		if c.ChunkIndex != i {
			t.Errorf("chunk %d out of order: index %d", i, c.ChunkIndex)
		}
	}

	// GetChunksByIDs preserves requested order and skips missing IDs
	got, err := s.GetChunksByIDs(ctx, []string{"c3", "missing", "c1"})
	if err != nil {
		t.Fatalf("GetChunksByIDs: %v", err)
	}
	if len(got) != 2 || got[0].ID != "c3" || got[1].ID != "c1" {
		t.Errorf("GetChunksByIDs order: %+v", got)
	}

	n, err := s.CountChunks(ctx)
	if err != nil || n != 3 {
		t.Errorf("CountChunks = %d, %v", n, err)
	}

	if err := s.DeleteChunksByDocumentID(ctx, "doc:abc"); err != nil {
		t.Fatalf("DeleteChunksByDocumentID: %v", err)
	}
	n, _ = s.CountChunks(ctx)
	if n != 0 {
		t.Errorf("CountChunks after delete = %d", n)
	}
}

func TestSQLiteStorage_getChunksByIDsEmpty(t *testing.T) {
	s := newTestStorage(t)
	got, err := s.GetChunksByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetChunksByIDs: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for empty id list, got %v", got)
	}
}
