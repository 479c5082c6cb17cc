package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/truthtriage/truthtriage/internal/embedding"
	"github.com/truthtriage/truthtriage/internal/extract"
	"github.com/truthtriage/truthtriage/internal/fileid"
	"github.com/truthtriage/truthtriage/internal/keyword"
	"github.com/truthtriage/truthtriage/internal/models"
	"github.com/truthtriage/truthtriage/internal/storage"
	"github.com/truthtriage/truthtriage/internal/vector"
)

// ErrNoDocuments is returned by IngestDirectory when the corpus directory
// yields no ingestable documents. Startup treats this as fatal: the pipeline
// cannot answer anything without a corpus.
var ErrNoDocuments = errors.New("no documents found in corpus directory")

const (
	metaKeySource      = "source"
	metaKeySourceMtime = "source_mtime"
	metaKeySourceSize  = "source_size"
)

// Ingester ingests corpus files into storage, the vector index, and the keyword index.
type Ingester struct {
	storage      storage.Storage
	embedder     embedding.Embedder
	vectorIndex  vector.Index
	keywordIndex *keyword.BleveIndex
	chunker      *Chunker
	extractor    *extract.Extractor
	logger       *zap.Logger // optional; when set, logs debug events
}

// Option configures an Ingester.
type Option func(*Ingester)

// WithLogger sets a logger for debug output (file ingested, document deleted, etc.).
func WithLogger(l *zap.Logger) Option {
	return func(ing *Ingester) { ing.logger = l }
}

// NewIngester creates an ingester with the given dependencies.
// extractor may be nil; when nil, all files are read as plain text.
func NewIngester(
	store storage.Storage,
	embedder embedding.Embedder,
	vectorIndex vector.Index,
	keywordIndex *keyword.BleveIndex,
	chunkSize, chunkOverlap int,
	extractor *extract.Extractor,
	opts ...Option,
) *Ingester {
	ing := &Ingester{
		storage:      store,
		embedder:     embedder,
		vectorIndex:  vectorIndex,
		keywordIndex: keywordIndex,
		chunker:      NewChunker(chunkSize, chunkOverlap),
		extractor:    extractor,
	}
	for _, opt := range opts {
		opt(ing)
	}
	return ing
}

// IngestDocument ingests one document: store, chunk, embed, index.
func (ing *Ingester) IngestDocument(ctx context.Context, input *models.DocumentInput) error {
	doc := &models.Document{
		ID:       input.ID,
		Title:    input.Title,
		Content:  input.Content,
		Metadata: input.Metadata,
	}
	if err := ing.storage.CreateDocument(ctx, doc); err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}
	chunks := ing.chunker.Chunk(doc.ID, doc.Content)
	if len(chunks) == 0 {
		return nil
	}
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Content
	}
	embeddings, err := ing.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings: %w", err)
	}
	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}
	if err := ing.storage.BatchCreateChunks(ctx, chunks); err != nil {
		return fmt.Errorf("failed to store chunks: %w", err)
	}
	chunkIDs := make([]string, len(chunks))
	for i, ch := range chunks {
		chunkIDs[i] = ch.ID
	}
	if err := ing.vectorIndex.Add(ctx, chunkIDs, embeddings); err != nil {
		return fmt.Errorf("failed to index vectors: %w", err)
	}
	for _, ch := range chunks {
		if err := ing.keywordIndex.Index(ctx, ch.ID, doc.ID, ch.Content); err != nil {
			return fmt.Errorf("failed to index keywords: %w", err)
		}
	}
	return nil
}

// IngestFile reads a file from path and ingests it. The document ID is derived
// from the absolute path so re-ingesting updates the same document. Skips work
// when the file is already ingested with the same mtime and size.
func (ing *Ingester) IngestFile(ctx context.Context, path string, allowedExts []string) error {
	if ing.logger != nil {
		ing.logger.Debug("ingesting file", zap.String("path", path))
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("absolute path: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(absPath))
	if len(allowedExts) > 0 && !extensionAllowed(ext, allowedExts) {
		return fmt.Errorf("extension %q not in allowed list", ext)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", absPath)
	}
	docID := fileid.DocID(absPath)
	if ing.shouldSkipFile(ctx, absPath, docID, info) {
		if ing.logger != nil {
			ing.logger.Debug("skipping unchanged file", zap.String("path", absPath))
		}
		return nil
	}
	text, err := ing.extractContent(absPath)
	if err != nil {
		return fmt.Errorf("extract content: %w", err)
	}
	_ = ing.DeleteDocument(ctx, docID)
	input := &models.DocumentInput{
		ID:      docID,
		Title:   filepath.Base(absPath),
		Content: text,
		Metadata: map[string]interface{}{
			metaKeySource: absPath,
			// stored as strings: UnixNano exceeds JSON's 53-bit float precision
			metaKeySourceMtime: strconv.FormatInt(info.ModTime().UnixNano(), 10),
			metaKeySourceSize:  strconv.FormatInt(info.Size(), 10),
		},
	}
	if err := ing.IngestDocument(ctx, input); err != nil {
		return err
	}
	if ing.logger != nil {
		ing.logger.Debug("file ingested", zap.String("path", absPath), zap.String("doc_id", docID))
	}
	return nil
}

// shouldSkipFile reports whether the file is already ingested with the same mtime and size.
func (ing *Ingester) shouldSkipFile(ctx context.Context, absPath, docID string, info os.FileInfo) bool {
	doc, err := ing.storage.GetDocument(ctx, docID)
	if err != nil || doc.Metadata == nil {
		return false
	}
	if doc.Metadata[metaKeySource] != absPath {
		return false
	}
	return metadataInt64(doc.Metadata, metaKeySourceMtime) == info.ModTime().UnixNano() &&
		metadataInt64(doc.Metadata, metaKeySourceSize) == info.Size()
}

func metadataInt64(m map[string]interface{}, key string) int64 {
	v, ok := m[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case string:
		x, _ := strconv.ParseInt(n, 10, 64)
		return x
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

// IngestDirectory walks dir recursively and ingests each regular file whose
// extension is in allowedExts (if non-empty; otherwise all files). Files that
// fail to ingest are logged and skipped. Returns ErrNoDocuments when the walk
// completes without a single ingestable document.
func (ing *Ingester) IngestDirectory(ctx context.Context, dir string, allowedExts []string) (int, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return 0, fmt.Errorf("absolute path: %w", err)
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return 0, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("not a directory: %s", absDir)
	}
	n := 0
	err = filepath.WalkDir(absDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if len(allowedExts) > 0 && !extensionAllowed(ext, allowedExts) {
			return nil
		}
		// Resolve symlinks so we only ingest regular files
		finfo, statErr := os.Stat(path)
		if statErr != nil {
			return nil
		}
		if !finfo.Mode().IsRegular() {
			return nil
		}
		if ingestErr := ing.IngestFile(ctx, path, allowedExts); ingestErr != nil {
			if ing.logger != nil {
				ing.logger.Warn("failed to ingest file", zap.String("path", path), zap.Error(ingestErr))
			}
			return nil
		}
		n++
		return nil
	})
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, ErrNoDocuments
	}
	return n, nil
}

func (ing *Ingester) extractContent(path string) (string, error) {
	if ing.extractor != nil {
		return ing.extractor.Extract(path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func extensionAllowed(ext string, allowed []string) bool {
	extNorm := strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, a := range allowed {
		if strings.ToLower(strings.TrimPrefix(a, ".")) == extNorm {
			return true
		}
	}
	return false
}

// DeleteDocument removes a document from all indices and storage.
func (ing *Ingester) DeleteDocument(ctx context.Context, id string) error {
	if ing.logger != nil {
		ing.logger.Debug("deleting document", zap.String("id", id))
	}
	if err := ing.keywordIndex.DeleteByDocument(ctx, id); err != nil {
		return fmt.Errorf("failed to delete from keyword index: %w", err)
	}
	chunks, err := ing.storage.GetChunksByDocumentID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get chunks: %w", err)
	}
	chunkIDs := make([]string, len(chunks))
	for i, ch := range chunks {
		chunkIDs[i] = ch.ID
	}
	if err := ing.vectorIndex.Remove(ctx, chunkIDs); err != nil {
		return fmt.Errorf("failed to delete from vector index: %w", err)
	}
	if err := ing.storage.DeleteChunksByDocumentID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete chunks: %w", err)
	}
	if err := ing.storage.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// DeleteByPath removes the document ingested from the given file path.
func (ing *Ingester) DeleteByPath(ctx context.Context, path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("absolute path: %w", err)
	}
	return ing.DeleteDocument(ctx, fileid.DocID(absPath))
}
