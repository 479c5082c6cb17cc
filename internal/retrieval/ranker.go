// Package retrieval ranks corpus chunks against a query: vector k-NN first,
// then a similarity rescore over chunk prefixes, with a keyword fallback when
// the query cannot be embedded.
package retrieval

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/truthtriage/truthtriage/internal/embedding"
	"github.com/truthtriage/truthtriage/internal/keyword"
	"github.com/truthtriage/truthtriage/internal/models"
	"github.com/truthtriage/truthtriage/internal/storage"
	"github.com/truthtriage/truthtriage/internal/vector"
	"github.com/truthtriage/truthtriage/pkg/utils"
)

// Result holds the retrieved chunks (full content, for prompt construction)
// and the scored sources (previews, for the response payload). Both share the
// same order: best match first.
type Result struct {
	Chunks  []*models.DocumentChunk
	Sources []*models.ScoredSource
}

// Ranker retrieves and ranks chunks for a query.
type Ranker struct {
	embedder     embedding.Embedder
	vectorIndex  vector.Index
	keywordIndex *keyword.BleveIndex
	storage      storage.Storage

	topK             int
	previewLength    int
	rescorePrefixLen int

	logger *zap.Logger // optional
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(r *Ranker) { r.logger = l }
}

// NewRanker creates a ranker with the given dependencies.
func NewRanker(
	embedder embedding.Embedder,
	vectorIndex vector.Index,
	keywordIndex *keyword.BleveIndex,
	store storage.Storage,
	topK, previewLength, rescorePrefixLen int,
	opts ...Option,
) *Ranker {
	r := &Ranker{
		embedder:         embedder,
		vectorIndex:      vectorIndex,
		keywordIndex:     keywordIndex,
		storage:          store,
		topK:             topK,
		previewLength:    previewLength,
		rescorePrefixLen: rescorePrefixLen,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve returns the top-K chunks for query, rescored and sorted by
// similarity descending. When the query cannot be embedded, it degrades to a
// keyword search and every source carries a nil similarity score.
func (r *Ranker) Retrieve(ctx context.Context, query string) (*Result, error) {
	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("query embedding failed, falling back to keyword search", zap.Error(err))
		}
		return r.retrieveByKeyword(ctx, query)
	}

	hits, err := r.vectorIndex.Search(ctx, queryVec, r.topK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}
	chunks, err := r.storage.GetChunksByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load chunks: %w", err)
	}

	sources := r.rescore(ctx, queryVec, chunks)
	return r.sorted(chunks, sources), nil
}

// rescore computes a similarity score per chunk by embedding the chunk prefix
// and taking cosine similarity against the query vector, clamped to [0,1] and
// rounded to 4 decimals. If any prefix embedding fails, every source gets a
// nil score rather than a partially scored list.
func (r *Ranker) rescore(ctx context.Context, queryVec []float32, chunks []*models.DocumentChunk) []*models.ScoredSource {
	sources := make([]*models.ScoredSource, len(chunks))
	for i, ch := range chunks {
		sources[i] = &models.ScoredSource{
			Content:  utils.Truncate(ch.Content, r.previewLength),
			Metadata: r.chunkMetadata(ctx, ch),
		}
	}

	for i, ch := range chunks {
		prefixVec, err := r.embedder.Embed(ctx, utils.Truncate(ch.Content, r.rescorePrefixLen))
		if err != nil {
			if r.logger != nil {
				r.logger.Warn("similarity rescoring failed", zap.Error(err))
			}
			for _, s := range sources {
				s.SimilarityScore = nil
			}
			return sources
		}
		score := utils.Round4(utils.Clamp01(vector.CosineSimilarity(queryVec, prefixVec)))
		sources[i].SimilarityScore = &score
	}
	return sources
}

// retrieveByKeyword is the degraded path: lexical matches, no scores.
func (r *Ranker) retrieveByKeyword(ctx context.Context, query string) (*Result, error) {
	hits, err := r.keywordIndex.Search(ctx, query, r.topK)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}
	chunks, err := r.storage.GetChunksByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load chunks: %w", err)
	}
	sources := make([]*models.ScoredSource, len(chunks))
	for i, ch := range chunks {
		sources[i] = &models.ScoredSource{
			Content:  utils.Truncate(ch.Content, r.previewLength),
			Metadata: r.chunkMetadata(ctx, ch),
		}
	}
	return &Result{Chunks: chunks, Sources: sources}, nil
}

// chunkMetadata builds the source metadata for a chunk: originating file path
// and chunk index. The document lookup failing leaves only the chunk index.
func (r *Ranker) chunkMetadata(ctx context.Context, ch *models.DocumentChunk) map[string]interface{} {
	md := map[string]interface{}{
		"chunk_index": ch.ChunkIndex,
	}
	if doc, err := r.storage.GetDocument(ctx, ch.DocumentID); err == nil && doc.Metadata != nil {
		if src, ok := doc.Metadata["source"].(string); ok {
			md["source"] = src
		}
	}
	return md
}

// sorted orders sources by score descending (stable) and reorders chunks to match.
func (r *Ranker) sorted(chunks []*models.DocumentChunk, sources []*models.ScoredSource) *Result {
	type pair struct {
		chunk  *models.DocumentChunk
		source *models.ScoredSource
	}
	pairs := make([]pair, len(sources))
	for i := range sources {
		pairs[i] = pair{chunk: chunks[i], source: sources[i]}
	}
	ordered := make([]*models.ScoredSource, len(pairs))
	for i, p := range pairs {
		ordered[i] = p.source
	}
	models.SortSourcesByScore(ordered)

	bySource := make(map[*models.ScoredSource]*models.DocumentChunk, len(pairs))
	for _, p := range pairs {
		bySource[p.source] = p.chunk
	}
	outChunks := make([]*models.DocumentChunk, len(ordered))
	for i, s := range ordered {
		outChunks[i] = bySource[s]
	}
	return &Result{Chunks: outChunks, Sources: ordered}
}
