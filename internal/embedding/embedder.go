// Package embedding provides text embedding via an external HTTP service, with caching.
package embedding

import "context"

// Embedder produces vector embeddings for text. Implementations must be
// deterministic within a process lifetime: the same text yields the same vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
