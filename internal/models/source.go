package models

import (
	"path/filepath"
	"sort"
)

// ScoredSource is one retrieved passage handed back to the caller of a query.
// SimilarityScore is nil when rescoring was unavailable; a nil score orders as 0.
// Sources are request-scoped values and are never shared between requests.
type ScoredSource struct {
	Content         string                 `json:"content"`
	Metadata        map[string]interface{} `json:"metadata"`
	SimilarityScore *float64               `json:"similarity_score"`
}

// ScoreOrZero returns the similarity score, treating nil as 0.
func (s *ScoredSource) ScoreOrZero() float64 {
	if s.SimilarityScore == nil {
		return 0
	}
	return *s.SimilarityScore
}

// SortSourcesByScore sorts sources descending by similarity score in place.
// The sort is stable so unscored entries keep their relative order.
func SortSourcesByScore(sources []*ScoredSource) {
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].ScoreOrZero() > sources[j].ScoreOrZero()
	})
}

// SourceDocumentName returns the originating document name recorded in the
// source metadata, or "Unknown" when absent.
func (s *ScoredSource) SourceDocumentName() string {
	if s.Metadata == nil {
		return "Unknown"
	}
	if v, ok := s.Metadata["source"].(string); ok && v != "" {
		return filepath.Base(v)
	}
	return "Unknown"
}
