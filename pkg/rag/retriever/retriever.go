package retriever

import (
	"context"
	"strings"

	"syllabus-bot-be/internal/entity"
	"syllabus-bot-be/internal/pkg/logger"
)

// SearchIndex is the slice of the vector index the retriever needs.
type SearchIndex interface {
	SearchByText(ctx context.Context, query string, limit int, threshold float64) ([]*entity.ScoredChunk, error)
	Count(ctx context.Context) (int64, error)
}

type Config struct {
	Threshold float64 // minimum cosine similarity, exclusive
	TopK      int     // max chunks returned
}

type Retriever struct {
	index  SearchIndex
	config Config
	log    logger.ILogger
}

func New(index SearchIndex, config Config, log logger.ILogger) *Retriever {
	if config.TopK <= 0 {
		config.TopK = 8
	}
	return &Retriever{index: index, config: config, log: log}
}

// Retrieve returns the chunks relevant to the question, most similar first.
// An empty result is a valid outcome, not an error. The threshold is applied
// in-process so near-miss scores can be logged for tuning.
func (r *Retriever) Retrieve(ctx context.Context, question string) ([]*entity.ScoredChunk, error) {
	normalized := strings.ToLower(strings.TrimSpace(question))
	if normalized == "" {
		return nil, nil
	}

	candidates, err := r.index.SearchByText(ctx, normalized, r.config.TopK, 0)
	if err != nil {
		return nil, err
	}

	results := make([]*entity.ScoredChunk, 0, len(candidates))
	for _, c := range candidates {
		if c.Similarity > r.config.Threshold {
			results = append(results, c)
		}
	}

	r.log.Info("retriever", "retrieval complete", map[string]interface{}{
		"question":   normalized,
		"candidates": len(candidates),
		"kept":       len(results),
		"threshold":  r.config.Threshold,
	})
	return results, nil
}

// Ready reports whether the index holds any chunks at all.
func (r *Retriever) Ready(ctx context.Context) bool {
	count, err := r.index.Count(ctx)
	if err != nil {
		return false
	}
	return count > 0
}
