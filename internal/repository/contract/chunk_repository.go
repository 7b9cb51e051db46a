package contract

import (
	"context"

	"syllabus-bot-be/internal/entity"
)

// ChunkRepository is the persistence contract for the vector index.
type ChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*entity.ScoredChunk, error)
	DeleteBySource(ctx context.Context, source string) (int64, error)
	FindAll(ctx context.Context, filter *entity.MetadataFilter) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context) (int64, error)
}
