package implementation

import (
	"context"

	"syllabus-bot-be/internal/entity"
	"syllabus-bot-be/internal/mapper"
	"syllabus-bot-be/internal/model"
	"syllabus-bot-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkMapper
}

func NewChunkRepository(db *gorm.DB) contract.ChunkRepository {
	return &ChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkMapper(),
	}
}

func (r *ChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	models := r.mapper.ToModels(chunks)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	// Update generated IDs back to entities
	for i, m := range models {
		chunks[i].Id = m.Id
		chunks[i].CreatedAt = m.CreatedAt
	}
	return nil
}

// SearchSimilarWithScore returns chunks with cosine similarity scores.
// pgvector's <=> operator is cosine distance, so similarity = 1 - distance.
func (r *ChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*entity.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.DocumentChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("document_chunks").
		Select("document_chunks.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("1 - (embedding <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*entity.ScoredChunk, len(results))
	for i, res := range results {
		scored[i] = &entity.ScoredChunk{
			Chunk:      r.mapper.ToEntity(&res.DocumentChunk),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

// DeleteBySource removes every chunk ingested from the given source.
// Deleting a source with no chunks is a no-op, not an error.
func (r *ChunkRepositoryImpl) DeleteBySource(ctx context.Context, source string) (int64, error) {
	tx := r.db.WithContext(ctx).Where("source = ?", source).Delete(&model.DocumentChunk{})
	return tx.RowsAffected, tx.Error
}

func (r *ChunkRepositoryImpl) FindAll(ctx context.Context, filter *entity.MetadataFilter) ([]*entity.DocumentChunk, error) {
	query := r.db.WithContext(ctx).Model(&model.DocumentChunk{})

	if filter != nil {
		if filter.Subject != nil {
			query = query.Where("metadata->>'subject' = ?", *filter.Subject)
		}
		if filter.Type != nil {
			query = query.Where("metadata->>'type' = ?", *filter.Type)
		}
		if filter.IsSyllabus != nil {
			query = query.Where("(metadata->>'is_syllabus')::boolean = ?", *filter.IsSyllabus)
		}
	}

	var models []*model.DocumentChunk
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChunkRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DocumentChunk{}).Count(&count).Error
	return count, err
}
