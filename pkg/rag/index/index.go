package index

import (
	"context"
	"fmt"

	"syllabus-bot-be/internal/entity"
	"syllabus-bot-be/internal/pkg/logger"
	"syllabus-bot-be/pkg/embedding"
)

// Store is the persistence handle the index writes to and searches against.
type Store interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*entity.ScoredChunk, error)
	DeleteBySource(ctx context.Context, source string) (int64, error)
	FindAll(ctx context.Context, filter *entity.MetadataFilter) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context) (int64, error)
}

// Opener builds a fresh Store handle. Used to reinitialize the index after a
// failed batch write.
type Opener func() (Store, error)

// InsertResult summarizes one Insert call.
type InsertResult struct {
	Indexed int // chunks written
	Skipped int // chunks dropped because embedding failed
}

// Index is an explicit handle over the vector store plus its embedder. All
// state lives on the struct so callers control its lifecycle.
type Index struct {
	store     Store
	opener    Opener
	embedder  embedding.EmbeddingProvider
	log       logger.ILogger
	batchSize int
}

func New(store Store, opener Opener, embedder embedding.EmbeddingProvider, log logger.ILogger, batchSize int) *Index {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &Index{
		store:     store,
		opener:    opener,
		embedder:  embedder,
		log:       log,
		batchSize: batchSize,
	}
}

// Insert embeds and writes chunks in batches. A chunk whose embedding fails is
// skipped, not fatal. A batch write failure triggers one reinitialization of
// the store handle and a single retry; a second failure aborts the run.
func (ix *Index) Insert(ctx context.Context, chunks []*entity.DocumentChunk) (*InsertResult, error) {
	result := &InsertResult{}

	for _, batch := range Partition(chunks, ix.batchSize) {
		embedded := make([]*entity.DocumentChunk, 0, len(batch))
		for _, chunk := range batch {
			res, err := ix.embedder.Generate(chunk.Content, embedding.TaskRetrievalDocument)
			if err != nil {
				result.Skipped++
				ix.log.Warn("index", "embedding failed, skipping chunk", map[string]interface{}{
					"chunk_id": chunk.Metadata.ChunkID,
					"source":   chunk.Metadata.Source,
					"error":    err.Error(),
				})
				continue
			}
			chunk.Embedding = res.Embedding.Values
			embedded = append(embedded, chunk)
		}
		if len(embedded) == 0 {
			continue
		}

		if err := ix.store.CreateBulk(ctx, embedded); err != nil {
			ix.log.Warn("index", "batch write failed, reinitializing store", map[string]interface{}{
				"batch_size": len(embedded),
				"error":      err.Error(),
			})
			if reinitErr := ix.Reinit(); reinitErr != nil {
				return result, fmt.Errorf("reinit store: %w", reinitErr)
			}
			if retryErr := ix.store.CreateBulk(ctx, embedded); retryErr != nil {
				return result, fmt.Errorf("batch write after reinit: %w", retryErr)
			}
		}
		result.Indexed += len(embedded)
	}

	ix.log.Info("index", "insert complete", map[string]interface{}{
		"indexed": result.Indexed,
		"skipped": result.Skipped,
	})
	return result, nil
}

// Reinit replaces the store handle with a freshly opened one.
func (ix *Index) Reinit() error {
	if ix.opener == nil {
		return fmt.Errorf("no store opener configured")
	}
	store, err := ix.opener()
	if err != nil {
		return err
	}
	ix.store = store
	return nil
}

// SearchByText embeds the query and returns up to limit chunks whose cosine
// similarity is at least threshold, most similar first.
func (ix *Index) SearchByText(ctx context.Context, query string, limit int, threshold float64) ([]*entity.ScoredChunk, error) {
	res, err := ix.embedder.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return ix.store.SearchSimilarWithScore(ctx, res.Embedding.Values, limit, threshold)
}

// DeleteBySource removes every chunk ingested from the given source. Deleting
// an unknown source is not an error and reports zero rows.
func (ix *Index) DeleteBySource(ctx context.Context, source string) (int64, error) {
	return ix.store.DeleteBySource(ctx, source)
}

// GetAll returns chunks matching the metadata filter, or everything when the
// filter is nil.
func (ix *Index) GetAll(ctx context.Context, filter *entity.MetadataFilter) ([]*entity.DocumentChunk, error) {
	return ix.store.FindAll(ctx, filter)
}

// Count reports the number of indexed chunks.
func (ix *Index) Count(ctx context.Context) (int64, error) {
	return ix.store.Count(ctx)
}
