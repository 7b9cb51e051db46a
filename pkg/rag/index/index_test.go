package index

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"syllabus-bot-be/internal/entity"
	"syllabus-bot-be/pkg/embedding"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeEmbedder struct {
	failFor map[string]bool
}

func (f *fakeEmbedder) Generate(text, taskType string) (*embedding.EmbeddingResponse, error) {
	if f.failFor[text] {
		return nil, errors.New("embedding model unavailable")
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2, 0.3}},
	}, nil
}

type fakeStore struct {
	written      []*entity.DocumentChunk
	failuresLeft int
	deleted      map[string]int64
}

func (f *fakeStore) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	if f.failuresLeft > 0 {
		f.failuresLeft--
		return errors.New("write failed")
	}
	f.written = append(f.written, chunks...)
	return nil
}

func (f *fakeStore) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*entity.ScoredChunk, error) {
	return nil, nil
}

func (f *fakeStore) DeleteBySource(ctx context.Context, source string) (int64, error) {
	if f.deleted == nil {
		return 0, nil
	}
	n := f.deleted[source]
	delete(f.deleted, source)
	return n, nil
}

func (f *fakeStore) FindAll(ctx context.Context, filter *entity.MetadataFilter) ([]*entity.DocumentChunk, error) {
	return f.written, nil
}

func (f *fakeStore) Count(ctx context.Context) (int64, error) {
	return int64(len(f.written)), nil
}

func chunkWith(content string) *entity.DocumentChunk {
	return &entity.DocumentChunk{Content: content}
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name      string
		items     int
		size      int
		wantSizes []int
	}{
		{"even split", 20, 10, []int{10, 10}},
		{"remainder", 25, 10, []int{10, 10, 5}},
		{"single short batch", 3, 10, []int{3}},
		{"empty", 0, 10, nil},
		{"non-positive size", 5, 0, []int{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.items)
			batches := Partition(items, tt.size)

			require.Len(t, batches, len(tt.wantSizes))
			for i, want := range tt.wantSizes {
				assert.Len(t, batches[i], want)
			}
		})
	}
}

func TestInsertSkipsFailedEmbeddings(t *testing.T) {
	store := &fakeStore{}
	embedder := &fakeEmbedder{failFor: map[string]bool{"hỏng": true}}
	ix := New(store, nil, embedder, nopLogger{}, 10)

	result, err := ix.Insert(context.Background(), []*entity.DocumentChunk{
		chunkWith("tốt một"),
		chunkWith("hỏng"),
		chunkWith("tốt hai"),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Indexed)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, store.written, 2)
	assert.NotEmpty(t, store.written[0].Embedding)
}

func TestInsertRetriesOnceAfterReinit(t *testing.T) {
	failing := &fakeStore{failuresLeft: 1}
	fresh := &fakeStore{}
	opened := 0
	opener := func() (Store, error) {
		opened++
		return fresh, nil
	}
	ix := New(failing, opener, &fakeEmbedder{}, nopLogger{}, 10)

	result, err := ix.Insert(context.Background(), []*entity.DocumentChunk{chunkWith("nội dung")})

	require.NoError(t, err)
	assert.Equal(t, 1, opened, "store should be reopened exactly once")
	assert.Equal(t, 1, result.Indexed)
	assert.Len(t, fresh.written, 1, "retry must go through the fresh handle")
}

func TestInsertAbortsAfterSecondWriteFailure(t *testing.T) {
	failing := &fakeStore{failuresLeft: 1}
	stillFailing := &fakeStore{failuresLeft: 1}
	opener := func() (Store, error) { return stillFailing, nil }
	ix := New(failing, opener, &fakeEmbedder{}, nopLogger{}, 10)

	_, err := ix.Insert(context.Background(), []*entity.DocumentChunk{chunkWith("nội dung")})
	require.Error(t, err)
}

func TestInsertBatchesWrites(t *testing.T) {
	store := &fakeStore{}
	ix := New(store, nil, &fakeEmbedder{}, nopLogger{}, 10)

	chunks := make([]*entity.DocumentChunk, 25)
	for i := range chunks {
		chunks[i] = chunkWith("chunk")
	}

	result, err := ix.Insert(context.Background(), chunks)
	require.NoError(t, err)
	assert.Equal(t, 25, result.Indexed)
	assert.Len(t, store.written, 25)
}

func TestDeleteBySourceIdempotent(t *testing.T) {
	store := &fakeStore{deleted: map[string]int64{"a.pdf": 7}}
	ix := New(store, nil, &fakeEmbedder{}, nopLogger{}, 10)

	n, err := ix.DeleteBySource(context.Background(), "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	// Second delete of the same source reports zero rows, not an error.
	n, err = ix.DeleteBySource(context.Background(), "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
